package commands

import (
	"context"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// QueuePrintJobCommandHandler builds the document for a print request and
// hands it to the routing engine. When the request names an order, the
// order is loaded and its snapshot is printed.
type QueuePrintJobCommandHandler struct {
	uowFactory ports.OrderUoWFactory
	printer    PrintQueuer
	store      document.Store
	clock      clock.Clock
}

func NewQueuePrintJobCommandHandler(
	uowFactory ports.OrderUoWFactory,
	printer PrintQueuer,
	store document.Store,
	clk clock.Clock,
) QueuePrintJobCommandHandler {
	return QueuePrintJobCommandHandler{
		uowFactory: uowFactory,
		printer:    printer,
		store:      store,
		clock:      clk,
	}
}

// Handle returns what the routing engine did with the document.
func (h QueuePrintJobCommandHandler) Handle(ctx context.Context, cmd QueuePrintJobCommand) (services.RoutingResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.RoutingResult{}, err
	}

	doc, err := h.buildDocument(ctx, cmd)
	if err != nil {
		return services.RoutingResult{}, err
	}

	return h.printer.Queue(ctx, services.QueueRequest{
		DocumentType: cmd.DocumentType(),
		OrderID:      cmd.OrderID(),
		Document:     doc,
		TemplateID:   cmd.TemplateID(),
		Priority:     cmd.Priority(),
	})
}

func (h QueuePrintJobCommandHandler) buildDocument(ctx context.Context, cmd QueuePrintJobCommand) (document.Document, error) {
	now := h.clock.Now()
	if cmd.OrderID() == nil {
		return document.Standalone(cmd.DocumentType(), h.store, now), nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return document.Document{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, *cmd.OrderID())
	if err != nil {
		return document.Document{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return document.Document{}, err
	}

	return document.ForOrder(cmd.DocumentType(), o, h.store, now), nil
}
