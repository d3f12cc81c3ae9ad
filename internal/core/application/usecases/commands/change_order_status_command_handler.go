package commands

import (
	"context"
	"log/slog"
	"strings"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/order"
	domainservices "fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// ChangeOrderStatusResult is returned once the new status is committed.
// Side effects may still be running.
type ChangeOrderStatusResult struct {
	Order          *order.Order
	PreviousStatus order.Status
}

// ChangeOrderStatusCommandHandler applies a status transition and schedules
// its side effects.
//
// The write is a compare-and-set on the status that was read, so two
// concurrent transitions of the same order cannot both succeed. After the
// commit, notifications, printing and the status event are submitted to the
// background pool and never awaited.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	var transitionErr *errs.InvalidTransitionError
//	switch {
//	case errors.As(err, &transitionErr):
//	    // 400 with transitionErr.Allowed
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    // 409
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory ports.OrderUoWFactory
	policy     domainservices.TransitionPolicy
	tasks      TaskSubmitter
	printer    PrintQueuer
	notifier   Notifier
	publisher  ports.OrderEventPublisher
	store      document.Store
	clock      clock.Clock
	logger     *slog.Logger
}

// ChangeOrderStatusDeps groups the collaborators of the handler.
type ChangeOrderStatusDeps struct {
	UoWFactory ports.OrderUoWFactory
	Policy     domainservices.TransitionPolicy
	Tasks      TaskSubmitter
	Printer    PrintQueuer
	Notifier   Notifier
	Publisher  ports.OrderEventPublisher
	Store      document.Store
	Clock      clock.Clock
	Logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(deps ChangeOrderStatusDeps) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: deps.UoWFactory,
		policy:     deps.Policy,
		tasks:      deps.Tasks,
		printer:    deps.Printer,
		notifier:   deps.Notifier,
		publisher:  deps.Publisher,
		store:      deps.Store,
		clock:      deps.Clock,
		logger:     deps.Logger.With("component", "change_order_status"),
	}
}

// Handle validates and commits the transition, then submits side effects.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	previous, err := o.ChangeStatus(cmd.Status(), h.clock.Now())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = orderRepo.UpdateStatus(ctx, o, previous); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	h.logger.InfoContext(ctx, "Order status changed",
		"orderId", o.ID(),
		"from", previous,
		"to", o.Status(),
		"actorId", cmd.ActorID(),
	)

	h.submitSideEffects(ctx, o, previous, cmd)

	return ChangeOrderStatusResult{Order: o, PreviousStatus: previous}, nil
}

func (h ChangeOrderStatusCommandHandler) submitSideEffects(
	ctx context.Context,
	o *order.Order,
	previous order.Status,
	cmd ChangeOrderStatusCommand,
) {
	newStatus := o.Status()
	effects := h.policy.Evaluate(o, newStatus)

	if effects.Notify {
		h.tasks.Submit(ctx, "notify-status-change", func(ctx context.Context) error {
			_, err := h.notifier.Dispatch(ctx, o, newStatus, previous)
			return err
		})
	}

	for _, rule := range effects.Documents {
		orderID := o.ID()
		priority := rule.Priority
		h.tasks.Submit(ctx, "print-"+strings.ToLower(rule.Document.String()), func(ctx context.Context) error {
			_, err := h.printer.Queue(ctx, services.QueueRequest{
				DocumentType: rule.Document,
				OrderID:      &orderID,
				Document:     document.ForOrder(rule.Document, o, h.store, h.clock.Now()),
				TemplateID:   rule.TemplateID,
				Priority:     &priority,
			})
			return err
		})
	}

	if effects.PublishEvent {
		event := order.NewStatusChanged(o, previous, cmd.ActorID(), cmd.Notes())
		// Events of one order leave in commit order.
		h.tasks.SubmitOrdered(ctx, event.OrderID.String(), "publish-status-changed", func(ctx context.Context) error {
			return h.publisher.PublishStatusChanged(ctx, event)
		})
	}
}
