package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// RoutingAction is what the engine did with a document.
type RoutingAction string

const (
	ActionSkipped      RoutingAction = "skipped"
	ActionBrowserPrint RoutingAction = "browser-print"
	ActionQueued       RoutingAction = "queued"
)

// SkipReasonDisabled is reported when printing is turned off for the type.
const SkipReasonDisabled = "disabled"

// RoutingResult describes the outcome of Queue.
type RoutingResult struct {
	Action       RoutingAction
	DocumentType printjob.DocumentType
	Reason       string
	URL          string
	Copies       int
	JobID        uuid.UUID
	AgentType    printjob.Destination
	Format       printjob.Format
}

// QueueRequest is a document to route.
type QueueRequest struct {
	DocumentType printjob.DocumentType
	OrderID      *uuid.UUID
	Document     document.Document
	TemplateID   string

	// Priority overrides the document type's default priority when set.
	Priority *int
}

// SettingsSource resolves the routing configuration of a document type.
type SettingsSource interface {
	ConfigFor(ctx context.Context, t printjob.DocumentType) (printsettings.TypeConfig, error)
}

// DefaultStrategies lists, per agent destination, the payload formats to try
// in order. The first format that renders becomes the job payload.
func DefaultStrategies() map[printjob.Destination][]printjob.Format {
	return map[printjob.Destination][]printjob.Format{
		printjob.ThermalAgent:  {printjob.FormatThermal, printjob.FormatStructured},
		printjob.DocumentAgent: {printjob.FormatPDF, printjob.FormatStructured},
	}
}

// PrintRoutingEngine decides where a document goes and gets it there.
//
//   - disabled types are skipped without rendering
//   - browser documents are rendered to PDF, stored, and returned as a URL
//   - agent documents are rendered with the destination's strategy chain,
//     persisted as PENDING jobs and pushed to connected agents
type PrintRoutingEngine struct {
	settings    SettingsSource
	renderer    ports.DocumentRenderer
	blobs       ports.BlobStore
	uowFactory  ports.PrintJobUoWFactory
	broadcaster ports.JobBroadcaster
	strategies  map[printjob.Destination][]printjob.Format
	documentURL func(key string) string
	clock       clock.Clock
	logger      *slog.Logger
}

// RoutingEngineDeps groups the collaborators of the engine.
type RoutingEngineDeps struct {
	Settings    SettingsSource
	Renderer    ports.DocumentRenderer
	Blobs       ports.BlobStore
	UoWFactory  ports.PrintJobUoWFactory
	Broadcaster ports.JobBroadcaster

	// Strategies defaults to DefaultStrategies.
	Strategies map[printjob.Destination][]printjob.Format

	// DocumentURL builds the download URL of a stored browser document.
	DocumentURL func(key string) string
	Clock       clock.Clock
	Logger      *slog.Logger
}

func NewPrintRoutingEngine(deps RoutingEngineDeps) *PrintRoutingEngine {
	strategies := deps.Strategies
	if strategies == nil {
		strategies = DefaultStrategies()
	}

	return &PrintRoutingEngine{
		settings:    deps.Settings,
		renderer:    deps.Renderer,
		blobs:       deps.Blobs,
		uowFactory:  deps.UoWFactory,
		broadcaster: deps.Broadcaster,
		strategies:  strategies,
		documentURL: deps.DocumentURL,
		clock:       deps.Clock,
		logger:      deps.Logger.With("component", "print_routing_engine"),
	}
}

// Queue routes one document.
//
// Returns an error only when the settings cannot be resolved, a browser
// document cannot be rendered or stored, or the job cannot be persisted.
// Agent render failures degrade the payload instead of failing.
func (e *PrintRoutingEngine) Queue(ctx context.Context, req QueueRequest) (RoutingResult, error) {
	if err := req.DocumentType.Validate(); err != nil {
		return RoutingResult{}, err
	}

	cfg, err := e.settings.ConfigFor(ctx, req.DocumentType)
	if err != nil {
		return RoutingResult{}, err
	}

	if !cfg.Enabled {
		e.logger.InfoContext(ctx, "Printing disabled, document skipped", "documentType", req.DocumentType)
		return RoutingResult{
			Action:       ActionSkipped,
			DocumentType: req.DocumentType,
			Reason:       SkipReasonDisabled,
		}, nil
	}

	if cfg.Destination == printjob.Browser {
		return e.browserPrint(ctx, req, cfg)
	}

	return e.enqueue(ctx, req, cfg)
}

func (e *PrintRoutingEngine) browserPrint(ctx context.Context, req QueueRequest, cfg printsettings.TypeConfig) (RoutingResult, error) {
	data, err := e.renderer.Render(ctx, printjob.FormatPDF, req.Document, req.TemplateID)
	if err != nil {
		return RoutingResult{}, errs.NewRenderFailureError(printjob.FormatPDF.String(), req.TemplateID, err)
	}

	key := uuid.NewString() + ".pdf"
	if err := e.blobs.Put(ctx, key, ports.Blob{ContentType: "application/pdf", Data: data}); err != nil {
		return RoutingResult{}, err
	}

	return RoutingResult{
		Action:       ActionBrowserPrint,
		DocumentType: req.DocumentType,
		URL:          e.documentURL(key),
		Copies:       cfg.Copies,
		Format:       printjob.FormatPDF,
	}, nil
}

func (e *PrintRoutingEngine) enqueue(ctx context.Context, req QueueRequest, cfg printsettings.TypeConfig) (RoutingResult, error) {
	payload := e.render(ctx, req, cfg.Destination)

	priority := req.DocumentType.DefaultPriority()
	if req.Priority != nil {
		priority = *req.Priority
	}

	job, err := printjob.NewPrintJob(printjob.Spec{
		DocumentType: req.DocumentType,
		OrderID:      req.OrderID,
		Payload:      payload,
		AgentType:    cfg.Destination,
		PrinterName:  cfg.PrinterName,
		PrinterTray:  cfg.PrinterTray,
		Copies:       cfg.Copies,
		Priority:     priority,
		TemplateID:   req.TemplateID,
	}, e.clock.Now())
	if err != nil {
		return RoutingResult{}, err
	}

	if err := e.persist(ctx, job); err != nil {
		return RoutingResult{}, err
	}

	if err := e.broadcaster.Broadcast(ctx, job); err != nil {
		e.logger.WarnContext(ctx, "Job queued but broadcast failed", "jobId", job.ID(), "error", err)
	}

	e.logger.InfoContext(ctx, "Print job queued",
		"jobId", job.ID(),
		"documentType", req.DocumentType,
		"agentType", cfg.Destination,
		"format", payload.Format().String(),
		"priority", priority,
	)

	return RoutingResult{
		Action:       ActionQueued,
		DocumentType: req.DocumentType,
		Copies:       cfg.Copies,
		JobID:        job.ID(),
		AgentType:    cfg.Destination,
		Format:       payload.Format(),
	}, nil
}

// render walks the destination's strategy chain. Every failure is logged as
// a render failure; when all formats fail the job carries no payload.
func (e *PrintRoutingEngine) render(ctx context.Context, req QueueRequest, destination printjob.Destination) printjob.Payload {
	for _, format := range e.strategies[destination] {
		data, err := e.renderer.Render(ctx, format, req.Document, req.TemplateID)
		if err == nil {
			payload, payloadErr := toPayload(format, data)
			if payloadErr == nil {
				return payload
			}
			err = payloadErr
		}

		renderErr := errs.NewRenderFailureError(format.String(), req.TemplateID, err)
		e.logger.WarnContext(ctx, "Document render failed", "documentType", req.DocumentType, "error", renderErr)
	}

	e.logger.ErrorContext(ctx, "Every renderer failed, queueing job without payload",
		"documentType", req.DocumentType, "destination", destination)
	return printjob.EmptyPayload()
}

func toPayload(format printjob.Format, data []byte) (printjob.Payload, error) {
	switch format {
	case printjob.FormatPDF:
		return printjob.PDFPayload(data), nil
	case printjob.FormatThermal:
		return printjob.ThermalPayload(data), nil
	case printjob.FormatStructured:
		return printjob.StructuredPayload(json.RawMessage(data))
	default:
		return printjob.Payload{}, errors.New("unsupported payload format " + format.String())
	}
}

func (e *PrintRoutingEngine) persist(ctx context.Context, job *printjob.PrintJob) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PrintJobRepository().Add(ctx, job); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
