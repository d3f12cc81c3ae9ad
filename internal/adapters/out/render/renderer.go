// Package render turns documents into the payload formats printer agents
// and browsers consume: PDF, ESC/POS command streams and structured JSON.
//
// Every renderer is a pure function of its input and is safe for
// concurrent use.
package render

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/printjob"
)

var (
	// ErrUnsupportedFormat is returned for a format no renderer handles.
	ErrUnsupportedFormat = errors.New("unsupported render format")
	// ErrUnknownTemplate is returned for a template id that is not registered.
	ErrUnknownTemplate = errors.New("unknown template")
)

// FormatRenderer renders one format.
type FormatRenderer interface {
	Render(doc document.Document, templateID string) ([]byte, error)
}

// Registry dispatches to the renderer of the requested format after checking
// the template id.
type Registry struct {
	renderers map[printjob.Format]FormatRenderer
	templates map[string]printjob.DocumentType
}

// NewRegistry returns a registry with the PDF, thermal and structured
// renderers and the default template of every document type.
func NewRegistry() *Registry {
	r := &Registry{
		renderers: map[printjob.Format]FormatRenderer{
			printjob.FormatPDF:        PDFRenderer{},
			printjob.FormatThermal:    ThermalRenderer{Width: ThermalColumns},
			printjob.FormatStructured: StructuredRenderer{},
		},
		templates: make(map[string]printjob.DocumentType),
	}
	for _, t := range printjob.AllDocumentTypes() {
		r.templates[t.DefaultTemplate()] = t
	}
	return r
}

// Register replaces the renderer of a format.
func (r *Registry) Register(format printjob.Format, renderer FormatRenderer) {
	r.renderers[format] = renderer
}

// Render implements ports.DocumentRenderer.
func (r *Registry) Render(ctx context.Context, format printjob.Format, doc document.Document, templateID string) ([]byte, error) {
	_, span := otel.Tracer("fulfillment/render").Start(ctx, "render "+format.String())
	defer span.End()
	span.SetAttributes(
		attribute.String("document.type", doc.Type.String()),
		attribute.String("template.id", templateID),
	)

	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	t, ok := r.templates[templateID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}
	if t != doc.Type {
		return nil, fmt.Errorf("%w: %q does not render %s", ErrUnknownTemplate, templateID, doc.Type)
	}

	data, err := renderer.Render(doc, templateID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("render.bytes", len(data)))
	return data, nil
}
