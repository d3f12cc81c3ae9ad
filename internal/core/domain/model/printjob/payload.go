package printjob

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Format is the kind of rendered content a job carries.
type Format string

const (
	// FormatNone marks a job queued without content because every renderer failed.
	FormatNone Format = ""
	// FormatPDF carries PDF bytes.
	FormatPDF Format = "pdf"
	// FormatThermal carries an ESC/POS command stream.
	FormatThermal Format = "thermal"
	// FormatStructured carries a JSON document the agent lays out itself.
	FormatStructured Format = "structured"
)

func (f Format) Validate() error {
	switch f {
	case FormatNone, FormatPDF, FormatThermal, FormatStructured:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payload format is invalid",
			fmt.Errorf("%q is not a valid payload format", string(f)))
	}
}

func (f Format) String() string {
	if f == FormatNone {
		return "none"
	}
	return string(f)
}

// Payload is the rendered content of a job. Exactly one variant is populated:
// PDF bytes, thermal command bytes, a structured JSON value, or nothing.
//
// The zero value is the empty payload.
type Payload struct {
	format Format
	data   []byte
}

// PDFPayload wraps rendered PDF bytes.
func PDFPayload(data []byte) Payload {
	return Payload{format: FormatPDF, data: data}
}

// ThermalPayload wraps an ESC/POS command stream.
func ThermalPayload(data []byte) Payload {
	return Payload{format: FormatThermal, data: data}
}

// StructuredPayload wraps a JSON document. The raw message must be valid JSON.
func StructuredPayload(doc json.RawMessage) (Payload, error) {
	if !json.Valid(doc) {
		return Payload{}, errs.NewValueIsInvalidError("structured payload is not valid JSON")
	}
	return Payload{format: FormatStructured, data: doc}, nil
}

// EmptyPayload is a job without rendered content.
func EmptyPayload() Payload {
	return Payload{}
}

func (p Payload) Format() Format {
	return p.format
}

// Data returns the raw bytes of the payload: binary content for pdf and
// thermal, JSON for structured, nil for none.
func (p Payload) Data() []byte {
	return p.data
}

func (p Payload) IsEmpty() bool {
	return p.format == FormatNone
}

// Encode returns the storage form of the payload: base64 for binary
// variants, the JSON text for structured, "" for none.
func (p Payload) Encode() string {
	switch p.format {
	case FormatPDF, FormatThermal:
		return base64.StdEncoding.EncodeToString(p.data)
	case FormatStructured:
		return string(p.data)
	default:
		return ""
	}
}

// DecodePayload restores a payload from its storage form.
func DecodePayload(format Format, encoded string) (Payload, error) {
	if err := format.Validate(); err != nil {
		return Payload{}, err
	}

	switch format {
	case FormatPDF, FormatThermal:
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return Payload{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
		}
		return Payload{format: format, data: data}, nil
	case FormatStructured:
		return StructuredPayload(json.RawMessage(encoded))
	default:
		return EmptyPayload(), nil
	}
}

// MarshalJSON renders the wire form sent to agents:
// {"format":"pdf","data":"<base64>"} or {"format":"structured","data":{...}}.
// The empty payload is null.
func (p Payload) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte("null"), nil
	}

	var data json.RawMessage
	if p.format == FormatStructured {
		data = p.data
	} else {
		encoded, err := json.Marshal(p.Encode())
		if err != nil {
			return nil, err
		}
		data = encoded
	}

	return json.Marshal(struct {
		Format Format          `json:"format"`
		Data   json.RawMessage `json:"data"`
	}{Format: p.format, Data: data})
}
