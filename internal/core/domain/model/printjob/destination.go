package printjob

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Destination is where a document of a given type is sent.
type Destination string

const (
	// Browser documents are rendered as PDF and opened by the requesting client.
	Browser Destination = "browser"
	// ThermalAgent is a receipt printer agent that speaks ESC/POS.
	ThermalAgent Destination = "thermal-agent"
	// DocumentAgent is a full-page printer agent that accepts PDF.
	DocumentAgent Destination = "document-agent"
)

// ParseDestination converts an external string into a Destination.
func ParseDestination(s string) (Destination, error) {
	d := Destination(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d Destination) Validate() error {
	switch d {
	case Browser, ThermalAgent, DocumentAgent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("destination is invalid",
			fmt.Errorf("%q is not a valid destination", string(d)))
	}
}

// IsAgent reports whether documents for this destination go through the job queue.
func (d Destination) IsAgent() bool {
	return d == ThermalAgent || d == DocumentAgent
}

func (d Destination) String() string {
	return string(d)
}
