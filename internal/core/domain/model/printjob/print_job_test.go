package printjob_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"
)

var queuedAt = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func newTestJob(t *testing.T) *printjob.PrintJob {
	t.Helper()

	orderID := uuid.New()
	job, err := printjob.NewPrintJob(printjob.Spec{
		DocumentType: printjob.OrderTicket,
		OrderID:      &orderID,
		Payload:      printjob.PDFPayload([]byte("%PDF-1.3")),
		AgentType:    printjob.DocumentAgent,
		PrinterName:  "  Back Office  ",
		Copies:       2,
		Priority:     10,
		TemplateID:   "order-ticket-v1",
	}, queuedAt)
	require.NoError(t, err)
	return job
}

func TestNewPrintJob(t *testing.T) {
	t.Run("should create pending job", func(t *testing.T) {
		job := newTestJob(t)

		require.NoError(t, job.Validate())
		assert.NotEqual(t, uuid.Nil, job.ID())
		assert.Equal(t, printjob.Pending, job.Status())
		assert.Equal(t, "Back Office", job.PrinterName())
		assert.Equal(t, 2, job.Copies())
		assert.Equal(t, queuedAt, job.CreatedAt())
		assert.Equal(t, queuedAt, job.UpdatedAt())
		assert.Nil(t, job.PrintedAt())
	})

	t.Run("should reject browser destination and zero copies", func(t *testing.T) {
		job, err := printjob.NewPrintJob(printjob.Spec{
			DocumentType: printjob.Report,
			AgentType:    printjob.Browser,
		}, queuedAt)

		require.Error(t, err)
		assert.Nil(t, job)
		assert.Contains(t, err.Error(), "agent type is invalid")
		assert.Contains(t, err.Error(), "copies")
	})

	t.Run("should reject unknown document type", func(t *testing.T) {
		_, err := printjob.NewPrintJob(printjob.Spec{
			DocumentType: "FLYER",
			AgentType:    printjob.ThermalAgent,
			Copies:       1,
		}, queuedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPrintJob_ChangeStatus(t *testing.T) {
	claimedAt := queuedAt.Add(time.Minute)
	printedAt := claimedAt.Add(time.Minute)

	t.Run("pending to printing to completed", func(t *testing.T) {
		job := newTestJob(t)

		previous, err := job.ChangeStatus(printjob.Printing, "agent-7", "", claimedAt)
		require.NoError(t, err)
		assert.Equal(t, printjob.Pending, previous)
		assert.Equal(t, "agent-7", job.AgentID())
		assert.Nil(t, job.PrintedAt())

		previous, err = job.ChangeStatus(printjob.Completed, "", "", printedAt)
		require.NoError(t, err)
		assert.Equal(t, printjob.Printing, previous)
		assert.Equal(t, "agent-7", job.AgentID())
		require.NotNil(t, job.PrintedAt())
		assert.Equal(t, printedAt, *job.PrintedAt())
	})

	t.Run("printing to failed keeps error message", func(t *testing.T) {
		job := newTestJob(t)
		_, err := job.ChangeStatus(printjob.Printing, "agent-7", "", claimedAt)
		require.NoError(t, err)

		_, err = job.ChangeStatus(printjob.Failed, "", "paper jam", printedAt)
		require.NoError(t, err)
		assert.Equal(t, "paper jam", job.ErrorMessage())
		assert.Nil(t, job.PrintedAt())
	})

	t.Run("illegal edges are rejected", func(t *testing.T) {
		illegal := []struct {
			from []printjob.Status
			to   printjob.Status
		}{
			{from: nil, to: printjob.Completed},
			{from: nil, to: printjob.Failed},
			{from: nil, to: printjob.Pending},
			{from: []printjob.Status{printjob.Printing}, to: printjob.Printing},
			{from: []printjob.Status{printjob.Printing}, to: printjob.Pending},
			{from: []printjob.Status{printjob.Printing, printjob.Completed}, to: printjob.Printing},
			{from: []printjob.Status{printjob.Printing, printjob.Failed}, to: printjob.Completed},
		}

		for _, tt := range illegal {
			job := newTestJob(t)
			for _, step := range tt.from {
				_, err := job.ChangeStatus(step, "", "", claimedAt)
				require.NoError(t, err)
			}
			before := job.Status()

			_, err := job.ChangeStatus(tt.to, "", "", printedAt)

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Equal(t, before, job.Status())
		}
	})
}

func TestPrintJob_Retry(t *testing.T) {
	job := newTestJob(t)
	_, err := job.ChangeStatus(printjob.Printing, "agent-7", "", queuedAt)
	require.NoError(t, err)
	_, err = job.ChangeStatus(printjob.Failed, "", "out of paper", queuedAt)
	require.NoError(t, err)

	retriedAt := queuedAt.Add(time.Hour)
	require.NoError(t, job.Retry(retriedAt))
	assert.Equal(t, printjob.Pending, job.Status())
	assert.Empty(t, job.AgentID())
	assert.Empty(t, job.ErrorMessage())
	assert.Nil(t, job.PrintedAt())
	assert.Equal(t, retriedAt, job.UpdatedAt())

	err = job.Retry(retriedAt)
	require.ErrorIs(t, err, errs.ErrInvalidRetryState)
	assert.Contains(t, err.Error(), "is PENDING")
}

func TestPrintJob_IsStuck(t *testing.T) {
	job := newTestJob(t)

	assert.False(t, job.IsStuck(queuedAt.Add(10*time.Second), 30*time.Second))
	assert.True(t, job.IsStuck(queuedAt.Add(31*time.Second), 30*time.Second))

	_, err := job.ChangeStatus(printjob.Printing, "", "", queuedAt)
	require.NoError(t, err)
	assert.False(t, job.IsStuck(queuedAt.Add(time.Hour), 30*time.Second))
}

func TestRestorePrintJob(t *testing.T) {
	original := newTestJob(t)

	restored, err := printjob.RestorePrintJob(original.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, original.Snapshot(), restored.Snapshot())

	_, err = printjob.RestorePrintJob(printjob.Snapshot{Status: "LOST"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestDocumentType_DefaultPriority(t *testing.T) {
	assert.Equal(t, 10, printjob.OrderTicket.DefaultPriority())
	assert.Equal(t, 10, printjob.Receipt.DefaultPriority())
	assert.Equal(t, 5, printjob.Report.DefaultPriority())
	assert.Equal(t, 5, printjob.Label.DefaultPriority())
}

func TestDocumentType_DefaultTemplate(t *testing.T) {
	assert.Equal(t, "order-ticket-v1", printjob.OrderTicket.DefaultTemplate())
	assert.Equal(t, "receipt-v1", printjob.Receipt.DefaultTemplate())
}

func TestPayload(t *testing.T) {
	t.Run("binary payload round trips through storage form", func(t *testing.T) {
		p := printjob.ThermalPayload([]byte{0x1b, 0x40, 'h', 'i'})

		decoded, err := printjob.DecodePayload(p.Format(), p.Encode())

		require.NoError(t, err)
		assert.Equal(t, p, decoded)
	})

	t.Run("structured payload is embedded as JSON", func(t *testing.T) {
		p, err := printjob.StructuredPayload(json.RawMessage(`{"title":"Order #12"}`))
		require.NoError(t, err)

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{"format":"structured","data":{"title":"Order #12"}}`, string(raw))
	})

	t.Run("pdf payload is base64 on the wire", func(t *testing.T) {
		raw, err := json.Marshal(printjob.PDFPayload([]byte("pdf")))
		require.NoError(t, err)
		assert.JSONEq(t, `{"format":"pdf","data":"cGRm"}`, string(raw))
	})

	t.Run("empty payload", func(t *testing.T) {
		p := printjob.EmptyPayload()
		assert.True(t, p.IsEmpty())
		assert.Equal(t, "none", p.Format().String())

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t, "null", string(raw))
	})

	t.Run("invalid structured payload", func(t *testing.T) {
		_, err := printjob.StructuredPayload(json.RawMessage(`{`))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
