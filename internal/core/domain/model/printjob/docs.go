// Package printjob models documents queued for printer agents.
//
// The package includes:
//   - PrintJob: a queued document and its lifecycle
//   - Status: PENDING -> PRINTING -> COMPLETED | FAILED, with retry from FAILED
//   - DocumentType, Destination: what is printed and where it goes
//   - Payload: the rendered content, one of pdf, thermal, structured or none
//
// Agents consume jobs by priority, highest first, then oldest first.
package printjob
