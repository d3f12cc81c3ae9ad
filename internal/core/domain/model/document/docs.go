// Package document is the renderer-neutral model of what gets printed:
// receipts, order tickets, delivery labels and reports.
package document
