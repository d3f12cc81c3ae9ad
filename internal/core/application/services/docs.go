// Package services holds the application services of the fulfillment
// pipeline: settings providers with atomic snapshots, the print routing
// engine and the notification dispatcher. Command handlers and jobs call
// into these; they in turn talk to the outside world only through ports.
package services
