// Package notification models customer and recipient messages sent when an
// order changes status: the settings that decide what is sent, the template
// context, and the audit record of every message handed to a provider.
//
// Factory settings are embedded from defaults.yaml and returned when no
// settings have been saved yet.
package notification
