// Package email renders and delivers transactional emails over SMTP.
package email

import "context"

// Sender delivers the application's transactional emails.
type Sender interface {
	// SendRecordCreatedEmail confirms a created invoice or quotation to
	// the user who drafted it. Kind is "invoice" or "quotation".
	SendRecordCreatedEmail(ctx context.Context, toEmail, kind, number, clientName string, totalCents int64) error
}
