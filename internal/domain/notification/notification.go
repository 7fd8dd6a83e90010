// Package notification defines the outbound notification model and the
// delivery channel abstraction.
package notification

import (
	"context"
	"time"
)

// Type identifies the kind of notification.
type Type string

const (
	// TypeAgendaDigest is the morning summary of the day's agenda.
	TypeAgendaDigest Type = "agenda_digest"

	// TypeRevisionAlert warns that a studied module's retention dropped
	// into the at-risk band.
	TypeRevisionAlert Type = "revision_alert"
)

// Notification is one message to one user.
type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Body      string
	CreatedAt time.Time

	// Metadata carries channel-specific extras (module IDs, agenda date).
	Metadata map[string]string
}

// Channel delivers notifications to users. Implementations must be safe for
// concurrent use; the scheduler jobs fan out over users.
type Channel interface {
	// Name returns a stable channel name, used for logging.
	Name() string

	// Send delivers the notification.
	Send(ctx context.Context, n *Notification) error
}
