package domain

import "context"

// NotificationKind distinguishes the one-time initial alert from the
// one-time pre-event reminder.
type NotificationKind int

const (
	NotificationInitial NotificationKind = iota
	NotificationReminder
)

func (k NotificationKind) String() string {
	if k == NotificationReminder {
		return "reminder"
	}
	return "initial"
}

// EventFeed fetches event listings from the upstream API (infrastructure port).
type EventFeed interface {
	List(ctx context.Context) ([]EventSummary, error)
	Detail(ctx context.Context, slug string) (*EventDetail, error)
}

// Notifier delivers one notification about one event. Token may be empty.
type Notifier interface {
	Send(ctx context.Context, kind NotificationKind, event *EventDetail, token string) error
}

// TrackedEventStore persists the set of already-notified events. Get returns
// ErrNotFound for unknown ids. Flush persists the current snapshot; for
// stores whose upserts are individually durable it is a no-op.
type TrackedEventStore interface {
	Get(ctx context.Context, id string) (*TrackedEvent, error)
	All(ctx context.Context) ([]*TrackedEvent, error)
	Upsert(ctx context.Context, rec *TrackedEvent) error
	Flush(ctx context.Context) error
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the
// given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventEmailData holds the fields the notification templates interpolate.
type EventEmailData struct {
	Name      string
	Organizer string
	Starts    string
	Ends      string
	URL       string
	Token     string
	BannerURL string
}
