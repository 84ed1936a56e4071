package domain

import "time"

// AccessFlag is the tri-state accessibility signal derived from the upstream
// "requires code" indicator. Unknown is policy-equivalent to Open: absence of
// information must never hide a public event.
type AccessFlag int

const (
	AccessUnknown AccessFlag = iota
	AccessOpen
	AccessRestricted
)

func (f AccessFlag) String() string {
	switch f {
	case AccessOpen:
		return "open"
	case AccessRestricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// EventSummary is the minimal identity returned by the upstream list endpoint.
type EventSummary struct {
	ID   string
	Slug string
}

// EventDetail is the full event record returned by the upstream detail endpoint.
type EventDetail struct {
	ID               string
	Slug             string
	Name             string
	Organizer        string
	StartsAt         time.Time
	EndsAt           time.Time
	Description      string
	LongDescription  string
	ShortDescription string
	Instructions     string
	JoinInstructions string
	BannerURL        string
	Access           AccessFlag
}

// TextFields returns the free-text fields in the fixed order the classifier
// scans them. Earlier fields win when several contain a token.
func (d *EventDetail) TextFields() []string {
	return []string{
		d.Description,
		d.LongDescription,
		d.ShortDescription,
		d.Instructions,
		d.JoinInstructions,
	}
}

// TrackedEvent marks an event as already notified. A record exists for an id
// iff the initial alert was confirmed sent; ReminderSent flips false to true
// exactly once and never back. Records are not pruned after the event ends.
type TrackedEvent struct {
	ID           string    `json:"-"`
	Slug         string    `json:"slug"`
	StartsAt     time.Time `json:"starts_at"`
	LastChecked  time.Time `json:"checked"`
	ReminderSent bool      `json:"reminder_sent"`
}
