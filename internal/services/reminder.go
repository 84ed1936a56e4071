package services

import (
	"time"

	"ctfwatch/internal/domain"
)

// ReminderWindow is the pre-event interval during which exactly one reminder
// may fire.
const ReminderWindow = 72 * time.Hour

// ReminderDue reports whether a reminder should be sent for rec at the given
// instant. Due iff no reminder was sent yet and the event starts within the
// window, boundaries inclusive at both 0 and 72h. An event whose start has
// already passed is never due: reminders are pre-event only.
func ReminderDue(rec *domain.TrackedEvent, now time.Time) bool {
	if rec == nil || rec.ReminderSent {
		return false
	}
	lead := rec.StartsAt.Sub(now)
	return lead >= 0 && lead <= ReminderWindow
}
