// Package username implements the username-change cooldown rules. A user
// may rename at most once per 30 days; the history of changes is append-only
// and only the most recent record matters here.
package username

import "time"

// CooldownDays is the fixed wait between two username changes.
const CooldownDays = 30

// Stable denial reasons, sent verbatim as the response `msg`.
const (
	ReasonSameUsername = "The old and new username must be different"
	ReasonUnavailable  = "The user with this username already exists or changing cooldown is active"
)

// Decision is the outcome of a username-change check. DaysLeft is only
// meaningful on the ReasonUnavailable branch, where it reports
// CooldownDays minus the days since the last change. It is reported even
// when the active cause is a name collision, matching the historical
// behavior clients already handle (DaysLeft may then be zero or negative).
type Decision struct {
	Allowed  bool
	Reason   string
	DaysLeft int
}

// CanChange decides whether a user currently named current may take the
// name requested. lastChange is the timestamp of the most recent change
// record, nil when the user never renamed; taken reports whether another
// user already owns requested.
func CanChange(current, requested string, lastChange *time.Time, taken bool, now time.Time) Decision {
	if requested == current {
		return Decision{Reason: ReasonSameUsername}
	}
	days := CooldownDays + 1
	if lastChange != nil {
		d := now.Sub(*lastChange)
		if d < 0 {
			d = -d
		}
		days = int(d.Hours() / 24)
	}
	if taken || days < CooldownDays {
		return Decision{Reason: ReasonUnavailable, DaysLeft: CooldownDays - days}
	}
	return Decision{Allowed: true}
}
