// Package privilege holds the fixed privilege ladder and the authorization
// rules built on top of it. The ladder is an immutable lookup table built
// once at init; there is no mutable state in this package.
package privilege

// Canonical privilege names, lowest rank first. "Proffesional" keeps its
// historical spelling: clients already depend on the exact string.
const (
	User              = "User"
	ActiveUser        = "Active User"
	Proffesional      = "Proffesional"
	Legend            = "Legend"
	Moderator         = "Moderator"
	MainModerator     = "Main Moderator"
	Administrator     = "Administrator"
	MainAdministrator = "Main Administrator"
	Developer         = "Developer"
	FirstDeveloper    = "First Developer"
)

// ScoreTierMax is the highest rank that is earned through post score rather
// than granted by an administrator. Ranks at or below it can never be set
// through the privilege endpoint.
const ScoreTierMax = 3

// Default is the privilege assigned at registration.
const Default = User

// ladder lists every valid privilege in rank order; the slice index is the rank.
var ladder = []string{
	User,
	ActiveUser,
	Proffesional,
	Legend,
	Moderator,
	MainModerator,
	Administrator,
	MainAdministrator,
	Developer,
	FirstDeveloper,
}

var ranks = func() map[string]int {
	m := make(map[string]int, len(ladder))
	for i, name := range ladder {
		m[name] = i
	}
	return m
}()

// Rank resolves a privilege name to its numeric rank. The second return is
// false for any name outside the ladder; callers must treat an unranked
// name as "cannot authorize", never as rank 0.
func Rank(name string) (int, bool) {
	r, ok := ranks[name]
	return r, ok
}

// Names returns the ladder in rank order. The returned slice is a copy.
func Names() []string {
	out := make([]string, len(ladder))
	copy(out, ladder)
	return out
}
