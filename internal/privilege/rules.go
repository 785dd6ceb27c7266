package privilege

import (
	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
	"github.com/DES-Destry/Unimaster-blog-core/internal/utils"
)

// Stable denial reasons. Handlers send these verbatim in the response `msg`
// so clients can branch on them; tests assert the exact strings.
const (
	ReasonIncorrectPrivilege = "Incorrect privilege to set"
	ReasonIncorrectUsername  = "Incorrect username for search"
	ReasonAccessDenied       = "Access denied"
	ReasonIncorrectPassword  = "Incorrect password"
)

// Decision is the discriminated outcome of an authorization rule. A denied
// decision always carries one of the Reason constants above; rule evaluation
// never returns a generic error.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// CanSetPrivilege decides whether actor may set target's privilege to
// requested. target is nil when the username lookup found nobody. Rules are
// evaluated in order:
//
//  1. requested must be a ranked name;
//  2. target must exist;
//  3. the actor may only act on strictly lower-ranked targets;
//  4. score-tier privileges (rank <= ScoreTierMax) are earned, never set,
//     not even by a First Developer.
func CanSetPrivilege(actor *model.User, target *model.User, requested string) Decision {
	reqRank, ok := Rank(requested)
	if !ok {
		return deny(ReasonIncorrectPrivilege)
	}
	if target == nil {
		return deny(ReasonIncorrectUsername)
	}
	actorRank, ok := Rank(actor.Privilege)
	if !ok {
		return deny(ReasonAccessDenied)
	}
	targetRank, ok := Rank(target.Privilege)
	if !ok {
		return deny(ReasonAccessDenied)
	}
	if targetRank >= actorRank {
		return deny(ReasonAccessDenied)
	}
	if reqRank <= ScoreTierMax {
		return deny(ReasonAccessDenied)
	}
	return allow()
}

// CanDeleteUser decides whether actor may delete target. A First Developer
// deletes unconditionally, no password required. Everyone else may only
// delete their own account and must supply the matching password. The two
// failure modes keep distinct reasons even though both answer with 401/403.
func CanDeleteUser(actor *model.User, target *model.User, password string) Decision {
	if target == nil {
		return deny(ReasonIncorrectUsername)
	}
	if actor.Privilege == FirstDeveloper {
		return allow()
	}
	if actor.ID != target.ID {
		return deny(ReasonAccessDenied)
	}
	if !utils.VerifyPassword(target.PasswordHash, password) {
		return deny(ReasonIncorrectPassword)
	}
	return allow()
}
