package privilege

import (
	"testing"

	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
	"github.com/DES-Destry/Unimaster-blog-core/internal/utils"
)

func userWith(id uint64, priv string) *model.User {
	return &model.User{ID: id, Username: "u", Privilege: priv}
}

func TestCanSetPrivilege(t *testing.T) {
	tests := []struct {
		name       string
		actor      *model.User
		target     *model.User
		requested  string
		allowed    bool
		wantReason string
	}{
		{
			name:       "unknown privilege name",
			actor:      userWith(1, FirstDeveloper),
			target:     userWith(2, User),
			requested:  "Proffessional",
			wantReason: ReasonIncorrectPrivilege,
		},
		{
			name:       "target not found",
			actor:      userWith(1, FirstDeveloper),
			target:     nil,
			requested:  Moderator,
			wantReason: ReasonIncorrectUsername,
		},
		{
			name:       "score-tier denied even for first developer",
			actor:      userWith(1, FirstDeveloper),
			target:     userWith(2, User),
			requested:  ActiveUser,
			wantReason: ReasonAccessDenied,
		},
		{
			name:       "moderator cannot touch equal rank",
			actor:      userWith(1, Moderator),
			target:     userWith(2, Moderator),
			requested:  MainModerator,
			wantReason: ReasonAccessDenied,
		},
		{
			name:       "moderator cannot touch higher rank",
			actor:      userWith(1, Moderator),
			target:     userWith(2, Developer),
			requested:  Moderator,
			wantReason: ReasonAccessDenied,
		},
		{
			name:       "moderator cannot grant score-tier to lower rank",
			actor:      userWith(1, Moderator),
			target:     userWith(2, User),
			requested:  ActiveUser,
			wantReason: ReasonAccessDenied,
		},
		{
			name:      "first developer promotes user to moderator",
			actor:     userWith(1, FirstDeveloper),
			target:    userWith(2, User),
			requested: Moderator,
			allowed:   true,
		},
		{
			name:      "administrator promotes user to main moderator",
			actor:     userWith(1, Administrator),
			target:    userWith(2, Moderator),
			requested: MainModerator,
			allowed:   true,
		},
		{
			name:       "unranked actor cannot authorize",
			actor:      userWith(1, "Owner"),
			target:     userWith(2, User),
			requested:  Moderator,
			wantReason: ReasonAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanSetPrivilege(tt.actor, tt.target, tt.requested)
			if d.Allowed != tt.allowed {
				t.Fatalf("Allowed = %v, want %v (reason %q)", d.Allowed, tt.allowed, d.Reason)
			}
			if !tt.allowed && d.Reason != tt.wantReason {
				t.Fatalf("Reason = %q, want %q", d.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanDeleteUser(t *testing.T) {
	hash, err := utils.HashPassword("123456789", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	target := &model.User{ID: 2, Privilege: User, PasswordHash: hash}

	t.Run("first developer deletes without password", func(t *testing.T) {
		d := CanDeleteUser(userWith(1, FirstDeveloper), target, "")
		if !d.Allowed {
			t.Fatalf("denied with reason %q", d.Reason)
		}
	})

	t.Run("self deletion with correct password", func(t *testing.T) {
		actor := &model.User{ID: 2, Privilege: User}
		if d := CanDeleteUser(actor, target, "123456789"); !d.Allowed {
			t.Fatalf("denied with reason %q", d.Reason)
		}
	})

	t.Run("self deletion with wrong password", func(t *testing.T) {
		actor := &model.User{ID: 2, Privilege: User}
		d := CanDeleteUser(actor, target, "Some rubbish")
		if d.Allowed || d.Reason != ReasonIncorrectPassword {
			t.Fatalf("got (%v, %q), want deny with %q", d.Allowed, d.Reason, ReasonIncorrectPassword)
		}
	})

	t.Run("other user denied regardless of password", func(t *testing.T) {
		d := CanDeleteUser(userWith(3, Moderator), target, "123456789")
		if d.Allowed || d.Reason != ReasonAccessDenied {
			t.Fatalf("got (%v, %q), want deny with %q", d.Allowed, d.Reason, ReasonAccessDenied)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		d := CanDeleteUser(userWith(1, FirstDeveloper), nil, "")
		if d.Allowed || d.Reason != ReasonIncorrectUsername {
			t.Fatalf("got (%v, %q), want deny with %q", d.Allowed, d.Reason, ReasonIncorrectUsername)
		}
	})
}
