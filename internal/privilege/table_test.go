package privilege

import "testing"

func TestRankCoversLadder(t *testing.T) {
	names := Names()
	if len(names) != 10 {
		t.Fatalf("expected 10 privilege names, got %d", len(names))
	}
	for want, name := range names {
		got, ok := Rank(name)
		if !ok {
			t.Fatalf("Rank(%q) reported unranked", name)
		}
		if got != want {
			t.Fatalf("Rank(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestRankRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "user", "Proffessional", "FIRST DEVELOPER", "Admin"} {
		if r, ok := Rank(name); ok {
			t.Fatalf("Rank(%q) = %d, want unranked", name, r)
		}
	}
}

func TestRankOrderIsTotal(t *testing.T) {
	lo, _ := Rank(User)
	hi, _ := Rank(FirstDeveloper)
	if lo != 0 || hi != 9 {
		t.Fatalf("ladder ends = (%d, %d), want (0, 9)", lo, hi)
	}
	mod, _ := Rank(Moderator)
	if mod != 4 {
		t.Fatalf("Rank(Moderator) = %d, want 4", mod)
	}
	if pro, _ := Rank(Proffesional); pro > ScoreTierMax {
		t.Fatalf("Proffesional must be score-tier, rank %d > %d", pro, ScoreTierMax)
	}
}
