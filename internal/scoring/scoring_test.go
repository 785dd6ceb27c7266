package scoring

import "testing"

// membership tracks one user's presence in a post's reaction sets across a
// sequence of toggles.
type membership struct{ liked, disliked bool }

func (m *membership) apply(t *testing.T, r Result) {
	t.Helper()
	if r.AddLike {
		m.liked = true
	}
	if r.RemoveLike {
		m.liked = false
	}
	if r.AddDislike {
		m.disliked = true
	}
	if r.RemoveDislike {
		m.disliked = false
	}
	if m.liked && m.disliked {
		t.Fatalf("user ended up in both sets after %+v", r)
	}
	if m.liked != r.NowLiked || m.disliked != r.NowDisliked {
		t.Fatalf("membership (%v,%v) disagrees with result (%v,%v)",
			m.liked, m.disliked, r.NowLiked, r.NowDisliked)
	}
}

func TestApplyLikeTransitions(t *testing.T) {
	tests := []struct {
		name            string
		liked, disliked bool
		wantDelta       int64
		wantLiked       bool
	}{
		{"fresh like", false, false, +1, true},
		{"un-like", true, false, -1, false},
		{"dislike to like", false, true, +2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := membership{liked: tt.liked, disliked: tt.disliked}
			r := ApplyLike(tt.liked, tt.disliked)
			if r.AuthorDelta != tt.wantDelta {
				t.Fatalf("AuthorDelta = %d, want %d", r.AuthorDelta, tt.wantDelta)
			}
			m.apply(t, r)
			if m.liked != tt.wantLiked {
				t.Fatalf("liked = %v, want %v", m.liked, tt.wantLiked)
			}
		})
	}
}

func TestApplyDislikeTransitions(t *testing.T) {
	tests := []struct {
		name            string
		liked, disliked bool
		wantDelta       int64
		wantDisliked    bool
	}{
		{"fresh dislike", false, false, -1, true},
		{"un-dislike", false, true, +1, false},
		{"like to dislike", true, false, -2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := membership{liked: tt.liked, disliked: tt.disliked}
			r := ApplyDislike(tt.liked, tt.disliked)
			if r.AuthorDelta != tt.wantDelta {
				t.Fatalf("AuthorDelta = %d, want %d", r.AuthorDelta, tt.wantDelta)
			}
			m.apply(t, r)
			if m.disliked != tt.wantDisliked {
				t.Fatalf("disliked = %v, want %v", m.disliked, tt.wantDisliked)
			}
		})
	}
}

// Double like is an idempotent pair: the post returns to neutral and the
// author's score nets to zero.
func TestDoubleLikeNetsToZero(t *testing.T) {
	var m membership
	var total int64

	r := ApplyLike(m.liked, m.disliked)
	total += r.AuthorDelta
	m.apply(t, r)

	r = ApplyLike(m.liked, m.disliked)
	total += r.AuthorDelta
	m.apply(t, r)

	if total != 0 {
		t.Fatalf("cumulative delta = %d, want 0", total)
	}
	if m.liked || m.disliked {
		t.Fatalf("expected neutral state, got %+v", m)
	}
}

// Like then dislike from neutral nets -1 and leaves the user only in the
// disliker set.
func TestLikeThenDislike(t *testing.T) {
	var m membership
	var total int64

	r := ApplyLike(m.liked, m.disliked)
	total += r.AuthorDelta
	m.apply(t, r)

	r = ApplyDislike(m.liked, m.disliked)
	total += r.AuthorDelta
	m.apply(t, r)

	if total != -1 {
		t.Fatalf("cumulative delta = %d, want -1", total)
	}
	if m.liked || !m.disliked {
		t.Fatalf("expected disliked only, got %+v", m)
	}
}

// Any closed walk over the toggle graph that returns to neutral must leave
// the author's score untouched.
func TestToggleWalkConservesScore(t *testing.T) {
	var m membership
	var total int64
	steps := []func(bool, bool) Result{
		ApplyLike, ApplyDislike, ApplyLike, ApplyLike, ApplyDislike, ApplyDislike,
	}
	for _, step := range steps {
		r := step(m.liked, m.disliked)
		total += r.AuthorDelta
		m.apply(t, r)
	}
	if m.liked || m.disliked {
		t.Fatalf("walk should end neutral, got %+v", m)
	}
	if total != 0 {
		t.Fatalf("cumulative delta = %d, want 0", total)
	}
}
