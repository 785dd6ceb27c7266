// Package scoring computes the membership and author-score effects of
// like/dislike toggles. The functions are pure: they look at the acting
// user's current membership in a post's liker/disliker sets and return the
// row operations plus the score delta the caller must commit atomically.
package scoring

// Result describes the effect of one like/dislike call. The four booleans
// are the set mutations to apply; AuthorDelta is added to the post writer's
// score in the same transaction. After applying, the acting user is never
// in both sets.
type Result struct {
	AddLike       bool
	RemoveLike    bool
	AddDislike    bool
	RemoveDislike bool
	AuthorDelta   int64
	NowLiked      bool
	NowDisliked   bool
}

// ApplyLike evaluates a like toggle. liked/disliked report whether the
// acting user is currently in the respective set.
//
//	already liked        -> un-like, author -1
//	currently disliked   -> move to likers, author +2 (cancel -1, add +1)
//	neither              -> fresh like, author +1
func ApplyLike(liked, disliked bool) Result {
	switch {
	case liked:
		return Result{RemoveLike: true, AuthorDelta: -1}
	case disliked:
		return Result{RemoveDislike: true, AddLike: true, AuthorDelta: +2, NowLiked: true}
	default:
		return Result{AddLike: true, AuthorDelta: +1, NowLiked: true}
	}
}

// ApplyDislike is the mirror of ApplyLike: un-dislike +1, move from likers
// to dislikers -2, fresh dislike -1.
func ApplyDislike(liked, disliked bool) Result {
	switch {
	case disliked:
		return Result{RemoveDislike: true, AuthorDelta: +1}
	case liked:
		return Result{RemoveLike: true, AddDislike: true, AuthorDelta: -2, NowDisliked: true}
	default:
		return Result{AddDislike: true, AuthorDelta: -1, NowDisliked: true}
	}
}
