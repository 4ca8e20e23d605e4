package service

import (
	"social-service/internal/models"
)

// rankPosts orders a recency-sorted candidate list for one requester.
//
// Posts authored inside the requester's circle (friends plus the requester)
// come first, keeping their relative order. When a search term was applied
// and the circle matched anything, posts from outside the circle are dropped
// entirely. When the circle matched nothing the full candidate list is
// returned untouched, so a feed is never empty just because the requester
// has no friends yet.
func rankPosts(posts []models.Post, circle map[string]bool, searched bool) []models.Post {
	var own, others []models.Post
	for _, post := range posts {
		if circle[post.UserID.Hex()] {
			own = append(own, post)
		} else {
			others = append(others, post)
		}
	}

	if len(own) == 0 {
		return posts
	}
	if searched {
		return own
	}
	return append(own, others...)
}

// toggleMembership flips the presence of member in a likes set. The second
// return reports whether the member was added.
func toggleMembership(set []string, member string) ([]string, bool) {
	for i, m := range set {
		if m == member {
			out := make([]string, 0, len(set)-1)
			out = append(out, set[:i]...)
			return append(out, set[i+1:]...), false
		}
	}
	return append(set, member), true
}
