package domain

import "time"

// Follow is a directed edge: the follower subscribes to the followed user's
// posts. Following is not symmetric. A user never follows themselves and the
// (follower, followed) pair is unique.
type Follow struct {
	ID         string
	FollowerID string
	FollowedID string
	CreatedAt  time.Time
}
