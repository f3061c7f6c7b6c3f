package dto

// FollowRequest payload naming the user to follow.
type FollowRequest struct {
	Username string `json:"username"`
}

// FollowListResponse carries both projections over the edge set.
type FollowListResponse struct {
	Following []UserResponse `json:"following"`
	Followers []UserResponse `json:"followers"`
}
