package errorutil

import "net/http"

// Sentinel errors for the follow graph and mutation rules. Compare with
// errors.Is; matching is by code, so call sites may attach details to a
// fresh instance without breaking comparisons.
var (
	ErrUserNotFound     error = NewDomainError("USER_NOT_FOUND", "user not found", http.StatusNotFound, nil)
	ErrSelfFollow       error = NewDomainError("SELF_FOLLOW_REJECTED", "users cannot follow themselves", http.StatusBadRequest, nil)
	ErrAlreadyFollowing error = NewDomainError("ALREADY_FOLLOWING", "you already follow this user", http.StatusConflict, nil)
	ErrFollowNotFound   error = NewDomainError("FOLLOW_EDGE_NOT_FOUND", "follow relationship not found", http.StatusNotFound, nil)
	ErrNotAuthorized    error = NewDomainError("NOT_AUTHORIZED", "only the owner may modify this resource", http.StatusForbidden, nil)
	ErrDuplicateReview  error = NewDomainError("DUPLICATE_REVIEW", "you have already reviewed this ticket", http.StatusConflict, nil)
)
