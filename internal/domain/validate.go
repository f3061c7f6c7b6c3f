package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// Field length bounds.
const (
	MaxUsernameLen    = 150
	MaxTitleLen       = 128
	MaxDescriptionLen = 2048
	MaxHeadlineLen    = 128
	MaxBodyLen        = 8192
)

// ValidateTicketFields checks title/description bounds before persisting.
func ValidateTicketFields(title, description string) error {
	details := map[string]any{}
	if strings.TrimSpace(title) == "" {
		details["title"] = "required"
	} else if utf8.RuneCountInString(title) > MaxTitleLen {
		details["title"] = fmt.Sprintf("must be at most %d characters", MaxTitleLen)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		details["description"] = fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid ticket fields", details)
	}
	return nil
}

// ValidateReviewFields checks rating range and headline/body bounds.
func ValidateReviewFields(rating int, headline, body string) error {
	details := map[string]any{}
	if rating < MinRating || rating > MaxRating {
		details["rating"] = fmt.Sprintf("must be between %d and %d", MinRating, MaxRating)
	}
	if strings.TrimSpace(headline) == "" {
		details["headline"] = "required"
	} else if utf8.RuneCountInString(headline) > MaxHeadlineLen {
		details["headline"] = fmt.Sprintf("must be at most %d characters", MaxHeadlineLen)
	}
	if utf8.RuneCountInString(body) > MaxBodyLen {
		details["body"] = fmt.Sprintf("must be at most %d characters", MaxBodyLen)
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid review fields", details)
	}
	return nil
}

// ValidateUsername checks the username field at signup.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.NewValidationError("invalid username", map[string]any{"username": "required"})
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return apperrors.NewValidationError("invalid username", map[string]any{
			"username": fmt.Sprintf("must be at most %d characters", MaxUsernameLen),
		})
	}
	return nil
}
