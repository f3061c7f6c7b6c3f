package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

func validationDetails(t *testing.T, err error) map[string]any {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	return domainErr.Details
}

func TestValidateTicketFields(t *testing.T) {
	assert.NoError(t, ValidateTicketFields("The Left Hand of Darkness", ""))
	assert.NoError(t, ValidateTicketFields(strings.Repeat("a", MaxTitleLen), strings.Repeat("b", MaxDescriptionLen)))

	details := validationDetails(t, ValidateTicketFields("", "anything"))
	assert.Contains(t, details, "title")

	details = validationDetails(t, ValidateTicketFields("   ", ""))
	assert.Contains(t, details, "title")

	details = validationDetails(t, ValidateTicketFields(strings.Repeat("a", MaxTitleLen+1), ""))
	assert.Contains(t, details, "title")

	details = validationDetails(t, ValidateTicketFields("ok", strings.Repeat("b", MaxDescriptionLen+1)))
	assert.Contains(t, details, "description")
}

func TestValidateReviewFields(t *testing.T) {
	assert.NoError(t, ValidateReviewFields(MinRating, "fine", ""))
	assert.NoError(t, ValidateReviewFields(MaxRating, "great", strings.Repeat("b", MaxBodyLen)))

	details := validationDetails(t, ValidateReviewFields(MaxRating+2, "great", ""))
	assert.Contains(t, details, "rating")

	details = validationDetails(t, ValidateReviewFields(MinRating-1, "great", ""))
	assert.Contains(t, details, "rating")

	details = validationDetails(t, ValidateReviewFields(3, "", ""))
	assert.Contains(t, details, "headline")

	details = validationDetails(t, ValidateReviewFields(3, strings.Repeat("h", MaxHeadlineLen+1), ""))
	assert.Contains(t, details, "headline")

	details = validationDetails(t, ValidateReviewFields(3, "ok", strings.Repeat("b", MaxBodyLen+1)))
	assert.Contains(t, details, "body")

	// Multiple violations surface together.
	details = validationDetails(t, ValidateReviewFields(9, "", strings.Repeat("b", MaxBodyLen+1)))
	assert.Len(t, details, 3)
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("  "))
	assert.Error(t, ValidateUsername(strings.Repeat("u", MaxUsernameLen+1)))
}
