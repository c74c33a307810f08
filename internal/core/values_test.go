package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportance_ValidLabels(t *testing.T) {
	imp, err := ParseImportance("high")
	require.NoError(t, err)
	assert.Equal(t, ImportanceHigh, imp)

	imp, err = ParseImportance("low")
	require.NoError(t, err)
	assert.Equal(t, ImportanceLow, imp)
}

func TestParseImportance_RejectsUnknownAndCaseVariants(t *testing.T) {
	for _, s := range []string{"superhigh", "HIGH", "", "medium"} {
		_, err := ParseImportance(s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, ErrInvalidImportance), s)
	}
}

func TestParseUrgency(t *testing.T) {
	urg, err := ParseUrgency("high")
	require.NoError(t, err)
	assert.Equal(t, UrgencyHigh, urg)

	_, err = ParseUrgency("asap")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUrgency))
	assert.Contains(t, err.Error(), `"asap"`)
}

func TestFieldError_MatchesKindAndReason(t *testing.T) {
	_, reason := ParseImportance("superhigh")
	err := error(&FieldError{Index: 2, Field: "importance", Err: reason})

	assert.True(t, errors.Is(err, ErrInvalidField))
	assert.True(t, errors.Is(err, ErrInvalidImportance))
	assert.False(t, errors.Is(err, ErrMalformedDocument))
	assert.Contains(t, err.Error(), "entry 2")
	assert.Contains(t, err.Error(), "importance")

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, 2, fieldErr.Index)
}
