package apperror_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"team-collab/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(apperror.ErrTaskNotFound))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(fmt.Errorf("wrapped: %w", apperror.ErrDeleteTaskDenied)))
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("boom")))
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(nil))
}

func TestIs_MatchesKindAndKey(t *testing.T) {
	copyOf := apperror.New(apperror.KindNotFound, "taskNotFound", "different text")
	assert.ErrorIs(t, copyOf, apperror.ErrTaskNotFound)
	assert.NotErrorIs(t, copyOf, apperror.ErrCommentNotFound)
}

func TestInternal_UnwrapsCause(t *testing.T) {
	err := apperror.Internal("Error fetching tasks", sql.ErrConnDone)

	require.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "Error fetching tasks")
	assert.Contains(t, err.Error(), sql.ErrConnDone.Error())

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInternal, appErr.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", apperror.KindValidation.String())
	assert.Equal(t, "conflict", apperror.KindConflict.String())
	assert.Equal(t, "internal", apperror.Kind(42).String())
}
