package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDBErrorNilIsNil(t *testing.T) {
	assert.NoError(t, wrapDBError("op", nil))
}

func TestWrapDBErrorConvertsNoRows(t *testing.T) {
	err := wrapDBError("get card", sql.ErrNoRows)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWrapDBErrorPreservesOtherErrors(t *testing.T) {
	root := errors.New("disk full")
	err := wrapDBError("insert card", root)
	assert.True(t, errors.Is(err, root))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(wrapDBError("op", sql.ErrNoRows)))
	assert.False(t, isNotFound(errors.New("boom")))
}
