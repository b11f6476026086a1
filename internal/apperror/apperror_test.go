package apperror

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("dup %d", 1)))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("outer: %w", NotFound("job %d", 7))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(nil, KindInternal))
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("status", "unknown status %q", "done")
	assert.Equal(t, "status", err.Field)
	assert.Equal(t, `unknown status "done"`, err.Error())
}

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause, "failed to load job")
	assert.Equal(t, KindInternal, err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
