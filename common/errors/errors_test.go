package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Error(t *testing.T) {
	cause := stderrors.New("boom")

	assert.Equal(t, "INTERNAL: saving: boom", Internal("saving", cause).Error())
	assert.Equal(t, "INVALID_INPUT: missing job_id", InvalidInput("missing job_id", nil).Error())
}

func TestDomainError_UnwrapAndStack(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Unavailable("writing file", cause)

	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.StackTrace())
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("clean job_7: %w", InvalidInput("missing title and company", nil))

	assert.True(t, IsType(err, ErrTypeInvalidInput))
	assert.False(t, IsType(err, ErrTypeInternal))
	assert.False(t, IsType(stderrors.New("plain"), ErrTypeInvalidInput))
}

func TestRecovered(t *testing.T) {
	var err *DomainError
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = Recovered("annotating record", r)
			}
		}()
		var m map[string]int
		m["x"] = 1
	}()

	require.NotNil(t, err)
	assert.Equal(t, ErrTypeInternal, err.Type)
	assert.Contains(t, err.Error(), "assignment to entry in nil map")
	assert.NotEmpty(t, err.StackTrace())
}
