package enmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"duplication", NewNameDuplicationError("a"), `NAME_DUPLICATION: name "a" already exists`},
		{"name not found", NewNameNotFoundError("a"), `NAME_NOT_FOUND: name "a" not found`},
		{"id not found", NewIDNotFoundError(7), "ID_NOT_FOUND: id 7 not found"},
		{"key undefined", NewKeyUndefinedError(), "KEY_UNDEFINED: no key specified for structured value"},
		{"invalid key", NewInvalidKeyError("x", "things"), `INVALID_KEY: key "x" does not exist in store "things"`},
		{"non persistent", NewNonPersistentError("things", "initiated"), `NON_PERSISTENT: store "things" is not persistent, cannot be initiated`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorPredicates_MatchWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("add: %w", NewNameDuplicationError("a"))

	assert.True(t, IsNameDuplication(wrapped))
	assert.False(t, IsNameNotFound(wrapped))
	assert.False(t, IsNameDuplication(fmt.Errorf("plain error")))
	assert.False(t, IsNameDuplication(nil))
}

func TestErrorPredicates_DistinguishCodes(t *testing.T) {
	assert.True(t, IsIDNotFound(NewIDNotFoundError(1)))
	assert.True(t, IsKeyUndefined(NewKeyUndefinedError()))
	assert.True(t, IsInvalidKey(NewInvalidKeyError("k", "s")))
	assert.True(t, IsNonPersistent(NewNonPersistentError("s", "closed")))
	assert.False(t, IsInvalidKey(NewKeyUndefinedError()))
}
