package newsgrab_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/newsgrab"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := newsgrab.Errorf(newsgrab.ENOTFOUND, "source %q not found", "test")

	assert.Equal(t, newsgrab.ENOTFOUND, newsgrab.ErrorCode(err))
	assert.Equal(t, "source \"test\" not found", newsgrab.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("save content: %w", newsgrab.Errorf(newsgrab.ECONFLICT, "duplicate"))

	assert.Equal(t, newsgrab.ECONFLICT, newsgrab.ErrorCode(err))
	assert.Equal(t, "duplicate", newsgrab.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, newsgrab.EINTERNAL, newsgrab.ErrorCode(err))
	assert.Equal(t, "Internal error.", newsgrab.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newsgrab.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newsgrab.ErrorMessage(nil))
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", newsgrab.Fingerprint(nil))
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", newsgrab.FingerprintString("hello"))
	assert.Equal(t, newsgrab.Fingerprint([]byte("濕地")), newsgrab.FingerprintString("濕地"))
}

func TestExtraction_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ext  *newsgrab.Extraction
		msg  string
	}{
		{"nil", nil, "no extraction"},
		{"no title", &newsgrab.Extraction{Text: "t", HTML: "h"}, "empty title"},
		{"no text", &newsgrab.Extraction{Title: "T", HTML: "h"}, "empty text"},
		{"no html", &newsgrab.Extraction{Title: "T", Text: "t"}, "empty html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ext.Validate()
			assert.Equal(t, newsgrab.EEXTRACT, newsgrab.ErrorCode(err))
			assert.Equal(t, tt.msg, newsgrab.ErrorMessage(err))
		})
	}

	t.Run("complete", func(t *testing.T) {
		t.Parallel()

		ext := &newsgrab.Extraction{Title: "T", Text: "t", HTML: "<p>t</p>"}
		assert.NoError(t, ext.Validate())
	})
}
