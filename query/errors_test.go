package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorsAreNeverRetryable(t *testing.T) {
	assert.False(t, (&MissingFieldError{}).Retryable())
	assert.False(t, (&InvalidMessageError{}).Retryable())
	assert.False(t, (&ValueOverflowError{}).Retryable())
	assert.False(t, (&UnsupportedKeyTypeError{}).Retryable())
}
