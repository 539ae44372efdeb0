package stm32boot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	err := newError(KindNack, "write rejected", nil)
	assert.True(t, errors.Is(err, ErrNack))
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestErrorUnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("short read")
	err := newError(KindTimeout, "", cause)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestErrorMessageFormatting(t *testing.T) {
	assert.Equal(t, "nack", ErrNack.Error())
	assert.Equal(t, "command: Bad reply from bootloader", newError(KindCommand, "Bad reply from bootloader", nil).Error())
}
