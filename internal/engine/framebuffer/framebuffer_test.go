package framebuffer

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	assert.NoError(t, statusError(gl.FRAMEBUFFER_COMPLETE))

	err := statusError(gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "0x8cd6")
	}
	assert.Error(t, statusError(gl.FRAMEBUFFER_UNSUPPORTED))
}
