package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memClipboard struct {
	text string
	err  error
}

func (m *memClipboard) WriteText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func TestCopyOrLog(t *testing.T) {
	cb := &memClipboard{}
	assert.True(t, CopyOrLog(cb, "snippet"))
	assert.Equal(t, "snippet", cb.text)

	failing := &memClipboard{err: errors.New("denied")}
	assert.False(t, CopyOrLog(failing, "snippet"))

	assert.False(t, CopyOrLog(nil, "snippet"))
}
