package photos

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewToken(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, NewToken())
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"funny_bird.png", "jdbw7f.png"},
		{"archive.tar.gz", "jdbw7f.gz"},
		{"README", "jdbw7f"},
		{"", "jdbw7f"},
		{".hidden", "jdbw7f.hidden"},
		{"dir.v2/photo", "jdbw7f"},
		{`C:\fotos\pic.JPG`, "jdbw7f.JPG"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Key("jdbw7f", tt.filename), tt.filename)
	}
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StatePersisted.Terminal())
	assert.True(t, StateUploadFailed.Terminal())
	assert.True(t, StatePersistFailed.Terminal())
	assert.False(t, StateUploading.Terminal())
	assert.False(t, StateReceived.Terminal())
}
