package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "meeting.mp3", want: "meeting.mp3"},
		{name: "spaces and symbols", in: "team meeting #1.m4a", want: "team_meeting__1.m4a"},
		{name: "non ascii", in: "vergadering-ö.wav", want: "vergadering__.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestUploadName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)

	assert.Equal(t, "1700000000123-notes.pdf", UploadName(ts, "notes.pdf"))
	assert.Equal(t, "1700000000123-x.mp3", UploadName(ts, "../../x.mp3"))
}

func TestMp3Path(t *testing.T) {
	assert.Equal(t, "/uploads/1-a.mp3", Mp3Path("/uploads/1-a.m4a"))
	assert.Equal(t, "/uploads/1-b.mp3", Mp3Path("/uploads/1-b.webm"))
	assert.Equal(t, "noext.mp3", Mp3Path("noext"))
}

func TestGetFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 42), 0644))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), size)

	_, err = GetFileSize(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  agenda items \n"), 0644))

	text, err := ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, "agenda items", text)
}
