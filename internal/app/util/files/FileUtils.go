package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// SanitizeName replaces every character other than ASCII letters, digits
// and dots with an underscore.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// UploadName is the stored name of an upload: <unix millis>-<sanitized name>.
func UploadName(t time.Time, original string) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), SanitizeName(filepath.Base(original)))
}

// Mp3Path returns path with its extension replaced by .mp3.
func Mp3Path(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".mp3"
}

// GetFileSize returns the size of the file at filePath in bytes.
func GetFileSize(filePath string) (int64, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ReadTextFile reads the specified file and returns its trimmed text content.
func ReadTextFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}
