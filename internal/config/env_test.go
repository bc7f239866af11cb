package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		openaiKey     string
		expectedKey   string
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid OpenAI key",
			openaiKey:   "sk-1234567890abcdef1234567890abcdef",
			expectedKey: "sk-1234567890abcdef1234567890abcdef",
			expectError: false,
		},
		{
			name:        "surrounding whitespace is trimmed",
			openaiKey:   "  sk-1234567890abcdef1234567890abcdef \n",
			expectedKey: "sk-1234567890abcdef1234567890abcdef",
			expectError: false,
		},
		{
			name:          "invalid OpenAI key format",
			openaiKey:     "invalid-key",
			expectError:   true,
			errorContains: "invalid OPENAI_API_KEY format",
		},
		{
			name:          "OpenAI key too short",
			openaiKey:     "sk-short",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:        "empty key is allowed",
			openaiKey:   "",
			expectError: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.openaiKey)

			apiKeys, err := GetAPIKeys()

			if tc.expectError {
				assert.Error(t, err)
				if tc.errorContains != "" {
					assert.Contains(t, err.Error(), tc.errorContains)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, apiKeys)
				assert.Equal(t, tc.expectedKey, apiKeys.OpenAI)
			}
		})
	}
}

func TestRequireAPIKeys(t *testing.T) {
	assert.NoError(t, RequireAPIKeys(&APIKeys{OpenAI: "sk-1234567890abcdef1234567890abcdef"}))

	err := RequireAPIKeys(&APIKeys{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	assert.Error(t, RequireAPIKeys(nil))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("MINUTES_TEST_VALUE=from-dotenv\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	os.Unsetenv("MINUTES_TEST_VALUE")
	defer os.Unsetenv("MINUTES_TEST_VALUE")

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "from-dotenv", os.Getenv("MINUTES_TEST_VALUE"))
}

func TestValidateConcurrency(t *testing.T) {
	assert.NoError(t, ValidateConcurrency(10, "pipeline"))
	assert.Error(t, ValidateConcurrency(0, "pipeline"))
	assert.Error(t, ValidateConcurrency(MaxConcurrency+1, "pipeline"))
}

func TestValidateWindow(t *testing.T) {
	assert.NoError(t, ValidateWindow(DefaultWindowSeconds))
	assert.Error(t, ValidateWindow(0))
	assert.Error(t, ValidateWindow(-300))
	assert.EqualError(t, ValidateWindow(MaxWindowSeconds+1),
		fmt.Sprintf("window size out of range (must be between 1 and %d)", MaxWindowSeconds))
}

func TestValidateTimeout(t *testing.T) {
	assert.NoError(t, ValidateTimeout(0, "segment"))
	assert.NoError(t, ValidateTimeout(2*time.Minute, "segment"))
	assert.Error(t, ValidateTimeout(-time.Second, "segment"))
	assert.Error(t, ValidateTimeout(31*time.Minute, "segment"))
}
