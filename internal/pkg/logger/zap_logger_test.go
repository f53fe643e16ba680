package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := NewIsolatedLogger(path)

	l.Info("EVENTS", "file.uploaded", map[string]interface{}{"file_id": "abc"})
	l.Debug("EVENTS", "below file level", nil)
	require.NoError(t, l.Sync())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}

	require.Len(t, lines, 1)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "file.uploaded", lines[0]["message"])
	assert.Equal(t, "EVENTS", lines[0]["module"])
	assert.Equal(t, map[string]interface{}{"file_id": "abc"}, lines[0]["details"])
}

func TestNopLogger(t *testing.T) {
	var l ILogger = NewNopLogger()
	l.Error("TEST", "ignored", map[string]interface{}{"error": "boom"})
	assert.NoError(t, l.Sync())
}
