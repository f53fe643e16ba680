package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal(t *testing.T) {
	e := New(FileUploaded, map[string]interface{}{"file_id": "f1", "size": 12})

	data, err := Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"file.uploaded"`)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, FileUploaded, got.EventType())
	assert.Equal(t, "f1", got.Payload()["file_id"])
	assert.Equal(t, float64(12), got.Payload()["size"])
	assert.True(t, e.Timestamp().Equal(got.Timestamp()))
}

func TestNew_NilData(t *testing.T) {
	e := New(ChatCleared, nil)
	assert.NotNil(t, e.Payload())
	assert.False(t, e.Timestamp().IsZero())
}
