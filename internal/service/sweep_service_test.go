package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/repository/memory"
	"ai-workspace-be/pkg/events"
	"ai-workspace-be/pkg/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o640))
	when := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, when, when))
}

func TestSweepService_RunOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	files, err := filestore.New(dir)
	require.NoError(t, err)
	store := memory.NewRecordStore()
	publisher := &recordingPublisher{}

	writeAged(t, dir, "known", 48*time.Hour)
	writeAged(t, dir, "orphan", 48*time.Hour)
	writeAged(t, dir, "fresh-orphan", time.Minute)
	writeAged(t, dir, "stale.tmp", 48*time.Hour)
	require.NoError(t, store.FileRepository().Create(ctx, &entity.File{Filename: "known", OriginalName: "k.txt"}))

	svc := NewSweepService(store, files, publisher, logger.NewNopLogger(), 24*time.Hour)
	removed, err := svc.RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.True(t, files.Exists("known"))
	assert.True(t, files.Exists("fresh-orphan"))
	assert.False(t, files.Exists("orphan"))
	assert.False(t, files.Exists("stale.tmp"))
	assert.Equal(t, []string{events.UploadsSwept}, publisher.Types())

	removed, err = svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Len(t, publisher.Types(), 1)
}
