package implementation

import (
	"context"
	"testing"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *GormRecordStore {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	store := NewGormRecordStore(db, database.DriverSQLite)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGormRecordStore_Ping(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, database.DriverSQLite, store.Driver())
}

func TestGormFileRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).FileRepository()

	text := "package main\n"
	f := &entity.File{Filename: "0a1b", OriginalName: "main.go", MimeType: "text/plain", Size: int64(len(text)), Content: &text}
	require.NoError(t, repo.Create(ctx, f))
	require.NotEqual(t, uuid.Nil, f.Id)

	got, err := repo.FindById(ctx, f.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "main.go", got.OriginalName)
	assert.Equal(t, int64(len(text)), got.Size)
	require.NotNil(t, got.Content)
	assert.Equal(t, text, *got.Content)
	assert.True(t, got.UploadedAt.Equal(f.UploadedAt))

	binary := &entity.File{Filename: "ff00", OriginalName: "logo.png", MimeType: "image/png", Size: 10}
	require.NoError(t, repo.Create(ctx, binary))
	got, err = repo.FindById(ctx, binary.Id)
	require.NoError(t, err)
	assert.Nil(t, got.Content)
}

func TestGormFileRepository_OrderAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).FileRepository()

	older := &entity.File{OriginalName: "older.txt"}
	newer := &entity.File{OriginalName: "newer.txt"}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	files, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "newer.txt", files[0].OriginalName)

	existed, err := repo.Delete(ctx, older.Id)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.Delete(ctx, older.Id)
	require.NoError(t, err)
	assert.False(t, existed)

	missing, err := repo.FindById(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormChatMessageRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := store.ChatMessageRepository()

	require.NoError(t, repo.Create(ctx, &entity.ChatMessage{Content: "explain", Sender: entity.ChatSenderUser, FileIds: []string{"a", "b"}}))
	require.NoError(t, repo.Create(ctx, &entity.ChatMessage{Content: "sure", Sender: entity.ChatSenderAI}))

	msgs, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.ChatSenderUser, msgs[0].Sender)
	assert.Equal(t, []string{"a", "b"}, msgs[0].FileIds)
	assert.Equal(t, entity.ChatSenderAI, msgs[1].Sender)
	assert.Equal(t, []string{}, msgs[1].FileIds)

	require.NoError(t, store.FileRepository().Create(ctx, &entity.File{OriginalName: "stays.txt"}))
	require.NoError(t, repo.DeleteAll(ctx))

	msgs, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	files, err := store.FileRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestGormUserRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).UserRepository()

	require.NoError(t, repo.Create(ctx, &entity.User{Username: "linus", Password: "hash"}))
	err := repo.Create(ctx, &entity.User{Username: "linus", Password: "hash"})
	assert.ErrorIs(t, err, contract.ErrDuplicate)

	u, err := repo.FindByUsername(ctx, "linus")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "hash", u.Password)
}
