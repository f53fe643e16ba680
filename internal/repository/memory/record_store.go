package memory

import (
	"context"

	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/clock"

	"github.com/patrickmn/go-cache"
)

const DriverName = "memory"

// RecordStore keeps every record in process memory. Nothing survives a restart.
type RecordStore struct {
	users    *UserRepository
	files    *FileRepository
	messages *ChatMessageRepository
}

var _ contract.RecordStore = (*RecordStore)(nil)

func NewRecordStore() *RecordStore {
	return &RecordStore{
		users:    &UserRepository{cache: newCache()},
		files:    &FileRepository{cache: newCache(), clock: clock.NewMonotonic()},
		messages: &ChatMessageRepository{cache: newCache(), clock: clock.NewMonotonic()},
	}
}

// Records never expire and no janitor goroutine is started.
func newCache() *cache.Cache {
	return cache.New(cache.NoExpiration, 0)
}

func (s *RecordStore) UserRepository() contract.UserRepository { return s.users }

func (s *RecordStore) FileRepository() contract.FileRepository { return s.files }

func (s *RecordStore) ChatMessageRepository() contract.ChatMessageRepository { return s.messages }

func (s *RecordStore) Driver() string { return DriverName }

func (s *RecordStore) Ping(ctx context.Context) error { return nil }

func (s *RecordStore) Close() error { return nil }
