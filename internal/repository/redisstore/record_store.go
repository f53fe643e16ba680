package redisstore

import (
	"context"
	"encoding/json"
	"errors"

	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/clock"

	"github.com/redis/go-redis/v9"
)

const (
	DriverName = "redis"

	defaultPrefix = "workspace"
)

// RecordStore keeps every record as a JSON value in a redis hash keyed by record id.
type RecordStore struct {
	rdb *redis.Client

	users    *UserRepository
	files    *FileRepository
	messages *ChatMessageRepository
}

var _ contract.RecordStore = (*RecordStore)(nil)

// NewClient parses url as a redis:// URL and falls back to treating it as a plain host:port.
func NewClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}

func NewRecordStore(rdb *redis.Client, prefix string) *RecordStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RecordStore{
		rdb: rdb,
		users: &UserRepository{
			rdb:        rdb,
			key:        prefix + ":users",
			usernameIx: prefix + ":users:by_username",
		},
		files: &FileRepository{
			rdb:   rdb,
			key:   prefix + ":files",
			clock: clock.NewMonotonic(),
		},
		messages: &ChatMessageRepository{
			rdb:   rdb,
			key:   prefix + ":chat_messages",
			clock: clock.NewMonotonic(),
		},
	}
}

func (s *RecordStore) UserRepository() contract.UserRepository { return s.users }

func (s *RecordStore) FileRepository() contract.FileRepository { return s.files }

func (s *RecordStore) ChatMessageRepository() contract.ChatMessageRepository { return s.messages }

func (s *RecordStore) Driver() string { return DriverName }

func (s *RecordStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RecordStore) Close() error {
	return s.rdb.Close()
}

// hget decodes the field into out. found is false when the field does not exist.
func hget(ctx context.Context, rdb *redis.Client, key, field string, out interface{}) (found bool, err error) {
	raw, err := rdb.HGet(ctx, key, field).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func hset(ctx context.Context, rdb *redis.Client, key, field string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return rdb.HSet(ctx, key, field, raw).Err()
}
