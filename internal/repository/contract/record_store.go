package contract

import (
	"context"
	"errors"
)

var ErrDuplicate = errors.New("record already exists")

// RecordStore owns every user, file and chat message record. Orchestrators only talk to
// this interface so the backend can be swapped without touching them.
type RecordStore interface {
	UserRepository() UserRepository
	FileRepository() FileRepository
	ChatMessageRepository() ChatMessageRepository

	Driver() string
	Ping(ctx context.Context) error
	Close() error
}
