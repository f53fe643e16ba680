package implementation

import (
	"context"

	"ai-workspace-be/internal/model"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/clock"

	"gorm.io/gorm"
)

// GormRecordStore persists records through gorm (postgres or sqlite).
type GormRecordStore struct {
	db     *gorm.DB
	driver string

	users    contract.UserRepository
	files    contract.FileRepository
	messages contract.ChatMessageRepository
}

var _ contract.RecordStore = (*GormRecordStore)(nil)

func NewGormRecordStore(db *gorm.DB, driver string) *GormRecordStore {
	return &GormRecordStore{
		db:       db,
		driver:   driver,
		users:    NewUserRepository(db),
		files:    NewFileRepository(db, clock.NewMonotonic()),
		messages: NewChatMessageRepository(db, clock.NewMonotonic()),
	}
}

// Migrate creates or updates the record tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}

func (s *GormRecordStore) UserRepository() contract.UserRepository { return s.users }

func (s *GormRecordStore) FileRepository() contract.FileRepository { return s.files }

func (s *GormRecordStore) ChatMessageRepository() contract.ChatMessageRepository { return s.messages }

func (s *GormRecordStore) Driver() string { return s.driver }

func (s *GormRecordStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormRecordStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
