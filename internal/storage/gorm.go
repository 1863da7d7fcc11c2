package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"catidle/internal/pet"
)

// opTimeout bounds each database round trip made through the Slot interface
const opTimeout = 5 * time.Second

// SaveSlot is one row per save key
type SaveSlot struct {
	SlotKey   string `gorm:"primaryKey;size:64"`
	Payload   []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// OpenPostgres connects to postgres with the given DSN
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// GormSlot stores the save record in a database row keyed by Key
type GormSlot struct {
	db  *gorm.DB
	Key string
}

// NewGormSlot migrates the save table and returns a slot for key
func NewGormSlot(ctx context.Context, db *gorm.DB, key string) (*GormSlot, error) {
	if key == "" {
		key = pet.SaveKey
	}
	if err := db.WithContext(ctx).AutoMigrate(&SaveSlot{}); err != nil {
		return nil, fmt.Errorf("migrate save slots: %w", err)
	}
	return &GormSlot{db: db, Key: key}, nil
}

func (s *GormSlot) Read() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var row SaveSlot
	err := s.db.WithContext(ctx).
		Where(&SaveSlot{SlotKey: s.Key}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pet.ErrNoSave
		}
		return nil, fmt.Errorf("read save slot: %w", err)
	}
	return row.Payload, nil
}

func (s *GormSlot) Write(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := s.db.WithContext(ctx).
		Where(&SaveSlot{SlotKey: s.Key}).
		Assign(SaveSlot{
			Payload:   data,
			UpdatedAt: time.Now(),
		}).
		FirstOrCreate(&SaveSlot{}).Error
	if err != nil {
		return fmt.Errorf("write save slot: %w", err)
	}
	return nil
}

func (s *GormSlot) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Where(&SaveSlot{SlotKey: s.Key}).Delete(&SaveSlot{}).Error; err != nil {
		return fmt.Errorf("clear save slot: %w", err)
	}
	return nil
}
