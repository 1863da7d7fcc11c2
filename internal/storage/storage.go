// Package storage provides save slots for the game engine: a JSON file, an
// in-memory buffer and a postgres row.
package storage

import (
	"context"

	"catidle/internal/pet"
)

// Store is a slot that can also be wiped
type Store interface {
	pet.Slot
	Clear() error
}

var (
	_ Store = (*FileSlot)(nil)
	_ Store = (*MemorySlot)(nil)
	_ Store = (*GormSlot)(nil)
)

// Open picks a backend: postgres when dsn is set, otherwise the file at
// path, otherwise the default save file.
func Open(ctx context.Context, dsn, path string) (Store, error) {
	if dsn != "" {
		db, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		return NewGormSlot(ctx, db, pet.SaveKey)
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return NewFileSlot(path), nil
}
