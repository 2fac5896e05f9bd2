// Package store provides the durable key/value backends used for the best
// score: a SQLite database through gorm, and an in-memory map for tests and
// sessions that should not persist.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Setting is one persisted key/value pair.
type Setting struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLite is a key/value store in a single SQLite table.
type SQLite struct {
	db  *gorm.DB
	log zerolog.Logger
}

// OpenSQLite opens (creating if needed) the database at path and migrates
// the settings table. An empty path uses a private in-memory database.
func OpenSQLite(path string, log zerolog.Logger) (*SQLite, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	if path == "" {
		// Every pooled connection to :memory: would be a separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("access sql interface: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Setting{}); err != nil {
		return nil, fmt.Errorf("migrate settings table: %w", err)
	}

	log.Info().Str("path", dsn).Msg("settings store opened")
	return &SQLite{db: db, log: log}, nil
}

// Get returns the value stored under key. ok is false when the key has never
// been set.
func (s *SQLite) Get(key string) (value string, ok bool, err error) {
	var row Setting
	err = s.db.Where(&Setting{Name: key}).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return row.Value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLite) Set(key, value string) error {
	row := Setting{Name: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	s.log.Debug().Str("key", key).Str("value", value).Msg("setting saved")
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("access sql interface: %w", err)
	}
	return sqlDB.Close()
}

// Memory is a non-persistent key/value store.
type Memory struct {
	values map[string]string
	// Err, when set, is returned by every Get and Set.
	Err error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements the store lookup.
func (m *Memory) Get(key string) (string, bool, error) {
	if m.Err != nil {
		return "", false, m.Err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements the store write.
func (m *Memory) Set(key, value string) error {
	if m.Err != nil {
		return m.Err
	}
	m.values[key] = value
	return nil
}
