package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	layout "github.com/sitedeck/go-layout/components/layout"
)

// LayoutRecord is the per-user row backing the preference store. The widget
// superset is stored as a JSON blob: the engine always reads and writes the
// layout wholesale, so relational widget rows would buy nothing.
type LayoutRecord struct {
	UserID    string    `gorm:"primaryKey;size:64"`
	Widgets   string    `gorm:"type:json"`
	Version   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName maps the record onto the dashboard_layouts table.
func (LayoutRecord) TableName() string { return "dashboard_layouts" }

// Store implements layout.PreferenceStore on top of GORM.
type Store struct {
	db *gorm.DB
}

// New builds a GORM-backed preference store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ layout.PreferenceStore = (*Store)(nil)

// Migrate creates the backing table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&LayoutRecord{})
}

// LoadLayout returns the stored layout or nil when the user has none yet.
func (s *Store) LoadLayout(ctx context.Context, viewer layout.ViewerContext) (*layout.PersistedLayout, error) {
	if viewer.UserID == "" {
		return nil, nil
	}
	var record LayoutRecord
	err := s.db.WithContext(ctx).First(&record, "user_id = ?", viewer.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gormstore: load layout for %s: %w", viewer.UserID, err)
	}
	var widgets []layout.WidgetPreference
	if record.Widgets != "" {
		if err := json.Unmarshal([]byte(record.Widgets), &widgets); err != nil {
			return nil, fmt.Errorf("gormstore: decode layout for %s: %w", viewer.UserID, err)
		}
	}
	return &layout.PersistedLayout{Widgets: widgets, Version: record.Version}, nil
}

// SaveLayout upserts the full layout for a viewer, last write wins.
func (s *Store) SaveLayout(ctx context.Context, viewer layout.ViewerContext, l layout.PersistedLayout) error {
	if viewer.UserID == "" {
		return errors.New("gormstore: viewer user id is required")
	}
	blob, err := json.Marshal(l.Widgets)
	if err != nil {
		return fmt.Errorf("gormstore: encode layout for %s: %w", viewer.UserID, err)
	}
	record := LayoutRecord{
		UserID:  viewer.UserID,
		Widgets: string(blob),
		Version: l.Version,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"widgets", "version", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("gormstore: save layout for %s: %w", viewer.UserID, err)
	}
	return nil
}

// ResetLayout deletes the stored layout so the next load falls back to
// registry defaults.
func (s *Store) ResetLayout(ctx context.Context, viewer layout.ViewerContext) error {
	if viewer.UserID == "" {
		return errors.New("gormstore: viewer user id is required")
	}
	err := s.db.WithContext(ctx).Delete(&LayoutRecord{}, "user_id = ?", viewer.UserID).Error
	if err != nil {
		return fmt.Errorf("gormstore: reset layout for %s: %w", viewer.UserID, err)
	}
	return nil
}
