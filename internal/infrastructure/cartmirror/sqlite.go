package cartmirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cahoico/storefront/internal/domain/cart"
)

// cartRecord is the single-row table backing the sqlite mirror. One
// fixed slot per deployment; the payload is the serialized cart.
type cartRecord struct {
	Slot      string `gorm:"primaryKey"`
	Payload   []byte
	UpdatedAt time.Time
}

func (cartRecord) TableName() string {
	return "cart_mirror"
}

// SQLiteMirror persists the cart snapshot in an embedded database so it
// survives restarts.
type SQLiteMirror struct {
	db   *gorm.DB
	slot string
}

// NewSQLiteMirror migrates the mirror table and returns the mirror
func NewSQLiteMirror(db *gorm.DB, slot string) (*SQLiteMirror, error) {
	if err := db.AutoMigrate(&cartRecord{}); err != nil {
		return nil, fmt.Errorf("migrate cart mirror: %w", err)
	}
	return &SQLiteMirror{db: db, slot: slot}, nil
}

// Load implements cart.Mirror
func (m *SQLiteMirror) Load(ctx context.Context) (cart.Cart, bool, error) {
	var record cartRecord
	err := m.db.WithContext(ctx).First(&record, "slot = ?", m.slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cart.Empty(), false, nil
	}
	if err != nil {
		return cart.Empty(), false, fmt.Errorf("load cart mirror: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(record.Payload, &c); err != nil {
		// A corrupt snapshot is treated as absent rather than fatal
		return cart.Empty(), false, nil
	}
	return c, true, nil
}

// Save implements cart.Mirror
func (m *SQLiteMirror) Save(ctx context.Context, c cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart mirror: %w", err)
	}

	record := cartRecord{Slot: m.slot, Payload: payload, UpdatedAt: time.Now()}
	err = m.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("save cart mirror: %w", err)
	}
	return nil
}

// Clear implements cart.Mirror
func (m *SQLiteMirror) Clear(ctx context.Context) error {
	err := m.db.WithContext(ctx).Delete(&cartRecord{}, "slot = ?", m.slot).Error
	if err != nil {
		return fmt.Errorf("clear cart mirror: %w", err)
	}
	return nil
}
