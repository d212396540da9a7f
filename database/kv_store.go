package database

import (
	"errors"
	"time"

	"github.com/yeremiapane/order-dashboard/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueStore is a string-to-string store in the shape of browser
// localStorage.
type KeyValueStore interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

type GormKVStore struct {
	DB *gorm.DB
}

func NewGormKVStore(db *gorm.DB) *GormKVStore {
	return &GormKVStore{DB: db}
}

func (s *GormKVStore) GetItem(key string) (string, bool, error) {
	var entry models.KVEntry
	err := s.DB.Where(keyEquals(key)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *GormKVStore) SetItem(key, value string) error {
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormKVStore) RemoveItem(key string) error {
	return s.DB.Where(keyEquals(key)).Delete(&models.KVEntry{}).Error
}

// keyEquals lets the dialect quote the column; "key" is reserved in MySQL.
func keyEquals(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}
