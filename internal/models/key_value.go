package models

import "time"

type KeyValueEntry struct {
	Key       string    `gorm:"primaryKey;column:storage_key"`
	Value     string    `gorm:"not null;column:value"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KeyValueEntry) TableName() string {
	return "key_value_entries"
}
