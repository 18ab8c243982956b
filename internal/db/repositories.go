package db

import "gorm.io/gorm"

type Repositories struct {
	KeyValues *KeyValueRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		KeyValues: NewKeyValueRepository(database),
	}
}
