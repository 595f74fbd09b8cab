package database

import "bmxhive/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Trick{},
		&models.Like{},
		&models.Ticket{},
		&models.AdminContent{},
	}
}
