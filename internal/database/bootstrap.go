package database

import (
	"errors"
	"fmt"

	"bmxhive/internal/config"
	"bmxhive/internal/middleware"
	"bmxhive/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Bootstrap seeds the admin account and repairs profile rows for users that
// predate the profile table. Both steps are idempotent and safe to run on
// every startup.
func Bootstrap(db *gorm.DB, cfg *config.Config) error {
	if err := EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}
	if err := BackfillProfiles(db); err != nil {
		return fmt.Errorf("failed to backfill profiles: %w", err)
	}
	return nil
}

// EnsureAdmin creates the admin account if it does not exist and promotes it
// if an account with the admin email already exists without the role.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Role != models.RoleAdmin {
			if err := db.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
				return err
			}
			middleware.Logger.Info("Promoted existing account to admin", "email", email)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Email:    email,
			Password: string(hashed),
			Role:     models.RoleAdmin,
			Name:     "Admin",
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID: admin.ID,
			Name:   admin.Name,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		middleware.Logger.Info("Created admin account", "email", email)
		return nil
	})
}

// BackfillProfiles creates a profile row for every user that lacks one,
// carrying over the user's display fields and point total.
func BackfillProfiles(db *gorm.DB) error {
	var users []models.User
	err := db.
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id AND profiles.deleted_at IS NULL").
		Where("profiles.id IS NULL").
		Find(&users).Error
	if err != nil {
		return err
	}

	for i := range users {
		u := &users[i]
		profile := models.Profile{
			UserID:    u.ID,
			Name:      u.Name,
			Bio:       u.Bio,
			Points:    u.Points,
			AvatarURL: u.AvatarURL,
			Banned:    u.Banned,
		}
		if err := db.Create(&profile).Error; err != nil {
			return err
		}
	}
	if len(users) > 0 {
		middleware.Logger.Info("Backfilled missing profiles", "count", len(users))
	}
	return nil
}
