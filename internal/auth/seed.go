package auth

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mahmoudbymassen/station-managment/internal/model"
)

// EnsureAdmin creates the bootstrap admin account if it does not exist.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := model.User{Email: email, Password: hash, Role: string(RoleAdmin)}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("seeded admin account %s", email)
	return nil
}
