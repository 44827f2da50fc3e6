package db

import (
	"fmt"

	"memoknot/memo-api/internal/model"
	"memoknot/memo-api/pkg/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SeedAdmin makes sure the configured administrator account exists. Does
// nothing when the account is already there.
func SeedAdmin(db *gorm.DB, argon *security.ArgonHash, email, password string) error {
	if email == "" {
		return nil
	}

	var found bool

	r := db.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		First(&found)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to check for existing admin, %w", r.Error)
	}

	if found {
		zap.L().Debug("Admin user already exists")
		return nil
	}

	hash, err := argon.GenerateFromPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password, %w", err)
	}

	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return fmt.Errorf("failed to generate admin ID, %w", err)
	}

	err = db.Create(&model.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to create admin user, %w", err)
	}

	zap.L().Info("Admin user created", zap.String("email", email))
	return nil
}
