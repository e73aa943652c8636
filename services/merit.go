package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jiefei/models"
)

// MeritService credits wooden-fish taps. Each flush updates the user's merit
// and appends a MeritLog row in one transaction.
type MeritService struct {
	db *gorm.DB
}

func NewMeritService(db *gorm.DB) *MeritService {
	return &MeritService{db: db}
}

// Tap adds count merit to the user. Returns the new merit total.
func (m *MeritService) Tap(ctx context.Context, userID uint, count int) (int, error) {
	if count <= 0 {
		return 0, ErrInvalidCount
	}

	var newMerit int
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		user.Merit += count
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.MeritLog{UserID: userID, Count: count}).Error; err != nil {
			return err
		}
		newMerit = user.Merit
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newMerit, nil
}
