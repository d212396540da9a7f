package database

import (
	"errors"
	"time"

	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SecretHashCost is the bcrypt cost for directory secret codes.
var SecretHashCost = bcrypt.DefaultCost

// Directory is the local list of restaurants used by mock sign-in and
// sign-up.
type Directory struct {
	DB *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{DB: db}
}

// Seed fills an empty directory with the built-in restaurants.
func (d *Directory) Seed() error {
	var count int64
	if err := d.DB.Model(&models.RestaurantAccount{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	accounts := make([]models.RestaurantAccount, 0, len(directorySeeds))
	for _, s := range directorySeeds {
		hash, err := HashSecret(s.SecretCode)
		if err != nil {
			return err
		}
		accounts = append(accounts, models.RestaurantAccount{
			RestaurantID: s.ID,
			RetailerID:   s.ID,
			Name:         s.Name,
			Email:        s.Email,
			SecretHash:   hash,
			IsActive:     true,
			CreatedAt:    directoryCreatedAt,
		})
	}

	if err := d.DB.Create(&accounts).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded restaurant directory with %d accounts", len(accounts))
	return nil
}

// Add inserts one account, hashing its secret code.
func (d *Directory) Add(account models.RestaurantAccount, secretCode string) (*models.RestaurantAccount, error) {
	hash, err := HashSecret(secretCode)
	if err != nil {
		return nil, err
	}
	account.SecretHash = hash
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	if err := d.DB.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (d *Directory) FindActiveByEmail(email string) (*models.RestaurantAccount, error) {
	var account models.RestaurantAccount
	err := d.DB.Where("email = ? AND is_active = ?", email, true).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (d *Directory) EmailExists(email string) (bool, error) {
	var count int64
	err := d.DB.Model(&models.RestaurantAccount{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// FindActivatable returns the inactive account for retailerID when the
// secret code matches, or nil.
func (d *Directory) FindActivatable(retailerID, secretCode string) (*models.RestaurantAccount, error) {
	var account models.RestaurantAccount
	err := d.DB.Where("retailer_id = ? AND is_active = ?", retailerID, false).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.SecretHash), []byte(secretCode)) != nil {
		return nil, nil
	}
	return &account, nil
}

// Activate binds the account to email and marks it active.
func (d *Directory) Activate(account *models.RestaurantAccount, email string, now time.Time) error {
	account.Email = email
	account.IsActive = true
	account.CreatedAt = now
	return d.DB.Model(account).Updates(map[string]interface{}{
		"email":      account.Email,
		"is_active":  true,
		"created_at": account.CreatedAt,
	}).Error
}

func (d *Directory) Options() ([]models.RestaurantOption, error) {
	var accounts []models.RestaurantAccount
	if err := d.DB.Order("retailer_id asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	options := make([]models.RestaurantOption, 0, len(accounts))
	for _, a := range accounts {
		options = append(options, models.RestaurantOption{ID: a.RetailerID, Name: a.Name})
	}
	return options, nil
}

func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), SecretHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
