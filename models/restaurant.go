package models

import (
	"encoding/json"
	"time"
)

// Restaurant is the signed-in identity of a dashboard terminal.
type Restaurant struct {
	ID         string    `json:"id"`
	RetailerID string    `json:"retailerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	SecretCode string    `json:"secretCode,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	IsActive   bool      `json:"isActive"`
}

func (r *Restaurant) UnmarshalJSON(data []byte) error {
	type alias Restaurant
	var p struct {
		alias
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Restaurant(p.alias)
	r.CreatedAt = ParseTimestamp(p.CreatedAt)
	return nil
}

// PartitionKey is the identifier the order backend partitions orders by.
func (r Restaurant) PartitionKey() string {
	if r.RetailerID != "" {
		return r.RetailerID
	}
	return r.ID
}

type RestaurantOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RestaurantAccount is one row of the local restaurant directory used when
// the dashboard runs without a backend.
type RestaurantAccount struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	RestaurantID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"id"`
	RetailerID   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"retailerId"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);index" json:"email"`
	SecretHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:false" json:"isActive"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

func (a RestaurantAccount) Identity() Restaurant {
	return Restaurant{
		ID:         a.RestaurantID,
		RetailerID: a.RetailerID,
		Name:       a.Name,
		Email:      a.Email,
		CreatedAt:  a.CreatedAt,
		IsActive:   a.IsActive,
	}
}
