package models

import (
	"time"

	"gorm.io/gorm"
)

type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

type Salesperson struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	LocationID   *uint     `json:"location_id"`
	Location     *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductCollections are the four derived views over a salesperson's products.
// They are computed from products.state + products.salesperson_id, so a given
// product can appear in at most one of them at any instant.
type ProductCollections struct {
	Pending       []Product `json:"pendingProducts"`
	Assigned      []Product `json:"assignedProducts"`
	ReturnApplied []Product `json:"returnProducts"`
	Sold          []Product `json:"selledProducts"`
}
