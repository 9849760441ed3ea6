package models

import (
	"time"

	"gorm.io/gorm"
)

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;unique;not null" json:"name"` // 'admin', 'salesperson'
	CreatedAt time.Time `json:"created_at"`
	Users     []User    `json:"-"`
}

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	EmployeeID   string         `gorm:"size:20;unique;not null" json:"employee_id"`
	Username     string         `gorm:"size:50;not null" json:"username"`
	Email        string         `gorm:"size:100" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	RoleID       uint           `json:"role_id"`
	Role         Role           `gorm:"foreignKey:RoleID" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
