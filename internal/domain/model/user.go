package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleClient  Role = "client"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`
	Bio          string `gorm:"type:text" json:"bio"`
	Socials      string `gorm:"type:varchar(255)" json:"socials"`
	Company      string `gorm:"type:varchar(100)" json:"company"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
