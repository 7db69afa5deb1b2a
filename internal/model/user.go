package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"_id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"date"`
}

// PublicUser is the subset of User joined into profiles for display.
type PublicUser struct {
	ID     uint   `gorm:"primaryKey" json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (PublicUser) TableName() string {
	return "users"
}
