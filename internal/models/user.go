// Package models defines the persisted domain types and the API error taxonomy.
package models

import "time"

// User is an account that owns bucketlists. Email is the natural key used as the token subject.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"size:25;uniqueIndex;not null" json:"username"`
	FirstName    string    `gorm:"size:25;not null" json:"first_name"`
	LastName     string    `gorm:"size:25;not null" json:"last_name"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
