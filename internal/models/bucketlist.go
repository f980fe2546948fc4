package models

import "time"

// Bucketlist is a titled list owned by exactly one user, referenced by email.
type Bucketlist struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:100;not null;uniqueIndex:idx_bucketlists_owner_title" json:"title"`
	UsersEmail   string    `gorm:"column:users_email;size:255;not null;index;uniqueIndex:idx_bucketlists_owner_title" json:"users_email"`
	DateCreated  time.Time `gorm:"column:date_created;autoCreateTime" json:"date_created"`
	DateModified time.Time `gorm:"column:date_modified;autoUpdateTime" json:"date_modified"`
	Owner        *User     `gorm:"foreignKey:UsersEmail;references:Email;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Items        []Item    `gorm:"foreignKey:BucketlistID;constraint:OnDelete:CASCADE" json:"-"`
}

// OwnerIdentity returns the identity that owns the bucketlist.
func (b *Bucketlist) OwnerIdentity() string {
	return b.UsersEmail
}
