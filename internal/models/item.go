package models

import "time"

// Item is a to-do entry inside a bucketlist. It is owned transitively by the bucketlist's owner.
type Item struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null;uniqueIndex:idx_items_bucketlist_name" json:"name"`
	Done         bool      `gorm:"default:false" json:"done"`
	BucketlistID uint      `gorm:"not null;index;uniqueIndex:idx_items_bucketlist_name" json:"bucketlist_id"`
	DateCreated  time.Time `gorm:"column:date_created;autoCreateTime" json:"date_created"`
	DateModified time.Time `gorm:"column:date_modified;autoUpdateTime" json:"date_modified"`
}
