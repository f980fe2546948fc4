package server

import "bucketlist/internal/models"

const statusSuccess = "success"

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	AuthToken string       `json:"auth_token"`
	User      *models.User `json:"user,omitempty"`
}

type UserResponse struct {
	Status string       `json:"status"`
	User   *models.User `json:"user"`
}

type BucketlistRequest struct {
	Title string `json:"title"`
}

type BucketlistResponse struct {
	Status     string             `json:"status"`
	Message    string             `json:"message,omitempty"`
	Bucketlist *models.Bucketlist `json:"bucketlist"`
}

// CreateItemRequest carries the new item. Done defaults to false.
type CreateItemRequest struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// UpdateItemRequest changes only the fields present in the body.
type UpdateItemRequest struct {
	Name *string `json:"name"`
	Done *bool   `json:"done"`
}

type ItemResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Item    *models.Item `json:"item"`
}

// ListResponse is the pagination envelope shared by bucketlist and item listings.
type ListResponse[T any] struct {
	Status string          `json:"status"`
	Items  []T             `json:"items"`
	Meta   models.PageMeta `json:"meta"`
	Next   string          `json:"next,omitempty"`
	Prev   string          `json:"prev,omitempty"`
}
