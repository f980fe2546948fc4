package service

import (
	"testing"

	"bucketlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccess(t *testing.T) {
	owned := &models.Bucketlist{ID: 1, UsersEmail: "a@x.com"}

	tests := []struct {
		name       string
		identity   string
		bucketlist *models.Bucketlist
		want       bool
	}{
		{"owner", "a@x.com", owned, true},
		{"other user", "b@x.com", owned, false},
		{"empty identity", "", &models.Bucketlist{UsersEmail: ""}, false},
		{"nil bucketlist", "a@x.com", nil, false},
		{"case differs", "A@x.com", owned, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.identity, tt.bucketlist))
		})
	}
}

func TestAuthorizeBucketlist(t *testing.T) {
	owned := &models.Bucketlist{ID: 1, UsersEmail: "a@x.com"}

	require.NoError(t, AuthorizeBucketlist("a@x.com", owned))
	assertAppError(t, AuthorizeBucketlist("b@x.com", owned), models.CodeForbidden)
}

func TestAuthorizeItem(t *testing.T) {
	owner := &models.Bucketlist{ID: 1, UsersEmail: "a@x.com"}

	require.NoError(t, AuthorizeItem("a@x.com", owner, &models.Item{ID: 7, BucketlistID: 1}))
	assertAppError(t, AuthorizeItem("b@x.com", owner, &models.Item{ID: 7, BucketlistID: 1}), models.CodeForbidden)
	assertAppError(t, AuthorizeItem("a@x.com", owner, &models.Item{ID: 7, BucketlistID: 2}), models.CodeNotFound)
}
