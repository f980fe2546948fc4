package service

import "bucketlist/internal/models"

// CanAccess reports whether identity owns bucketlist.
func CanAccess(identity string, bucketlist *models.Bucketlist) bool {
	return identity != "" && bucketlist != nil && bucketlist.OwnerIdentity() == identity
}

// AuthorizeBucketlist returns a Forbidden error unless identity owns bucketlist.
func AuthorizeBucketlist(identity string, bucketlist *models.Bucketlist) error {
	if !CanAccess(identity, bucketlist) {
		return models.NewForbiddenError("You do not have permission to access this bucketlist")
	}
	return nil
}

// AuthorizeItem checks identity against owner, the bucketlist addressed by the request.
// An item that belongs to a different bucketlist is reported as not found.
func AuthorizeItem(identity string, owner *models.Bucketlist, item *models.Item) error {
	if item.BucketlistID != owner.ID {
		return models.NewNotFoundError("Item", item.ID)
	}
	if !CanAccess(identity, owner) {
		return models.NewForbiddenError("You do not have permission to access this item")
	}
	return nil
}
