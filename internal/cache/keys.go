package cache

import (
	"fmt"
	"time"
)

const BucketlistKeyPrefix = "bucketlist:%d"

const BucketlistTTL = 5 * time.Minute

// BucketlistKey is the cache key for a single bucketlist.
func BucketlistKey(id uint) string {
	return fmt.Sprintf(BucketlistKeyPrefix, id)
}
