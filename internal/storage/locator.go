package storage

import "strings"

// ParseLocator splits a "bucket/key" locator on the first slash.
// Bucket names never contain a slash; keys may. A locator without a
// slash addresses the bucket root: the whole string is the bucket
// and the key is empty.
func ParseLocator(locator string) (bucket, key string) {
	bucket, key, _ = strings.Cut(locator, "/")
	return bucket, key
}
