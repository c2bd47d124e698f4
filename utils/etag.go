package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateETag builds a weak ETag from an entity id and its last update time,
// so list and detail responses can answer 304 to unchanged clients.
func GenerateETag(id string, updatedAt time.Time) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%d", id, updatedAt.UnixNano())))
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}
