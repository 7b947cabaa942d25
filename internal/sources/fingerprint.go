package sources

import (
	"crypto/sha256"
	"fmt"
)

// Fingerprint hashes scraped content so unchanged pages can be skipped
// without storing the page itself.
func Fingerprint(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}
