package newsgrab

import (
	"crypto/md5"
	"encoding/hex"
)

// Fingerprint returns the hex encoded MD5 digest of b.
// Digests are stable across runs and are used for deduplication
// and change detection of responses and extracted bodies.
func Fingerprint(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// FingerprintString returns the Fingerprint of the UTF-8 bytes of s.
func FingerprintString(s string) string {
	return Fingerprint([]byte(s))
}
