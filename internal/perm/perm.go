// Package perm implements the tracker's shared-secret authorization.
//
// Projects and comments each carry a plaintext password; edit/delete is
// granted on exact string equality. This is a deliberately weak scheme
// (no hashing, no salting, no rate limit) preserved for compatibility with
// existing stored documents. Failures never reveal the stored secret.
package perm

import "crypto/subtle"

// Authorize reports whether the supplied password matches the stored one.
// Comparison is constant-time; everything else about the scheme is as weak
// as the stored plaintext implies.
func Authorize(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
