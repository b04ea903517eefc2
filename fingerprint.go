package lesspass

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// FingerprintLen is the length in bytes of a Fingerprint.
const FingerprintLen = sha256.Size

// Fingerprint returns HMAC-SHA-256(key = master, msg = ""), a 32-byte value
// used to let a user confirm they typed their master secret correctly
// without revealing it. It is independent of site, login, counter, and
// policy -- it is a function of the master secret alone.
//
// Fingerprint commits only to this 32-byte value. Any presentation of it
// (an icon, a word list, a color swatch) is a UI convention layered on top
// and is out of this package's scope; the CLI's verbose output prints a
// short hex prefix of it, which is the simplest such convention and claims
// to be nothing more.
func Fingerprint(master string) [FingerprintLen]byte {
	mac := hmac.New(sha256.New, []byte(master))
	mac.Write(nil)
	var out [FingerprintLen]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// EqualFingerprints reports whether a and b are the same fingerprint, using
// a constant-time comparison so that timing does not leak how many leading
// bytes matched.
func EqualFingerprints(a, b [FingerprintLen]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
