package lesspass

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// Algorithm selects the HMAC inner hash used by PBKDF2, and transitively the
// natural entropy output length for that hash (32/48/64 bytes).
type Algorithm int

const (
	// SHA256 is the canonical choice for cross-implementation interop; every
	// other published LessPass implementation defaults to it.
	SHA256 Algorithm = iota

	// SHA384 produces output incompatible with other LessPass
	// implementations. Included for completeness, not for interop.
	SHA384

	// SHA512 produces output incompatible with other LessPass
	// implementations. Included for completeness, not for interop.
	SHA512
)

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "SHA256"
	case SHA384:
		return "SHA384"
	case SHA512:
		return "SHA512"
	default:
		return "Algorithm(?)"
	}
}

func (a Algorithm) newHash() func() hash.Hash {
	switch a {
	case SHA384:
		return sha512.New384
	case SHA512:
		return sha512.New
	default:
		return sha256.New
	}
}

// NaturalLen returns the natural entropy length in bytes for a, i.e. the
// output size of its HMAC: 32 bytes for SHA-256, 48 for SHA-384, 64 for
// SHA-512.
func (a Algorithm) NaturalLen() int {
	switch a {
	case SHA384:
		return 48
	case SHA512:
		return 64
	default:
		return 32
	}
}

// DefaultIterations is the canonical interop iteration count (PBKDF2 over
// SHA-256, 100000 rounds, 32-byte output).
const DefaultIterations = 100000

// MinEntropyLen and MaxEntropyLen bound the out_len parameter to
// DeriveEntropy.
const (
	MinEntropyLen = 1
	MaxEntropyLen = 64
)

// DeriveEntropy runs PBKDF2-HMAC-alg(master, salt, iterations) and returns
// outLen bytes of derived entropy. PBKDF2's own block derivation rules
// govern truncation or extension when outLen does not equal alg's natural
// length; this is only meaningful for non-canonical (SHA-384/512) profiles,
// since spec interop commits to SHA-256 at a 32-byte output.
//
// DeriveEntropy reports an error rather than panicking on precondition
// violations, since the caller is expected to validate them but the core
// still owns surfacing the failure (see spec §4.3, §7).
func DeriveEntropy(master string, salt []byte, alg Algorithm, iterations int, outLen int) ([]byte, error) {
	if master == "" {
		return nil, ErrEmptyMaster
	}
	if len(salt) == 0 {
		return nil, ErrEmptySalt
	}
	if iterations < 1 {
		return nil, ErrInvalidIterations
	}
	if outLen < MinEntropyLen || outLen > MaxEntropyLen {
		return nil, ErrInvalidEntropyLen
	}
	return pbkdf2.Key([]byte(master), salt, iterations, outLen, alg.newHash()), nil
}
