// Package lesspass implements the LessPass stateless password derivation
// algorithm: given a site identifier, a user identifier, a counter, a
// master secret, and a character-class policy, it deterministically
// produces a site-specific password of a requested length.
//
// Because the derivation is stateless, no password vault needs to be
// stored or synchronized -- the same inputs always yield the same output.
// The pipeline has four stages, each independently usable:
//
//	charset.New(lower, upper, numbers, symbols) -> policy
//	BuildSalt(site, login, counter)       -> salt
//	DeriveEntropy(master, salt, alg, n)    -> entropy
//	RenderPassword(entropy, policy, len)   -> password
//
// Fingerprint is a fifth, independent operation that consumes only the
// master secret.
//
// The whole pipeline is pure and synchronous: no I/O, no mutable shared
// state, no cancellation points. Callers may invoke it from any goroutine,
// in parallel, without coordination.
package lesspass

import "github.com/lesspass-go/lesspass/charset"

// Request bundles the inputs to a single password derivation so the four
// pipeline stages can be run together with Generate.
type Request struct {
	Site       string         // site identifier, e.g. a hostname
	Login      string         // user identifier, e.g. an email address
	Counter    uint32         // disambiguates multiple passwords for one site
	Master     string         // the user's master secret
	Algorithm  Algorithm      // PBKDF2 hash; SHA256 is the interop default
	Iterations int            // PBKDF2 iteration count; 0 means DefaultIterations
	Policy     charset.Policy // enabled character classes
	Length     int            // requested password length
}

// Generate runs the full derivation pipeline: it builds the salt from the
// site, login and counter, derives entropy from the master secret and
// salt, and renders a password of the requested length under the given
// policy. The entropy stage requests req.Algorithm.NaturalLen() bytes,
// matching the canonical profile unless a non-default algorithm is chosen.
func Generate(req Request) (string, error) {
	salt := BuildSalt(req.Site, req.Login, req.Counter)
	iters := req.Iterations
	if iters == 0 {
		iters = DefaultIterations
	}
	entropy, err := DeriveEntropy(req.Master, salt, req.Algorithm, iters, req.Algorithm.NaturalLen())
	if err != nil {
		return "", err
	}
	defer zeroBytes(entropy)

	return RenderPassword(entropy, req.Policy, req.Length)
}

// zeroBytes overwrites data with zeroes. Generate uses it to scrub the
// derived entropy once a derivation completes (the master secret is a Go
// string and is not scrubbed), per the best-effort zeroization guidance in the
// resource model: sensitive buffers should not be copied into long-lived
// storage and should be wiped on release where the platform allows it.
// Like the buffer-erase helper it is adapted from, it processes whole
// 64-bit words where possible and falls back to single bytes for the
// remainder.
func zeroBytes(data []byte) {
	n := len(data)
	m := n &^ 7
	for i := 0; i < m; i += 8 {
		for j := 0; j < 8; j++ {
			data[i+j] = 0
		}
	}
	for i := m; i < n; i++ {
		data[i] = 0
	}
}
