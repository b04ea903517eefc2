package lesspass

import "github.com/lesspass-go/lesspass/charset"

// MinPasswordLen and MaxPasswordLen bound the length parameter to
// RenderPassword.
const (
	MinPasswordLen = 5
	MaxPasswordLen = 35
)

// RenderPassword interprets entropy as a big-endian unsigned integer and
// converts it into a password of exactly length characters drawn from
// policy's alphabet, guaranteeing at least one character from each of
// policy's enabled classes.
//
// The algorithm runs in three passes over the same running quotient Q:
//
//  1. Emit length-k characters by repeatedly dividing Q by len(alphabet) and
//     appending the remainder's alphabet character. The first character
//     emitted is the low-order base-a digit of the original number; it is
//     not reversed afterward. This quirk of the reference implementation is
//     deliberate and must be reproduced bit-exactly for interop.
//  2. For each of the k enabled classes, in the fixed class order, divide Q
//     by that class's alphabet size to pick one guaranteed character.
//  3. Interleave those k guaranteed characters into the pass-1 output one at
//     a time, each time dividing Q by the output's current length to choose
//     an insertion position and shifting the tail right by one.
//
// Every character written comes from policy.Alphabet(); when k ≤ length
// (always true given MinPasswordLen ≥ 4) the result contains at least one
// character of each enabled class.
func RenderPassword(entropy []byte, policy charset.Policy, length int) (string, error) {
	if len(entropy) == 0 {
		return "", ErrEmptyEntropy
	}
	if len(entropy) > MaxEntropyLen {
		return "", ErrInvalidEntropyLen
	}
	if policy.NumClasses() == 0 {
		return "", charset.ErrEmptyPolicy
	}
	if length < MinPasswordLen || length > MaxPasswordLen {
		return "", ErrInvalidPasswordLen
	}

	alphabet := policy.Alphabet()
	sets := policy.EnabledSets()
	k := len(sets)

	q := uint512FromBigEndian(entropy)

	out := make([]byte, 0, length)
	for i := 0; i < length-k; i++ {
		r := q.divMod(uint64(len(alphabet)))
		out = append(out, alphabet[r])
	}

	extra := make([]byte, k)
	for j, set := range sets {
		r := q.divMod(uint64(len(set)))
		extra[j] = set[r]
	}

	for _, c := range extra {
		r := int(q.divMod(uint64(len(out))))
		out = append(out, 0)
		copy(out[r+1:], out[r:len(out)-1])
		out[r] = c
	}

	return string(out), nil
}
