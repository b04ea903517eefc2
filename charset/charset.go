// Package charset defines the character-class policy used to render
// LessPass-compatible passwords.
//
// A policy is a set over four fixed classes -- lowercase letters, uppercase
// letters, digits, and symbols -- with at least one class enabled. The order
// of the classes (Lowercase, Uppercase, Numbers, Symbols) is load-bearing:
// it determines both the concatenated alphabet used for the bulk of the
// digit stream and the order in which the per-class insertion step
// considers each class, so changing it changes every password this package
// can generate.
package charset

import "errors"

// ErrEmptyPolicy is returned by New when no character class is enabled.
var ErrEmptyPolicy = errors.New("charset: empty policy")

const (
	lowercaseAlphabet = "abcdefghijklmnopqrstuvwxyz"
	uppercaseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numbersAlphabet   = "0123456789"
	symbolsAlphabet   = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// A Policy is an immutable set of enabled character classes. The zero value
// is the empty policy, which New refuses to construct; always obtain a
// Policy via New.
type Policy struct {
	lower, upper, numbers, symbols bool
}

// New constructs a Policy from the four class flags. It reports
// ErrEmptyPolicy if all four are false.
func New(lower, upper, numbers, symbols bool) (Policy, error) {
	p := Policy{lower: lower, upper: upper, numbers: numbers, symbols: symbols}
	if !p.lower && !p.upper && !p.numbers && !p.symbols {
		return Policy{}, ErrEmptyPolicy
	}
	return p, nil
}

// All is the policy with every character class enabled.
var All = Policy{lower: true, upper: true, numbers: true, symbols: true}

// NumClasses reports the number of enabled character classes, k ∈ [1,4] for
// a Policy obtained from New; it is 0 for the zero Policy.
func (p Policy) NumClasses() int {
	var k int
	for _, on := range []bool{p.lower, p.upper, p.numbers, p.symbols} {
		if on {
			k++
		}
	}
	return k
}

// Alphabet returns the concatenation of the enabled classes' alphabets, in
// the fixed order Lowercase, Uppercase, Numbers, Symbols. The result is
// non-empty if and only if p was constructed by New (i.e., is non-empty).
func (p Policy) Alphabet() []byte {
	var out []byte
	if p.lower {
		out = append(out, lowercaseAlphabet...)
	}
	if p.upper {
		out = append(out, uppercaseAlphabet...)
	}
	if p.numbers {
		out = append(out, numbersAlphabet...)
	}
	if p.symbols {
		out = append(out, symbolsAlphabet...)
	}
	return out
}

// EnabledSets returns the per-class alphabets for each enabled class, in the
// same fixed order as Alphabet, one entry per enabled class (length k).
func (p Policy) EnabledSets() [][]byte {
	var out [][]byte
	if p.lower {
		out = append(out, []byte(lowercaseAlphabet))
	}
	if p.upper {
		out = append(out, []byte(uppercaseAlphabet))
	}
	if p.numbers {
		out = append(out, []byte(numbersAlphabet))
	}
	if p.symbols {
		out = append(out, []byte(symbolsAlphabet))
	}
	return out
}

// Lower reports whether lowercase letters are enabled.
func (p Policy) Lower() bool { return p.lower }

// Upper reports whether uppercase letters are enabled.
func (p Policy) Upper() bool { return p.upper }

// Numbers reports whether digits are enabled.
func (p Policy) Numbers() bool { return p.numbers }

// Symbols reports whether punctuation symbols are enabled.
func (p Policy) Symbols() bool { return p.symbols }
