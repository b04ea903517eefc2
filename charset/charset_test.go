package charset_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lesspass-go/lesspass/charset"
)

func TestNewEmpty(t *testing.T) {
	if _, err := charset.New(false, false, false, false); !errors.Is(err, charset.ErrEmptyPolicy) {
		t.Errorf("New(false...): got err=%v, want ErrEmptyPolicy", err)
	}
}

func TestAlphabetOrder(t *testing.T) {
	tests := []struct {
		lower, upper, numbers, symbols bool
		want                           string
	}{
		{true, false, false, false, "abcdefghijklmnopqrstuvwxyz"},
		{false, true, false, false, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{false, false, true, false, "0123456789"},
		{false, false, false, true, "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
		{true, true, false, false, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{true, true, true, true, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"},
	}
	for _, test := range tests {
		p, err := charset.New(test.lower, test.upper, test.numbers, test.symbols)
		if err != nil {
			t.Fatalf("New(%v,%v,%v,%v): unexpected error: %v", test.lower, test.upper, test.numbers, test.symbols, err)
		}
		if got := string(p.Alphabet()); got != test.want {
			t.Errorf("Alphabet(): got %q, want %q", got, test.want)
		}
	}
}

func TestEnabledSetsOrderAndLength(t *testing.T) {
	p, err := charset.New(true, false, true, true)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	sets := p.EnabledSets()
	if len(sets) != 3 {
		t.Fatalf("EnabledSets: got %d sets, want 3", len(sets))
	}
	want := [][]byte{
		[]byte("abcdefghijklmnopqrstuvwxyz"),
		[]byte("0123456789"),
		[]byte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"),
	}
	for i, s := range sets {
		if !bytes.Equal(s, want[i]) {
			t.Errorf("EnabledSets()[%d]: got %q, want %q", i, s, want[i])
		}
	}
	if p.NumClasses() != 3 {
		t.Errorf("NumClasses(): got %d, want 3", p.NumClasses())
	}
}

func TestAllPolicy(t *testing.T) {
	if got, want := charset.All.NumClasses(), 4; got != want {
		t.Errorf("All.NumClasses(): got %d, want %d", got, want)
	}
}
