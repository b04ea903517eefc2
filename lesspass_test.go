package lesspass_test

import (
	"encoding/hex"
	"testing"

	"github.com/lesspass-go/lesspass"
	"github.com/lesspass-go/lesspass/charset"
)

// Canonical cross-implementation vectors, from the LessPass entropy test
// suite (lesspass/lesspass packages/lesspass-entropy/test/index.test.js) as
// reproduced in the Rust port's own test module.
func TestCanonicalEntropyVectors(t *testing.T) {
	tests := []struct {
		name                 string
		site, login, master  string
		counter              uint32
		alg                  lesspass.Algorithm
		iterations, outLen   int
		wantHexPrefix        string
	}{
		{
			name: "defaults", site: "example.org", login: "contact@example.org", master: "password",
			counter: 1, alg: lesspass.SHA256, iterations: 100000, outLen: 32,
			wantHexPrefix: "dc33d431bce2b01182c613382483ccdb0e2f66482cbba5e9d07dab34acc7eb1e",
		},
		{
			name: "unicode", site: "example.org", login: "❤", master: "I ❤ LessPass",
			counter: 1, alg: lesspass.SHA256, iterations: 100000, outLen: 32,
			wantHexPrefix: "4e66cab40690c01af55efd595f5963cc953d7e10273c01827881ebf8990c627f",
		},
		{
			name: "sha512", site: "example.org", login: "contact@example.org", master: "password",
			counter: 1, alg: lesspass.SHA512, iterations: 8192, outLen: 16,
			wantHexPrefix: "fff211c16a4e776b3574c6a5c91fd252",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			salt := lesspass.BuildSalt(test.site, test.login, test.counter)
			entropy, err := lesspass.DeriveEntropy(test.master, salt, test.alg, test.iterations, test.outLen)
			if err != nil {
				t.Fatalf("DeriveEntropy: unexpected error: %v", err)
			}
			want, err := hex.DecodeString(test.wantHexPrefix)
			if err != nil {
				t.Fatalf("bad test vector: %v", err)
			}
			if got := hex.EncodeToString(entropy); got != hex.EncodeToString(want) {
				t.Errorf("entropy: got %s, want %s", got, hex.EncodeToString(want))
			}
		})
	}
}

func TestBuildSaltExample(t *testing.T) {
	got := string(lesspass.BuildSalt("example.org", "contact@example.org", 1))
	want := "example.orgcontact@example.org1"
	if got != want {
		t.Errorf("BuildSalt: got %q, want %q", got, want)
	}
}

func TestBuildSaltCounterEncoding(t *testing.T) {
	tests := []struct {
		counter uint32
		want    string
	}{
		{0, ""},
		{1, "1"},
		{15, "f"},
		{16, "10"},
		{255, "ff"},
		{256, "100"},
		{1<<32 - 1, "ffffffff"},
	}
	for _, test := range tests {
		got := string(lesspass.BuildSalt("", "", test.counter))
		if got != test.want {
			t.Errorf("BuildSalt(counter=%d): got %q, want %q", test.counter, got, test.want)
		}
	}
}

func TestCanonicalFingerprintVectors(t *testing.T) {
	tests := []struct {
		master, wantHex string
	}{
		{"", "b613679a0814d9ec772f95d778c35fc5ff1697c493715653c6c712144292c5ad"},
		{"foo", "683716d9d7f82eed174c6caebe086ee93376c79d7c61dd670ea00f7f8d6eb0a8"},
	}
	for _, test := range tests {
		fp := lesspass.Fingerprint(test.master)
		want, err := hex.DecodeString(test.wantHex)
		if err != nil {
			t.Fatalf("bad test vector: %v", err)
		}
		if got := hex.EncodeToString(fp[:]); got != hex.EncodeToString(want) {
			t.Errorf("Fingerprint(%q): got %s, want %s", test.master, got, hex.EncodeToString(want))
		}
	}
}

func TestCanonicalPasswordVector(t *testing.T) {
	policy := charset.All
	req := lesspass.Request{
		Site:       "lorem ipsum",
		Login:      "lorem ipsum",
		Counter:    1,
		Master:     "lorem ipsum",
		Algorithm:  lesspass.SHA256,
		Iterations: 100000,
		Policy:     policy,
		Length:     16,
	}
	got, err := lesspass.Generate(req)
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if want := "fV1^3lS*'[knImg8"; got != want {
		t.Errorf("Generate: got %q, want %q", got, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	policy, err := charset.New(true, true, true, false)
	if err != nil {
		t.Fatalf("charset.New: unexpected error: %v", err)
	}
	req := lesspass.Request{
		Site: "example.org", Login: "a@example.org", Counter: 3,
		Master: "hunter2", Algorithm: lesspass.SHA256, Policy: policy, Length: 20,
	}
	a, err := lesspass.Generate(req)
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	b, err := lesspass.Generate(req)
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("Generate is not deterministic: %q != %q", a, b)
	}
	if len(a) != 20 {
		t.Errorf("len(password) = %d, want 20", len(a))
	}
}
