// Package config handles lesspass site presets. Presets are typically
// stored as YAML on disk and let a user avoid retyping the same site,
// login, counter, and character-class policy on every invocation.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creachadair/atomicfile"
	"github.com/creachadair/mds/value"
	"gopkg.in/yaml.v3"

	"github.com/lesspass-go/lesspass"
	"github.com/lesspass-go/lesspass/charset"
)

// defaultPath is the compiled-in configuration file path, expanded against
// the environment at lookup time.
const defaultPath = "$HOME/.lesspass.yaml"

// FilePath returns the effective configuration file path. If LESSPASS_CONFIG
// is defined in the environment, that is used; otherwise the compiled-in
// default is used.
func FilePath() string {
	if path, ok := os.LookupEnv("LESSPASS_CONFIG"); ok {
		return path
	}
	return os.ExpandEnv(defaultPath)
}

// A Config is the contents of a lesspass configuration file.
type Config struct {
	// A map from site labels to site presets.
	Sites map[string]Site `yaml:"sites,omitempty"`

	// A default site, used to fill empty fields of a named preset and as
	// the basis for a site not found in Sites.
	Default Site `yaml:"default,omitempty"`
}

// A Site is a non-secret preset for a single site. The master secret is
// never part of a Site; it is always supplied separately at generation
// time.
type Site struct {
	// The site identifier fed to the salt builder (required). Conventionally
	// a hostname, e.g. "example.org".
	Host string `yaml:"host"`

	// The login identifier fed to the salt builder.
	Login string `yaml:"login,omitempty"`

	// Disambiguates multiple passwords for the same site and login. Defaults
	// to 1 if zero.
	Counter uint32 `yaml:"counter,omitempty"`

	// Requested password length. If zero, uses the default.
	Length int `yaml:"length,omitempty"`

	// PBKDF2 profile. If empty, uses the default (SHA256).
	Algorithm string `yaml:"algorithm,omitempty"`

	// PBKDF2 iteration count. If zero, uses lesspass.DefaultIterations.
	Iterations int `yaml:"iterations,omitempty"`

	// Character-class policy. A nil pointer leaves the corresponding class
	// unspecified so Default (or charset.All, if no default is set either)
	// supplies it.
	Lower   *bool `yaml:"lower,omitempty"`
	Upper   *bool `yaml:"upper,omitempty"`
	Numbers *bool `yaml:"numbers,omitempty"`
	Symbols *bool `yaml:"symbols,omitempty"`

	// Alternative hostnames that should be considered aliases for this
	// site. Aliases are only examined if there is no primary host match.
	Aliases []string `yaml:"aliases,omitempty"`

	// Archived entries are excluded from listings unless explicitly
	// requested.
	Archived bool `yaml:"archived,omitempty"`
}

// Load loads the contents of the specified path into c. If path does not
// exist, the reported error satisfies os.IsNotExist and c is unmodified.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate reports whether every preset in c (and the default preset)
// resolves to a usable derivation request: a recognized algorithm name and
// a non-empty character-class policy. It never needs a real master secret
// to check this, so it fabricates a placeholder internally; the result
// says nothing about whether the user's actual secret is acceptable,
// since the core has no such constraint.
func (c Config) Validate() error {
	for label, s := range c.Sites {
		if _, err := s.merge(c.Default).Request("x"); err != nil {
			return fmt.Errorf("site %q: %w", label, err)
		}
	}
	if _, err := c.Default.Request("x"); err != nil {
		return fmt.Errorf("default site: %w", err)
	}
	return nil
}

// Save writes c to path as YAML, replacing the file atomically.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return atomicfile.Tx(path, 0600, func(f *atomicfile.File) error {
		_, err := f.Write(data)
		return err
	})
}

// Site returns a site preset for the given label, which has the form
// "host.name" or "login@host.name", and reports whether the config held a
// matching entry. If no entry matched, a default Site is built from the
// label alone.
func (c *Config) Site(label string) (Site, bool) {
	host, login := label, ""
	if i := strings.Index(label, "@"); i >= 0 {
		login = label[:i]
		host = label[i+1:]
	}

	site, ok := c.Sites[host]
	if !ok {
		var cands []Site
		for _, s := range c.Sites {
			if s.Host == host {
				site, ok = s, true
				break
			}
			for _, alias := range s.Aliases {
				if alias == host {
					cands = append(cands, s)
				}
			}
		}
		if !ok && len(cands) != 0 {
			site, ok = cands[0], true
		}
	}
	if site.Host == "" {
		site.Host = host
	}
	if login != "" {
		site.Login = login // the caller's login always wins
	}
	return site.merge(c.Default), ok
}

// SiteCandidates returns candidate site labels derived from base, most
// specific first. If base looks like a hostname, the candidates are its
// dot-separated suffixes of length at least 2 labels; a "login@" prefix,
// if present, is preserved on every candidate. If base does not look like
// a hostname, the slice contains it alone.
func SiteCandidates(base string) []string {
	if !strings.Contains(base, ".") {
		return []string{base}
	}

	login, label := "", base
	if ps := strings.SplitN(base, "@", 2); len(ps) == 2 {
		login, label = ps[0]+"@", ps[1]
	}

	var cands []string
	ps := strings.Split(label, ".")
	for i := 0; i+2 <= len(ps); i++ {
		cands = append(cands, login+strings.Join(ps[i:], "."))
	}
	return cands
}

// merge returns a copy of s in which empty fields are filled from c.
func (s Site) merge(c Site) Site {
	if s.Host == "" {
		s.Host = c.Host
	}
	if s.Login == "" {
		s.Login = c.Login
	}
	if s.Counter == 0 {
		s.Counter = c.Counter
	}
	if s.Length <= 0 {
		s.Length = c.Length
	}
	if s.Algorithm == "" {
		s.Algorithm = c.Algorithm
	}
	if s.Iterations == 0 {
		s.Iterations = c.Iterations
	}
	s.Lower = cmp.Or(s.Lower, c.Lower)
	s.Upper = cmp.Or(s.Upper, c.Upper)
	s.Numbers = cmp.Or(s.Numbers, c.Numbers)
	s.Symbols = cmp.Or(s.Symbols, c.Symbols)
	return s
}

// ErrUnknownAlgorithm is reported by Request when a Site names a PBKDF2
// profile this build does not recognize.
var ErrUnknownAlgorithm = errors.New("config: unknown algorithm")

// Policy builds the character-class policy described by s. Any class left
// unset (nil) is enabled; when none of the four are set at all, the result
// is charset.All.
func (s Site) Policy() (charset.Policy, error) {
	if s.Lower == nil && s.Upper == nil && s.Numbers == nil && s.Symbols == nil {
		return charset.All, nil
	}
	return charset.New(
		classEnabled(s.Lower),
		classEnabled(s.Upper),
		classEnabled(s.Numbers),
		classEnabled(s.Symbols),
	)
}

// classDefault is the fallback a nil class flag resolves to: a class a user
// never mentioned stays enabled.
var classDefault = true

// classEnabled dereferences a *bool class flag, falling back to
// classDefault when it is nil rather than to the type's zero value.
func classEnabled(p *bool) bool {
	return value.At(cmp.Or(p, &classDefault))
}

// algorithms maps a Site's Algorithm name to the corresponding PBKDF2
// profile. The empty string selects the interop default.
var algorithms = map[string]lesspass.Algorithm{
	"":       lesspass.SHA256,
	"sha256": lesspass.SHA256,
	"sha384": lesspass.SHA384,
	"sha512": lesspass.SHA512,
}

// Request builds a lesspass.Request from s and the given master secret,
// filling in length and iteration defaults where s leaves them unset.
func (s Site) Request(master string) (lesspass.Request, error) {
	alg, ok := algorithms[strings.ToLower(s.Algorithm)]
	if !ok {
		return lesspass.Request{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s.Algorithm)
	}
	policy, err := s.Policy()
	if err != nil {
		return lesspass.Request{}, err
	}
	counter := s.Counter
	if counter == 0 {
		counter = 1
	}
	length := s.Length
	if length == 0 {
		length = 16
	}
	return lesspass.Request{
		Site:       s.Host,
		Login:      s.Login,
		Counter:    counter,
		Master:     master,
		Algorithm:  alg,
		Iterations: s.Iterations,
		Policy:     policy,
		Length:     length,
	}, nil
}
