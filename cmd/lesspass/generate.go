package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/creachadair/command"
	"github.com/creachadair/getpass"

	"github.com/lesspass-go/lesspass"
	"github.com/lesspass-go/lesspass/clipboard"
	"github.com/lesspass-go/lesspass/config"
)

// runGenerate implements the root command: it generates one password per
// site argument.
func runGenerate(env *command.Env, sites ...string) error {
	if len(sites) == 0 {
		return env.Usagef("you must specify at least one site")
	}
	flags := settingsOf(env)

	cfg, err := loadConfig(env)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	resolved := make([]config.Site, len(sites))
	for i, arg := range sites {
		var site config.Site
		for _, cand := range config.SiteCandidates(arg) {
			if s, ok := cfg.Site(cand); ok {
				site = s
				break
			}
		}
		if site.Host == "" {
			site, _ = cfg.Site(arg)
		}
		resolved[i] = applyFlagOverrides(site, flags)
	}

	master, err := loadMaster()
	if err != nil {
		return fmt.Errorf("reading master secret: %w", err)
	}

	if flags.Verbose {
		fp := lesspass.Fingerprint(master)
		fmt.Printf("master fingerprint: %s\n", hex.EncodeToString(fp[:4]))
	}

	for _, site := range resolved {
		req, err := site.Request(master)
		if err != nil {
			return err
		}
		pw, err := lesspass.Generate(req)
		if err != nil {
			return fmt.Errorf("generate %q: %w", site.Host, err)
		}
		if flags.Copy {
			if err := clipboard.WriteString(pw); err != nil {
				return fmt.Errorf("copying password: %w", err)
			}
			if flags.Verbose {
				fmt.Printf("%s\tcopied to clipboard\n", site.Host)
			}
		} else {
			fmt.Println(pw)
		}
	}
	return nil
}

// applyFlagOverrides layers the command-line flags on top of a resolved
// config.Site, for the fields a user is likely to override per invocation.
func applyFlagOverrides(site config.Site, flags *settings) config.Site {
	if flags.Counter != 0 {
		site.Counter = flags.Counter
	}
	if flags.Length != 0 {
		site.Length = flags.Length
	}
	if flags.Algorithm != "" {
		site.Algorithm = flags.Algorithm
	}
	if flags.Iterations != 0 {
		site.Iterations = flags.Iterations
	}
	if flags.NoLower {
		site.Lower = boolPtr(false)
	}
	if flags.NoUpper {
		site.Upper = boolPtr(false)
	}
	if flags.NoNumbers {
		site.Numbers = boolPtr(false)
	}
	if flags.NoSymbols {
		site.Symbols = boolPtr(false)
	}
	return site
}

func boolPtr(b bool) *bool { return &b }

// loadMaster returns the master secret from LESSPASS_MASTER if set, or
// prompts the user at the terminal with echo disabled.
func loadMaster() (string, error) {
	if secret := os.Getenv("LESSPASS_MASTER"); secret != "" {
		return secret, nil
	}
	pw, err := getpass.Prompt("Master secret: ")
	if err != nil {
		return "", err
	}
	return pw, nil
}
