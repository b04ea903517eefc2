// Program lesspass is a command-line tool for the LessPass stateless
// password generator.
package main

import (
	"os"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"

	"github.com/lesspass-go/lesspass/config"
)

// settings holds the root-level flags, bound into the environment config so
// subcommands can reach them.
type settings struct {
	ConfigPath string `flag:"config,Configuration file path (overrides LESSPASS_CONFIG)"`
	Counter    uint32 `flag:"counter,Password counter (0 uses the preset, else 1)"`
	Length     int    `flag:"length,Password length (0 uses the preset, else 16)"`
	Algorithm  string `flag:"alg,PBKDF2 profile: sha256 (default)| sha384 | sha512"`
	Iterations int    `flag:"iterations,PBKDF2 iteration count (0 uses the profile default)"`
	NoLower    bool   `flag:"no-lower,Exclude lowercase letters"`
	NoUpper    bool   `flag:"no-upper,Exclude uppercase letters"`
	NoNumbers  bool   `flag:"no-numbers,Exclude digits"`
	NoSymbols  bool   `flag:"no-symbols,Exclude symbols"`
	Copy       bool   `flag:"copy,Copy the result to the clipboard instead of printing it"`
	Verbose    bool   `flag:"v,Verbose logging (prints a master-secret fingerprint and confirms each copy)"`
}

func main() {
	var flags settings

	root := &command.C{
		Name:  command.ProgramName(),
		Usage: "[options] [login@]site ...",
		Help: `Generate a site-specific password with the LessPass algorithm.

The resulting password is printed to stdout, or copied to the clipboard
if --copy is set. If the LESSPASS_MASTER environment variable is set, it
is used as the master secret; otherwise the user is prompted at the
terminal.

A site argument has the form "host.org" or "login@host.org". If the site
matches an entry in the user's configuration file, the corresponding
preset settings are used; see the "edit" command to manage that file.
By default, configuration is read from ` + config.FilePath() + `.`,

		SetFlags: command.Flags(flax.MustBind, &flags),

		Init: func(env *command.Env) error {
			env.Config = &flags
			return nil
		},

		Run: command.Adapt(runGenerate),

		Commands: []*command.C{
			{
				Name:  "list",
				Usage: "",
				Help:  "List the sites known to the configuration file.",

				SetFlags: command.Flags(flax.MustBind, &listFlags),
				Run:      command.Adapt(runList),
			},
			{
				Name:  "edit",
				Usage: "",
				Help:  "Edit the configuration file in $EDITOR.",
				Run:   command.Adapt(runEdit),
			},
			{
				Name:  "serve",
				Usage: "addr",
				Help:  "Run a local HTTP generator service bound to addr.",
				Run:   command.Adapt(runServe),
			},
			command.VersionCommand(),
		},
	}
	command.RunOrFail(root.NewEnv(nil).MergeFlags(true), os.Args[1:])
}

func loadConfig(env *command.Env) (*config.Config, error) {
	var c config.Config
	path := settingsOf(env).ConfigPath
	if path == "" {
		path = config.FilePath()
	}
	if err := c.Load(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return &c, nil
}

func settingsOf(env *command.Env) *settings {
	return env.Config.(*settings)
}
