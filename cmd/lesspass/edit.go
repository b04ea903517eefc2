package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/command"

	"github.com/lesspass-go/lesspass/config"
	"github.com/lesspass-go/lesspass/internal/cliutil"
)

// runEdit implements the "edit" subcommand: it opens the configuration file
// in $EDITOR as YAML, shows the user a diff, and asks for confirmation
// before writing the result back atomically.
func runEdit(env *command.Env) error {
	path := settingsOf(env).ConfigPath
	if path == "" {
		path = config.FilePath()
	}

	cfg, err := loadConfig(env)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	edited, err := cliutil.Edit(env.Context(), *cfg, config.Config.Validate)
	if err != nil {
		if errors.Is(err, cliutil.ErrNoChange) {
			fmt.Fprintln(env, "No changes.")
			return nil
		}
		if errors.Is(err, cliutil.ErrUserReject) {
			fmt.Fprintln(env, "Changes discarded.")
			return nil
		}
		return fmt.Errorf("editing configuration: %w", err)
	}

	if err := edited.Save(path); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	fmt.Fprintf(env, "Saved %q\n", path)
	return nil
}
