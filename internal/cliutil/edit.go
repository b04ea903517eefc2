// Package cliutil holds small terminal-interaction helpers shared by the
// lesspass command-line subcommands.
package cliutil

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creachadair/mds/mdiff"
	"github.com/creachadair/mds/mstr"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// ErrNoChange is reported by Edit if the resulting value did not change.
var ErrNoChange = errors.New("input was not changed")

// ErrUserReject is reported by Edit if the user rejected the changed file.
var ErrUserReject = errors.New("the user rejected the edits")

// Edit invokes an editor with value rendered as YAML and, once the user
// confirms a diff, unmarshals the result and runs validate against it. If
// validate reports an error, Edit reports it on stderr and reopens the
// editor on the user's own (invalid) edit rather than discarding it or
// returning a value the caller can't use -- a config file with a typo in an
// algorithm name should send the user back to fix that one field, not force
// them to start over or crash the next generate. Edit keeps looping until
// validate accepts the result, the user declines to keep editing, or the
// user leaves the file unchanged.
func Edit[T any](ctx context.Context, value T, validate func(T) error) (T, error) {
	for {
		out, err := editOnce(ctx, value)
		if err != nil {
			return out, err
		}
		if err := validate(out); err != nil {
			fmt.Fprintf(os.Stderr, "edit rejected: %v (reopening editor)\n", err)
			value = out
			continue
		}
		return out, nil
	}
}

// editOnce runs a single edit-diff-confirm pass: it renders value as YAML,
// opens $EDITOR (falling back to vi) on a scratch copy, and on a non-empty
// diff asks the user at the terminal whether to keep the change before
// unmarshaling the edited text back into a fresh value of the same type.
func editOnce[T any](ctx context.Context, value T) (T, error) {
	var out T

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return out, fmt.Errorf("marshal value: %w", err)
	}

	dir, err := os.MkdirTemp("", "lesspass-edit*")
	if err != nil {
		return out, err
	}
	defer os.RemoveAll(dir)

	epath := filepath.Join(dir, "value.yaml")
	if err := os.WriteFile(epath, buf.Bytes(), 0600); err != nil {
		return out, err
	}

	name := cmp.Or(os.Getenv("EDITOR"), "vi")
	cmd := exec.CommandContext(ctx, name, "value.yaml")
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return out, fmt.Errorf("editor failed: %w", err)
	}

	edited, err := os.ReadFile(epath)
	if err != nil {
		return out, fmt.Errorf("read editor output: %w", err)
	}
	diff := mdiff.New(mstr.Lines(buf.String()), mstr.Lines(string(edited)))
	if len(diff.Chunks) == 0 {
		return value, ErrNoChange
	}

	oldst, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return out, err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldst)
	vt := term.NewTerminal(os.Stdin, "")

	diff.AddContext(3).Unify().Format(vt, mdiff.Unified, nil)

confirm:
	for {
		fmt.Fprint(vt, "▷ Keep changes? (y/n) ")
		ln, err := vt.ReadLine()
		if err != nil {
			return out, err
		}
		switch strings.ToLower(ln) {
		case "y", "yes":
			break confirm
		case "n", "no":
			return value, ErrUserReject
		default:
			fmt.Fprintln(vt, "** Please enter y(es) or n(o)")
		}
	}

	err = yaml.Unmarshal(edited, &out)
	return out, err
}
