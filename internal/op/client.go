// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package op talks to the 1Password CLI. Every call runs the op binary with
// JSON output and decodes the answer into the records in records.go.
package op

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/toeirei/opexport/internal/logging"
)

// Runner executes op with the given arguments and returns its stdout.
// Implementations classify failures as *Error.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs the op binary as a child process.
type ExecRunner struct {
	Binary  string        // executable name or path, "op" when empty
	Cache   bool          // pass --cache
	Timeout time.Duration // per invocation, none when zero
}

// Run executes `<binary> args... [--cache] --format json`. Anything written to
// stderr is treated as a failure reported by op.
func (r ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = "op"
	}
	full := append([]string{}, args...)
	if r.Cache {
		full = append(full, "--cache")
	}
	full = append(full, "--format", "json")

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, full...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logging.Debugf("op %s took %v", strings.Join(args, " "), time.Since(start))

	if stderr.Len() > 0 {
		return nil, &Error{Kind: KindCLI, Args: args, Stderr: stderr.String(), Err: err}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			// op exited non-zero without a message
			return nil, &Error{Kind: KindCLI, Args: args, Stderr: exitErr.String(), Err: err}
		}
		return nil, &Error{Kind: KindCommand, Args: args, Err: err}
	}
	return stdout.Bytes(), nil
}

// Client wraps a Runner with typed calls.
type Client struct {
	runner Runner
}

// NewClient returns a Client using runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

func call[T any](ctx context.Context, c *Client, args ...string) (T, error) {
	var out T
	raw, err := c.runner.Run(ctx, args...)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &Error{Kind: KindDeserialize, Args: args, Err: err}
	}
	return out, nil
}

// withAccount scopes args to account when it is set.
func withAccount(account string, args ...string) []string {
	if account == "" {
		return args
	}
	return append(args, "--account", account)
}

// ListAccounts runs `op account list`.
func (c *Client) ListAccounts(ctx context.Context) ([]ListedAccount, error) {
	return call[[]ListedAccount](ctx, c, "account", "list")
}

// GetAccount runs `op account get --account <id>`.
func (c *Client) GetAccount(ctx context.Context, id string) (Account, error) {
	return call[Account](ctx, c, "account", "get", "--account", id)
}

// ListVaults runs `op vault list`, scoped to account when given.
func (c *Client) ListVaults(ctx context.Context, account string) ([]ListedVault, error) {
	return call[[]ListedVault](ctx, c, withAccount(account, "vault", "list")...)
}

// GetVault runs `op vault get <id>`.
func (c *Client) GetVault(ctx context.Context, account, id string) (Vault, error) {
	return call[Vault](ctx, c, withAccount(account, "vault", "get", id)...)
}

// ListItems runs `op item list`, scoped to account when given.
func (c *Client) ListItems(ctx context.Context, account string) ([]ListedItem, error) {
	return call[[]ListedItem](ctx, c, withAccount(account, "item", "list")...)
}

// GetItem runs `op item get <id>`.
func (c *Client) GetItem(ctx context.Context, account, id string) (Item, error) {
	return call[Item](ctx, c, withAccount(account, "item", "get", id)...)
}
