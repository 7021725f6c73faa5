// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package export turns the loaded tree into the exported JSON document. It
// holds the exclusion set, the browsing projection and the export filter.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/opexport/internal/logging"
	"github.com/toeirei/opexport/internal/model"
)

// CompressedSuffix selects zstd compression when an output path ends with it.
const CompressedSuffix = ".zst"

// ErrNoPath is returned by Save when the output path is empty.
var ErrNoPath = errors.New("no export path given")

// WriteError wraps a failure to write the export file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write export to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Options controls how the document is encoded.
type Options struct {
	Indent bool
}

// Result summarises a completed save.
type Result struct {
	Path     string
	Accounts int
	Vaults   int
	Items    int
	Orphans  int
}

// Write encodes tree as the export JSON document.
func Write(w io.Writer, tree *model.Data, opts Options) error {
	if tree == nil {
		tree = &model.Data{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(normalize(tree)); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Save filters tree with set and writes the result to path. A path ending in
// CompressedSuffix is written as a zstd stream. The file is only touched once
// the whole document has been encoded.
func Save(tree *model.Data, set *ExclusionSet, path string, opts Options) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{}, ErrNoPath
	}

	filtered, orphans := Filter(tree, set)
	if orphans > 0 {
		logging.Debugf("export: dropped %d entries whose parent was excluded", orphans)
	}

	var buf bytes.Buffer
	if strings.HasSuffix(path, CompressedSuffix) {
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return Result{}, fmt.Errorf("create zstd writer: %w", err)
		}
		if err := Write(zw, filtered, opts); err != nil {
			_ = zw.Close()
			return Result{}, err
		}
		if err := zw.Close(); err != nil {
			return Result{}, fmt.Errorf("finish zstd stream: %w", err)
		}
	} else if err := Write(&buf, filtered, opts); err != nil {
		return Result{}, err
	}

	if err := writeFile(path, buf.Bytes()); err != nil {
		return Result{}, &WriteError{Path: path, Err: err}
	}

	res := Result{Path: path, Orphans: orphans}
	res.Accounts, res.Vaults, res.Items = filtered.Counts()
	logging.Infof("export: wrote %d accounts, %d vaults, %d items to %s", res.Accounts, res.Vaults, res.Items, path)
	return res, nil
}

// writeFile writes the export with owner-only permissions on Unix-like
// systems. On Windows, where POSIX permissions are not meaningful, it falls
// back to 0644.
func writeFile(path string, content []byte) error {
	perm := os.FileMode(0600)
	if runtime.GOOS == "windows" {
		perm = 0644
	}
	return os.WriteFile(path, content, perm)
}

// normalize returns a copy of tree in which every list is non-nil so the
// document never contains null where an array is expected. Clone allocates
// all lists.
func normalize(tree *model.Data) *model.Data {
	return tree.Clone()
}
