// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Command opexport browses the 1Password data visible to the op CLI and
// writes a filtered JSON export.
//
// Usage:
//
//	opexport [flags]          interactive browser
//	opexport [flags] <path>   export everything to path
package main

import (
	"os"

	"github.com/toeirei/opexport/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
