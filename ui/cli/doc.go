// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the opexport command line using Cobra. It loads
// configuration, then either starts the interactive browser or writes a
// complete export to the path given as the only argument.
package cli
