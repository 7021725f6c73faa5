// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars holds values injected by the release build.
package buildvars

// Version is set at link time via
// -ldflags "-X github.com/toeirei/opexport/buildvars.Version=...".
// It is empty for local builds.
var Version string

// VersionOrDefault returns Version if set, otherwise def.
func VersionOrDefault(def string) string {
	if Version != "" {
		return Version
	}
	return def
}
