// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package export

import "github.com/toeirei/opexport/internal/model"

// FilterEntries drops every entry whose own id is excluded. It does not
// cascade: the children of an excluded vault stay in the sequence unless they
// are excluded themselves.
func FilterEntries(entries []model.Entry, set *ExclusionSet) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if !set.IsExcluded(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter applies set to tree and returns a new tree. Neither tree nor set is
// modified.
//
// Removing an account or vault leaves its remaining children without a parent
// in the sequence; those are dropped during reconstruction and counted in the
// returned orphan total.
func Filter(tree *model.Data, set *ExclusionSet) (*model.Data, int) {
	return model.ReconstructWithStats(FilterEntries(model.Flatten(tree), set))
}
