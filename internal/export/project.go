// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package export

import "github.com/toeirei/opexport/internal/model"

// Project returns the entries shown while browsing. Accounts are always
// shown. The vaults of an excluded account are hidden, and so are the items of
// an excluded or hidden vault. Hidden entries keep their own exclusion state;
// this is a view over flat, not a change to the set.
//
// flat must be in Flatten order.
func Project(flat []model.Entry, set *ExclusionSet) []model.Entry {
	visible := make([]model.Entry, 0, len(flat))
	suppressAccount, suppressVault := false, false

	for _, e := range flat {
		switch e.(type) {
		case model.AccountEntry:
			visible = append(visible, e)
			suppressAccount = set.IsExcluded(e)
			suppressVault = false
		case model.VaultEntry:
			if suppressAccount {
				continue
			}
			visible = append(visible, e)
			suppressVault = set.IsExcluded(e)
		case model.ItemEntry:
			if suppressAccount || suppressVault {
				continue
			}
			visible = append(visible, e)
		}
	}
	return visible
}
