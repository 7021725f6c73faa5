// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// Flatten walks the tree in preorder: each account, then for each of its
// vaults the vault followed by its items. Exclusion state plays no part here.
// Every entry owns a deep copy of its node, so the result stays valid however
// the source tree is used afterwards.
func Flatten(d *Data) []Entry {
	if d == nil {
		return nil
	}
	var entries []Entry
	for _, acc := range d.Accounts {
		entries = append(entries, AccountEntry{Account: acc.Clone()})
		for _, v := range acc.Vaults {
			entries = append(entries, VaultEntry{AccountID: acc.UUID, Vault: v.Clone()})
			for _, it := range v.Items {
				entries = append(entries, ItemEntry{
					AccountID: acc.UUID,
					VaultID:   v.UUID,
					Item:      it.Clone(),
				})
			}
		}
	}
	return entries
}

// Reconstruct rebuilds a tree from a flat sequence. See ReconstructWithStats.
func Reconstruct(entries []Entry) *Data {
	d, _ := ReconstructWithStats(entries)
	return d
}

// ReconstructWithStats rebuilds a tree from a flat sequence and reports how
// many entries were dropped as orphans.
//
// Vaults and items are attached through the parent ids they carry, not through
// their position. A vault whose account is absent from the sequence, or an item
// whose vault is absent, has nowhere to go and is dropped. When a parent id
// occurs more than once the most recent occurrence wins. Children keep their
// relative order.
func ReconstructWithStats(entries []Entry) (*Data, int) {
	type vaultRef struct{ account, vault string }
	type vaultPos struct{ account, vault int }

	d := &Data{Accounts: []Account{}}
	accounts := make(map[string]int)
	vaults := make(map[vaultRef]vaultPos)
	orphans := 0

	for _, e := range entries {
		switch e := e.(type) {
		case AccountEntry:
			accounts[e.Account.UUID] = len(d.Accounts)
			d.Accounts = append(d.Accounts, e.Account.shell())
		case VaultEntry:
			ai, ok := accounts[e.AccountID]
			if !ok {
				orphans++
				continue
			}
			acc := &d.Accounts[ai]
			vaults[vaultRef{e.AccountID, e.Vault.UUID}] = vaultPos{account: ai, vault: len(acc.Vaults)}
			acc.Vaults = append(acc.Vaults, e.Vault.shell())
		case ItemEntry:
			pos, ok := vaults[vaultRef{e.AccountID, e.VaultID}]
			// A later account with the same id replaces the earlier one; its
			// vaults must be seen again before items can attach.
			if !ok || accounts[e.AccountID] != pos.account {
				orphans++
				continue
			}
			v := &d.Accounts[pos.account].Vaults[pos.vault]
			v.Items = append(v.Items, e.Item.Clone())
		}
	}
	return d, orphans
}
