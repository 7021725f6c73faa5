// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "fmt"

// Kind tags the node type behind an Entry.
type Kind int

const (
	KindAccount Kind = iota
	KindVault
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindVault:
		return "vault"
	case KindItem:
		return "item"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Key identifies an entry by kind and id. Exclusion and cursor tracking both
// work on keys, never on list positions.
type Key struct {
	Kind Kind
	ID   string
}

func (k Key) String() string { return k.Kind.String() + ":" + k.ID }

// Entry is one node of the tree in flattened form. The set of implementations
// is closed: AccountEntry, VaultEntry and ItemEntry.
type Entry interface {
	Key() Key
	isEntry()
}

// AccountEntry carries an owned copy of an account.
type AccountEntry struct {
	Account Account
}

// VaultEntry carries an owned copy of a vault and the id of its account.
type VaultEntry struct {
	AccountID string
	Vault     Vault
}

// ItemEntry carries an owned copy of an item and the ids of its parents.
type ItemEntry struct {
	AccountID string
	VaultID   string
	Item      Item
}

func (e AccountEntry) Key() Key { return Key{Kind: KindAccount, ID: e.Account.UUID} }
func (e VaultEntry) Key() Key   { return Key{Kind: KindVault, ID: e.Vault.UUID} }
func (e ItemEntry) Key() Key    { return Key{Kind: KindItem, ID: e.Item.UUID} }

func (AccountEntry) isEntry() {}
func (VaultEntry) isEntry()   {}
func (ItemEntry) isEntry()    {}

// Title is the display name of the entry's node.
func Title(e Entry) string {
	switch e := e.(type) {
	case AccountEntry:
		return e.Account.Name
	case VaultEntry:
		return e.Vault.Name
	case ItemEntry:
		return e.Item.Overview.Title
	}
	return ""
}
