// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package export

import "github.com/toeirei/opexport/internal/model"

// ExclusionSet records which accounts, vaults and items are excluded. Each
// kind has its own id set and membership never cascades: excluding a vault
// says nothing about its items.
type ExclusionSet struct {
	accounts map[string]struct{}
	vaults   map[string]struct{}
	items    map[string]struct{}
}

// NewExclusionSet returns an empty set, optionally pre-filled with keys.
func NewExclusionSet(keys ...model.Key) *ExclusionSet {
	s := &ExclusionSet{
		accounts: make(map[string]struct{}),
		vaults:   make(map[string]struct{}),
		items:    make(map[string]struct{}),
	}
	for _, k := range keys {
		s.set(k.Kind)[k.ID] = struct{}{}
	}
	return s
}

func (s *ExclusionSet) set(k model.Kind) map[string]struct{} {
	switch k {
	case model.KindAccount:
		return s.accounts
	case model.KindVault:
		return s.vaults
	case model.KindItem:
		return s.items
	}
	panic("export: unknown entry kind " + k.String())
}

// IsExcluded reports whether the entry's own id is in the set for its kind.
// A nil set excludes nothing.
func (s *ExclusionSet) IsExcluded(e model.Entry) bool {
	if s == nil {
		return false
	}
	return s.Contains(e.Key())
}

// Contains reports whether key is excluded.
func (s *ExclusionSet) Contains(key model.Key) bool {
	if s == nil {
		return false
	}
	_, ok := s.set(key.Kind)[key.ID]
	return ok
}

// Toggle flips the entry's membership and reports whether it is now excluded.
func (s *ExclusionSet) Toggle(e model.Entry) bool {
	key := e.Key()
	ids := s.set(key.Kind)
	if _, ok := ids[key.ID]; ok {
		delete(ids, key.ID)
		return false
	}
	ids[key.ID] = struct{}{}
	return true
}

// Len returns the number of excluded ids across all kinds.
func (s *ExclusionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.accounts) + len(s.vaults) + len(s.items)
}

// Clone returns an independent copy of the set.
func (s *ExclusionSet) Clone() *ExclusionSet {
	out := NewExclusionSet()
	if s == nil {
		return out
	}
	for id := range s.accounts {
		out.accounts[id] = struct{}{}
	}
	for id := range s.vaults {
		out.vaults[id] = struct{}{}
	}
	for id := range s.items {
		out.items[id] = struct{}{}
	}
	return out
}
