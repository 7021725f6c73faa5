// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds tree fixtures and rapid generators shared by tests.
package testutil

import (
	"fmt"

	"github.com/toeirei/opexport/internal/model"
	"pgregory.net/rapid"
)

// Item builds a minimal item with the given id and title.
func Item(id, title string) model.Item {
	return model.Item{
		UUID:         id,
		CreatedAt:    "2024-01-01T00:00:00Z",
		UpdatedAt:    "2024-01-02T00:00:00Z",
		CategoryUUID: "LOGIN",
		Overview: model.Overview{
			Title: title,
			URLs:  []model.URL{},
			Tags:  []string{},
		},
		Details: model.ItemDetails{LoginFields: []model.LoginField{}},
	}
}

// Vault builds a vault holding items.
func Vault(id, name string, items ...model.Item) model.Vault {
	if items == nil {
		items = []model.Item{}
	}
	return model.Vault{UUID: id, Name: name, Type: "USER_CREATED", Items: items}
}

// Account builds an account holding vaults.
func Account(id, name string, vaults ...model.Vault) model.Account {
	if vaults == nil {
		vaults = []model.Vault{}
	}
	return model.Account{
		Name:   name,
		Email:  name + "@example.com",
		UUID:   id,
		Domain: "my.1password.com",
		Vaults: vaults,
	}
}

// SampleData is one account "A" with one vault "V" holding items "I1" and "I2".
func SampleData() *model.Data {
	return &model.Data{Accounts: []model.Account{
		Account("A", "Personal",
			Vault("V", "Private",
				Item("I1", "GitHub"),
				Item("I2", "Email"),
			),
		),
	}}
}

// TwoAccountData is a slightly wider tree used by navigation tests:
//
//	A1 -> V1 -> I1, I2
//	   -> V2 -> I3
//	A2 -> V3 -> I4
func TwoAccountData() *model.Data {
	return &model.Data{Accounts: []model.Account{
		Account("A1", "Personal",
			Vault("V1", "Private", Item("I1", "GitHub"), Item("I2", "Email")),
			Vault("V2", "Shared", Item("I3", "Wifi")),
		),
		Account("A2", "Work",
			Vault("V3", "Team", Item("I4", "VPN")),
		),
	}}
}

// DataGen draws trees with globally unique ids and fully populated slices.
func DataGen() *rapid.Generator[*model.Data] {
	return rapid.Custom(func(t *rapid.T) *model.Data {
		d := &model.Data{Accounts: []model.Account{}}
		na := rapid.IntRange(0, 3).Draw(t, "accounts")
		for a := 0; a < na; a++ {
			acc := Account(fmt.Sprintf("A%d", a), fmt.Sprintf("acct-%d", a))
			nv := rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("vaults-%d", a))
			for v := 0; v < nv; v++ {
				vault := Vault(fmt.Sprintf("A%d-V%d", a, v), fmt.Sprintf("vault-%d", v))
				ni := rapid.IntRange(0, 4).Draw(t, fmt.Sprintf("items-%d-%d", a, v))
				for i := 0; i < ni; i++ {
					it := Item(fmt.Sprintf("A%d-V%d-I%d", a, v, i), fmt.Sprintf("item-%d", i))
					if rapid.Bool().Draw(t, "has-url") {
						u := rapid.StringMatching(`https://[a-z]{1,8}\.com`).Draw(t, "url")
						it.Overview.URL = model.StringPtr(u)
						it.Overview.URLs = append(it.Overview.URLs, model.URL{URL: u})
					}
					if rapid.Bool().Draw(t, "has-field") {
						it.Details.LoginFields = append(it.Details.LoginFields, model.LoginField{
							Value:       model.StringPtr(rapid.String().Draw(t, "value")),
							Name:        model.StringPtr("password"),
							Type:        "P",
							Designation: nil,
						})
					}
					vault.Items = append(vault.Items, it)
				}
				acc.Vaults = append(acc.Vaults, vault)
			}
			d.Accounts = append(d.Accounts, acc)
		}
		return d
	})
}

// ExclusionKeysGen draws a subset of the keys present in entries.
func ExclusionKeysGen(entries []model.Entry) *rapid.Generator[[]model.Key] {
	return rapid.Custom(func(t *rapid.T) []model.Key {
		var keys []model.Key
		for i, e := range entries {
			if rapid.Bool().Draw(t, fmt.Sprintf("exclude-%d", i)) {
				keys = append(keys, e.Key())
			}
		}
		return keys
	})
}
