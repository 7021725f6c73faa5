// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the export tree (accounts, vaults, items) and the
// flat Entry sequence used for navigation, exclusion and export filtering.
//
// The JSON tags on these types are the export interchange format.
package model

// Data is the root of the export tree.
type Data struct {
	Accounts []Account `json:"accounts"`
}

// Account is a signed-in 1Password account and the vaults it owns.
type Account struct {
	Name   string  `json:"accountName"`
	Email  string  `json:"email"`
	UUID   string  `json:"uuid"`
	Domain string  `json:"domain"`
	Vaults []Vault `json:"vaults"`
}

// Vault belongs to exactly one account and owns its items.
type Vault struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Items []Item `json:"items"`
}

// Item is a single vault item.
type Item struct {
	UUID         string      `json:"uuid"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
	CategoryUUID string      `json:"categoryUuid"`
	Overview     Overview    `json:"overview"`
	Details      ItemDetails `json:"details"`
}

// Overview holds the searchable summary of an item.
type Overview struct {
	Title string   `json:"title"`
	URL   *string  `json:"url"` // primary url, null when the item has none
	URLs  []URL    `json:"urls"`
	Tags  []string `json:"tags"`
}

// URL is one website attached to an item.
type URL struct {
	URL string `json:"url"`
}

// ItemDetails holds the item fields.
type ItemDetails struct {
	LoginFields []LoginField `json:"loginFields"`
}

// LoginField is one field of an item. Only Type is always present.
type LoginField struct {
	Value       *string `json:"value"`
	Name        *string `json:"name"`
	Type        string  `json:"type"`
	Designation *string `json:"designation"`
}

// Counts returns the number of accounts, vaults and items in the tree.
func (d *Data) Counts() (accounts, vaults, items int) {
	if d == nil {
		return 0, 0, 0
	}
	for _, a := range d.Accounts {
		accounts++
		for _, v := range a.Vaults {
			vaults++
			items += len(v.Items)
		}
	}
	return accounts, vaults, items
}

// Clone returns a deep copy of the tree.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := &Data{Accounts: make([]Account, 0, len(d.Accounts))}
	for _, a := range d.Accounts {
		out.Accounts = append(out.Accounts, a.Clone())
	}
	return out
}

// Clone returns a deep copy of the account including its vaults.
func (a Account) Clone() Account {
	out := a.shell()
	for _, v := range a.Vaults {
		out.Vaults = append(out.Vaults, v.Clone())
	}
	return out
}

// shell copies the account attributes with an empty vault list.
func (a Account) shell() Account {
	return Account{
		Name:   a.Name,
		Email:  a.Email,
		UUID:   a.UUID,
		Domain: a.Domain,
		Vaults: make([]Vault, 0, len(a.Vaults)),
	}
}

// Clone returns a deep copy of the vault including its items.
func (v Vault) Clone() Vault {
	out := v.shell()
	for _, it := range v.Items {
		out.Items = append(out.Items, it.Clone())
	}
	return out
}

func (v Vault) shell() Vault {
	return Vault{
		UUID:  v.UUID,
		Name:  v.Name,
		Type:  v.Type,
		Items: make([]Item, 0, len(v.Items)),
	}
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.Overview.URL = cloneString(it.Overview.URL)
	out.Overview.URLs = append(make([]URL, 0, len(it.Overview.URLs)), it.Overview.URLs...)
	out.Overview.Tags = append(make([]string, 0, len(it.Overview.Tags)), it.Overview.Tags...)
	out.Details.LoginFields = make([]LoginField, 0, len(it.Details.LoginFields))
	for _, f := range it.Details.LoginFields {
		out.Details.LoginFields = append(out.Details.LoginFields, LoginField{
			Value:       cloneString(f.Value),
			Name:        cloneString(f.Name),
			Type:        f.Type,
			Designation: cloneString(f.Designation),
		})
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
