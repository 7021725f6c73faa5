// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package op

// OnlyID is used for nested references that only carry an id.
type OnlyID struct {
	ID string `json:"id"`
}

// ListedAccount is one row of `op account list`.
type ListedAccount struct {
	URL         string  `json:"url"`
	Email       string  `json:"email"`
	UserUUID    string  `json:"user_uuid"`
	AccountUUID string  `json:"account_uuid"`
	Shorthand   *string `json:"shorthand"`
}

// Account is the answer of `op account get`.
type Account struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	Type      string `json:"type"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
}

// ListedVault is one row of `op vault list`.
type ListedVault struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Vault is the answer of `op vault get`.
type Vault struct {
	ListedVault
	AttributeVersion int    `json:"attribute_version"`
	ContentVersion   int    `json:"content_version"`
	Items            int    `json:"items"`
	Type             string `json:"type"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// ListedItem is one row of `op item list`.
type ListedItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Tags         []string `json:"tags"`
	Version      int      `json:"version"`
	Vault        OnlyID   `json:"vault"`
	Category     string   `json:"category"`
	LastEditedBy string   `json:"last_edited_by"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// Item is the answer of `op item get`.
type Item struct {
	ListedItem
	Sections []OnlyID `json:"sections"`
	Fields   []Field  `json:"fields"`
	URLs     []URL    `json:"urls"`
}

// Field is one item field.
type Field struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Purpose *string  `json:"purpose"`
	Label   *string  `json:"label"`
	Value   *string  `json:"value"`
	Entropy *float64 `json:"entropy"`
}

// URL is one website attached to an item.
type URL struct {
	Label   *string `json:"label"`
	Primary *bool   `json:"primary"`
	Href    *string `json:"href"`
}
