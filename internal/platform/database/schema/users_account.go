// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds table and column identifiers for the shelf database.
// Repositories build SQL from these so a column rename touches one place.
package schema

// UserAccountTable represents the 'users.account' table.
type UserAccountTable struct {
	Table        string
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	LastLoginAt  string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users.account.
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	DisplayName:  "displayname",
	PasswordHash: "passwordhash",
	LastLoginAt:  "lastloginat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns the columns read back into a user entity, in scan order.
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.DisplayName, t.PasswordHash, t.LastLoginAt, t.CreatedAt, t.UpdatedAt}
}
