// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserProviderAccountTable represents the 'users.provideraccount' table
type UserProviderAccountTable struct {
	Table             string
	ID                string
	UserID            string
	Provider          string
	ProviderAccountID string
	CreatedAt         string
}

// UserProviderAccount is the schema definition for users.provideraccount
var UserProviderAccount = UserProviderAccountTable{
	Table:             "users.provideraccount",
	ID:                "id",
	UserID:            "userid",
	Provider:          "provider",
	ProviderAccountID: "provideraccountid",
	CreatedAt:         "createdat",
}

// Columns returns all standard column names
func (t UserProviderAccountTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Provider, t.ProviderAccountID, t.CreatedAt}
}
