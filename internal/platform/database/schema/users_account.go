// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table           string
	ID              string
	Name            string
	Email           string
	Password        string
	Image           string
	EmailVerifiedAt string
	FavoriteIDs     string
	CreatedAt       string
	UpdatedAt       string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:           "users.account",
	ID:              "id",
	Name:            "name",
	Email:           "email",
	Password:        "passwordhash",
	Image:           "image",
	EmailVerifiedAt: "emailverifiedat",
	FavoriteIDs:     "favoriteids",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Password, t.Image, t.EmailVerifiedAt,
		t.FavoriteIDs, t.CreatedAt, t.UpdatedAt,
	}
}
