// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ShelfCollectionTable represents the 'shelf.collection' table.
type ShelfCollectionTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// ShelfCollection is the schema definition for shelf.collection.
var ShelfCollection = ShelfCollectionTable{
	Table:       "shelf.collection",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all columns in scan order.
func (t ShelfCollectionTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Slug, t.Description, t.CreatedAt, t.UpdatedAt}
}
