// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ShelfMangaTable represents the 'shelf.manga' table.
type ShelfMangaTable struct {
	Table        string
	ID           string
	CollectionID string
	OwnerID      string
	CatalogID    string
	Title        string
	TitleEnglish string
	ImageURL     string
	Synopsis     string
	Chapters     string
	Score        string
	Status       string
	Published    string
	TotalVolumes string
	Rating       string
	Notes        string
	Volumes      string
	Version      string
	CreatedAt    string
	UpdatedAt    string
}

// ShelfManga is the schema definition for shelf.manga.
var ShelfManga = ShelfMangaTable{
	Table:        "shelf.manga",
	ID:           "id",
	CollectionID: "collectionid",
	OwnerID:      "ownerid",
	CatalogID:    "catalogid",
	Title:        "title",
	TitleEnglish: "titleenglish",
	ImageURL:     "imageurl",
	Synopsis:     "synopsis",
	Chapters:     "chapters",
	Score:        "score",
	Status:       "status",
	Published:    "published",
	TotalVolumes: "totalvolumes",
	Rating:       "rating",
	Notes:        "notes",
	Volumes:      "volumes",
	Version:      "version",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all columns in scan order.
func (t ShelfMangaTable) Columns() []string {
	return []string{
		t.ID, t.CollectionID, t.OwnerID, t.CatalogID, t.Title, t.TitleEnglish,
		t.ImageURL, t.Synopsis, t.Chapters, t.Score, t.Status, t.Published,
		t.TotalVolumes, t.Rating, t.Notes, t.Volumes, t.Version, t.CreatedAt, t.UpdatedAt,
	}
}
