// Package catalog holds the fixed list of handcrafted items offered by the
// fundraiser. The list is defined at process start and never changes.
package catalog

import (
	"github.com/brad-b-miller/miller-academy-fundraise/models"
)

var products = []models.Product{
	{
		ID:          "lydias-laughs",
		Name:        "Lydia's Laughs",
		Description: "A collection of 7 original comics created by Lydia! Each book includes all 7 stories: The Squashing Squash and the Terrible Tomato, Doggy and the Bone, Water vs Rock, The Chopsticks, No More Phone, Man vs Bubblegum, and The Chalkboard vs the Eraser. Original stories filled with adventure, humor, and creativity that will make you laugh out loud!",
		Price:       5,
		Creator:     "Lydia",
		Age:         "8",
		Grade:       "3rd Grade",
		Image:       "/images/laughs.jpg",
	},
	{
		ID:          "handmade-bookmarks",
		Name:        "Handmade Bookmarks (6 total)",
		Description: "Phoebe created all of these beautiful bookmarks! Each purchase includes six bookmarks: three water-color painted paper bookmarks and three hand-braided thread bookmarks. Two of the braided bookmarks feature binary beads that spell out \"I love you\" and \"one more chapter\" - perfect for keeping your place in your favorite books!",
		Price:       10,
		Creator:     "Phoebe",
		Age:         "11",
		Grade:       "6th Grade",
		Image:       "/images/bookmarks.jpg",
	},
	{
		ID:          "family-notecards",
		Name:        "Note Cards (12 total)",
		Description: "Hand stamped and designed by everyone in the family with handmade stamps. Each purchase includes 6 large sized note cards (4x5.5) and 6 smaller size note cards (2.5x3.5) perfect for sending to friends and family with unique designs created with love! Envelopes are included.",
		Price:       10,
		Creator:     "Team Miller",
		Age:         "All of Us",
		Grade:       "Family Project",
		Image:       "/images/cards.jpg",
	},
	{
		ID:          "fabric-tote",
		Name:        "Large Fabric Grocery Tote",
		Description: "Large fabric grocery tote with a design by Chloe screen printed on one side. Perfect for shopping, carrying books, or everyday use with a beautiful custom design that will inspire you and everyone you see!",
		Price:       25,
		Creator:     "Chloe",
		Age:         "15",
		Grade:       "Sophomore",
		Image:       "/images/tote.png",
	},
}

// Products returns the catalog in display order. Callers get a copy so the
// catalog itself cannot be mutated.
func Products() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

// ByID looks up a product by its identifier.
func ByID(id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
