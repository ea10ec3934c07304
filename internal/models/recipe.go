package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe categories a saved recipe can be filed under.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
)

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner:
		return true
	}
	return false
}

// SavedRecipe is a single bookmarked recipe stored in MongoDB.
// UserID is the canonical ownership marker: every read, update, and
// delete filters on it.
type SavedRecipe struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	UserID    string             `json:"user_id"    bson:"user_id"`
	RecipeID  string             `json:"recipe_id"  bson:"recipe_id"`
	Title     string             `json:"title"      bson:"title"`
	Image     string             `json:"image"      bson:"image"`
	Category  string             `json:"category"   bson:"category"`
	Position  int                `json:"position"   bson:"position"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// SaveRequest is the JSON body for POST /api/recipes/save.
type SaveRequest struct {
	RecipeID string `json:"recipeId"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// ReorderRequest is the JSON body for PUT /api/recipes/reorder. The ids
// are the caller's saved-recipe ids in the desired display order.
type ReorderRequest struct {
	Recipes []string `json:"recipes"`
}
