package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/akshat/recipe-box/backend/internal/models"
	"github.com/akshat/recipe-box/backend/internal/store"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// SavedRecipeStore defines the interface for saved-recipe persistence.
type SavedRecipeStore interface {
	Insert(ctx context.Context, rec *models.SavedRecipe) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.SavedRecipe, error)
	GetByID(ctx context.Context, userID, id string) (*models.SavedRecipe, error)
	NextPosition(ctx context.Context, userID string) (int, error)
	SetPosition(ctx context.Context, userID, id string, position int) error
	Delete(ctx context.Context, userID, id string) error
}

// Handler holds recipe HTTP handlers.
type Handler struct {
	saved  SavedRecipeStore
	search *SearchClient
}

func NewHandler(saved SavedRecipeStore, search *SearchClient) *Handler {
	return &Handler{saved: saved, search: search}
}

// Search proxies a search query to the upstream provider.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		http.Error(w, `{"error":"query is required"}`, http.StatusBadRequest)
		return
	}

	results, err := h.search.Search(r.Context(),
		query, r.URL.Query().Get("number"), r.URL.Query().Get("offset"))
	if err != nil {
		log.Printf("recipe search error: %v", err)
		http.Error(w, `{"error":"recipe search failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(results)
}

// Detail proxies a single-recipe detail lookup to the upstream provider.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.search.Detail(r.Context(), id)
	if err != nil {
		log.Printf("recipe detail error: %v", err)
		http.Error(w, `{"error":"recipe lookup failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(detail)
}

// Save bookmarks a recipe for the current user. New saves go to the end of
// the list: position is one past the highest existing position.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	var req models.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.RecipeID == "" || req.Title == "" {
		http.Error(w, `{"error":"recipeId and title are required"}`, http.StatusBadRequest)
		return
	}
	if !models.ValidCategory(req.Category) {
		http.Error(w, `{"error":"category must be breakfast, lunch, or dinner"}`, http.StatusBadRequest)
		return
	}

	position, err := h.saved.NextPosition(r.Context(), userID)
	if err != nil {
		log.Printf("next position error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}

	rec := &models.SavedRecipe{
		UserID:   userID,
		RecipeID: req.RecipeID,
		Title:    req.Title,
		Image:    req.Image,
		Category: req.Category,
		Position: position,
	}
	id, err := h.saved.Insert(r.Context(), rec)
	if err != nil {
		log.Printf("save recipe error: %v", err)
		http.Error(w, `{"error":"failed to save recipe"}`, http.StatusInternalServerError)
		return
	}

	// Re-fetch to get the full object with _id
	saved, err := h.saved.GetByID(r.Context(), userID, id)
	if err != nil {
		log.Printf("saved re-fetch error: %v", err)
		http.Error(w, `{"error":"failed to save recipe"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// ListSaved returns the current user's saved recipes, position ascending.
func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	recs, err := h.saved.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("list saved error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []models.SavedRecipe{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// Reorder sets each submitted recipe's position to its index in the request.
// Every id must belong to the caller; nothing is written until the whole set
// has been verified.
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if len(req.Recipes) == 0 {
		http.Error(w, `{"error":"recipes list is required"}`, http.StatusBadRequest)
		return
	}

	owned, err := h.saved.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("reorder list error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	ownedIDs := make(map[string]bool, len(owned))
	for _, rec := range owned {
		ownedIDs[rec.ID.Hex()] = true
	}
	for _, id := range req.Recipes {
		if !ownedIDs[id] {
			http.Error(w, `{"error":"recipe not found"}`, http.StatusNotFound)
			return
		}
	}

	for i, id := range req.Recipes {
		if err := h.saved.SetPosition(r.Context(), userID, id, i); err != nil {
			log.Printf("reorder update error: %v", err)
			http.Error(w, `{"error":"failed to reorder"}`, http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "reordered"})
}

// Remove deletes one of the current user's saved recipes.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	id := chi.URLParam(r, "id")

	err := h.saved.Delete(r.Context(), userID, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"recipe not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("remove recipe error: %v", err)
		http.Error(w, `{"error":"delete failed"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
