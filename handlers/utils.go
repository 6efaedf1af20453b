package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/auth"
	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/review"
	"github.com/andrewpaige1/flipsnap-api/store"
)

// identity returns the signed-in caller or answers 401.
func identity(w http.ResponseWriter, r *http.Request, name string) (auth.Identity, bool) {
	ident, ok := auth.FromContext(r.Context())
	if !ok || !ident.Valid() {
		log.Printf("%s: Unauthorized request", name)
		http.Error(w, "please sign in", http.StatusUnauthorized)
		return auth.Identity{}, false
	}
	return ident, true
}

// writeError maps a domain error to its status code.
func writeError(w http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		http.Error(w, "please sign in", http.StatusUnauthorized)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, review.ErrSessionNotFound):
		http.Error(w, "Review session not found", http.StatusNotFound)
	case errors.Is(err, review.ErrInvalidDirection):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("%s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ownedSet loads the {setID} path set for the caller.
func (db *DBHandler) ownedSet(w http.ResponseWriter, r *http.Request, ident auth.Identity, name string) (models.FlashcardSet, bool) {
	setID := r.PathValue("setID")
	set, err := db.Store.GetSet(r.Context(), ident.UserID, setID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("%s: Set not found for public_id=%s", name, setID)
		}
		writeError(w, name, err)
		return models.FlashcardSet{}, false
	}
	return set, true
}

// folderRef resolves an optional folder public id to its row id.
func (db *DBHandler) folderRef(r *http.Request, ident auth.Identity, publicID *string) (*uint, error) {
	if publicID == nil || *publicID == "" {
		return nil, nil
	}
	folder, err := db.Store.GetFolder(r.Context(), ident.UserID, *publicID)
	if err != nil {
		return nil, err
	}
	return &folder.ID, nil
}
