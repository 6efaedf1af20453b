package handlers

import (
	"log"
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/store"
	"github.com/andrewpaige1/flipsnap-api/utils"
)

type cardRequest struct {
	Term       string `json:"term" validate:"required,max=500"`
	Definition string `json:"definition" validate:"required,max=2000"`
}

func (c cardRequest) model() models.Flashcard {
	return models.Flashcard{Term: c.Term, Definition: c.Definition}
}

// GET /api/sets
func (db *DBHandler) GetSetsForUser(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetSetsForUser")
	if !ok {
		return
	}

	sets, err := db.Store.ListSets(r.Context(), ident.UserID)
	if err != nil {
		writeError(w, "GetSetsForUser", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sets)
}

// POST /api/sets
func (db *DBHandler) CreateFlashCardSet(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "CreateFlashCardSet")
	if !ok {
		return
	}

	var req struct {
		Title       string        `json:"title" validate:"required,max=200"`
		Description string        `json:"description" validate:"max=2000"`
		FolderID    *string       `json:"folderID"`
		Cards       []cardRequest `json:"cards" validate:"dive"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("CreateFlashCardSet: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	folderID, err := db.folderRef(r, ident, req.FolderID)
	if err != nil {
		writeError(w, "CreateFlashCardSet", err)
		return
	}

	cards := make([]models.Flashcard, len(req.Cards))
	for i, c := range req.Cards {
		cards[i] = c.model()
	}
	set := models.FlashcardSet{
		Title:       req.Title,
		Description: req.Description,
		FolderID:    folderID,
		UserID:      ident.UserID,
	}
	if err := db.Store.CreateSet(r.Context(), &set, cards); err != nil {
		writeError(w, "CreateFlashCardSet", err)
		return
	}

	log.Printf("CreateFlashCardSet: Successfully created set with publicID=%s for userID=%d", set.PublicID, ident.UserID)
	utils.WriteJSON(w, http.StatusCreated, set)
}

// GET /api/sets/{setID}
func (db *DBHandler) GetSetByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetSetByID")
	if !ok {
		return
	}
	set, ok := db.ownedSet(w, r, ident, "GetSetByID")
	if !ok {
		return
	}

	cards, err := db.Store.ListFlashcards(r.Context(), set.ID)
	if err != nil {
		writeError(w, "GetSetByID", err)
		return
	}
	set.Flashcards = cards
	utils.WriteJSON(w, http.StatusOK, set)
}

// PUT /api/sets/{setID}
func (db *DBHandler) UpdateSetByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "UpdateSetByID")
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
		Description *string `json:"description" validate:"omitnil,max=2000"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("UpdateSetByID: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	set, err := db.Store.UpdateSet(r.Context(), ident.UserID, r.PathValue("setID"), store.SetUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, "UpdateSetByID", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, set)
}

// PUT /api/sets/{setID}/folder
func (db *DBHandler) MoveSet(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "MoveSet")
	if !ok {
		return
	}

	var req struct {
		FolderID *string `json:"folderID"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("MoveSet: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	folderID, err := db.folderRef(r, ident, req.FolderID)
	if err != nil {
		writeError(w, "MoveSet", err)
		return
	}
	set, err := db.Store.MoveSet(r.Context(), ident.UserID, r.PathValue("setID"), folderID)
	if err != nil {
		writeError(w, "MoveSet", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, set)
}

// DELETE /api/sets/{setID}
func (db *DBHandler) DeleteSetByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "DeleteSetByID")
	if !ok {
		return
	}

	setID := r.PathValue("setID")
	if err := db.Store.DeleteSet(r.Context(), ident.UserID, setID); err != nil {
		writeError(w, "DeleteSetByID", err)
		return
	}
	log.Printf("DeleteSetByID: Deleted set %s for userID=%d", setID, ident.UserID)
	w.WriteHeader(http.StatusNoContent)
}
