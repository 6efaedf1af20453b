package handlers

import (
	"log"
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/store"
	"github.com/andrewpaige1/flipsnap-api/utils"
)

// GET /api/sets/{setID}/flashcards
func (db *DBHandler) GetFlashcardsForSet(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetFlashcardsForSet")
	if !ok {
		return
	}
	set, ok := db.ownedSet(w, r, ident, "GetFlashcardsForSet")
	if !ok {
		return
	}

	cards, err := db.Store.ListFlashcards(r.Context(), set.ID)
	if err != nil {
		writeError(w, "GetFlashcardsForSet", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cards)
}

// POST /api/sets/{setID}/flashcards
func (db *DBHandler) CreateFlashCard(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "CreateFlashCard")
	if !ok {
		return
	}
	set, ok := db.ownedSet(w, r, ident, "CreateFlashCard")
	if !ok {
		return
	}

	var req cardRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("CreateFlashCard: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cards, err := db.Store.AddFlashcards(r.Context(), set, []models.Flashcard{req.model()})
	if err != nil {
		writeError(w, "CreateFlashCard", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, cards[0])
}

// GET /api/sets/{setID}/flashcards/{flashcardID}
func (db *DBHandler) GetFlashcardByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetFlashcardByID")
	if !ok {
		return
	}
	set, ok := db.ownedSet(w, r, ident, "GetFlashcardByID")
	if !ok {
		return
	}

	card, err := db.Store.GetFlashcard(r.Context(), set.ID, r.PathValue("flashcardID"))
	if err != nil {
		writeError(w, "GetFlashcardByID", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, card)
}

// PUT /api/sets/{setID}/flashcards/{flashcardID}
func (db *DBHandler) UpdateFlashCardByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "UpdateFlashCardByID")
	if !ok {
		return
	}
	set, ok := db.ownedSet(w, r, ident, "UpdateFlashCardByID")
	if !ok {
		return
	}

	var req struct {
		Term       *string `json:"term" validate:"omitnil,min=1,max=500"`
		Definition *string `json:"definition" validate:"omitnil,min=1,max=2000"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("UpdateFlashCardByID: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := db.Store.UpdateFlashcard(r.Context(), set.ID, r.PathValue("flashcardID"), store.FlashcardUpdate{
		Term:       req.Term,
		Definition: req.Definition,
	})
	if err != nil {
		writeError(w, "UpdateFlashCardByID", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, card)
}

// DELETE /api/sets/{setID}/flashcards/{flashcardID}
func (db *DBHandler) DeleteFlashCardByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "DeleteFlashCardByID")
	if !ok {
		return
	}
	set, ok := db.ownedSet(w, r, ident, "DeleteFlashCardByID")
	if !ok {
		return
	}

	if err := db.Store.DeleteFlashcard(r.Context(), set.ID, r.PathValue("flashcardID")); err != nil {
		writeError(w, "DeleteFlashCardByID", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
