package handlers

import (
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/mastery"
	"github.com/andrewpaige1/flipsnap-api/notice"
	"github.com/andrewpaige1/flipsnap-api/review"
	"github.com/andrewpaige1/flipsnap-api/store"
)

// DBHandler serves the JSON API on top of the store and the review and
// mastery engines.
type DBHandler struct {
	Store   *store.Store
	Engine  *review.Engine
	Mastery *mastery.Aggregator
	Notices *notice.Board
}

// Routes registers every endpoint on mux.
func (db *DBHandler) Routes(mux *http.ServeMux) {
	// Profile
	mux.HandleFunc("GET /api/me", db.GetProfile)

	// Set
	mux.HandleFunc("GET /api/sets", db.GetSetsForUser)
	mux.HandleFunc("POST /api/sets", db.CreateFlashCardSet)
	mux.HandleFunc("GET /api/sets/{setID}", db.GetSetByID)
	mux.HandleFunc("PUT /api/sets/{setID}", db.UpdateSetByID)
	mux.HandleFunc("DELETE /api/sets/{setID}", db.DeleteSetByID)
	mux.HandleFunc("PUT /api/sets/{setID}/folder", db.MoveSet)
	mux.HandleFunc("GET /api/sets/{setID}/results", db.GetReviewResults)

	// Flashcard
	mux.HandleFunc("GET /api/sets/{setID}/flashcards", db.GetFlashcardsForSet)
	mux.HandleFunc("POST /api/sets/{setID}/flashcards", db.CreateFlashCard)
	mux.HandleFunc("POST /api/sets/{setID}/flashcards/import", db.ImportFlashcards)
	mux.HandleFunc("GET /api/sets/{setID}/flashcards/{flashcardID}", db.GetFlashcardByID)
	mux.HandleFunc("PUT /api/sets/{setID}/flashcards/{flashcardID}", db.UpdateFlashCardByID)
	mux.HandleFunc("DELETE /api/sets/{setID}/flashcards/{flashcardID}", db.DeleteFlashCardByID)

	// Folder
	mux.HandleFunc("GET /api/folders", db.GetFoldersForUser)
	mux.HandleFunc("POST /api/folders", db.CreateFolder)
	mux.HandleFunc("GET /api/folders/{folderID}", db.GetFolderByID)
	mux.HandleFunc("PUT /api/folders/{folderID}", db.UpdateFolderByID)
	mux.HandleFunc("DELETE /api/folders/{folderID}", db.DeleteFolderByID)

	// Review
	mux.HandleFunc("POST /api/sets/{setID}/play", db.StartReview)
	mux.HandleFunc("GET /api/sessions/{sessionID}", db.GetReview)
	mux.HandleFunc("DELETE /api/sessions/{sessionID}", db.AbandonReview)
	mux.HandleFunc("POST /api/sessions/{sessionID}/flip", db.FlipCard)
	mux.HandleFunc("POST /api/sessions/{sessionID}/release", db.ReleaseCard)
	mux.HandleFunc("POST /api/sessions/{sessionID}/decide", db.DecideCard)

	mux.HandleFunc("GET /api/search", db.Search)
	mux.HandleFunc("GET /api/notices", db.GetNotices)
}
