package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/review"
	"github.com/andrewpaige1/flipsnap-api/utils"
)

// POST /api/sets/{setID}/play
func (db *DBHandler) StartReview(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "StartReview")
	if !ok {
		return
	}

	st, err := db.Engine.Start(r.Context(), ident, r.PathValue("setID"))
	if err != nil {
		writeError(w, "StartReview", err)
		return
	}
	log.Printf("StartReview: Started session %s on set %s for userID=%d", st.SessionID, st.SetID, ident.UserID)
	utils.WriteJSON(w, http.StatusCreated, st)
}

// GET /api/sessions/{sessionID}
func (db *DBHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetReview")
	if !ok {
		return
	}

	st, err := db.Engine.Get(ident, r.PathValue("sessionID"))
	if err != nil {
		writeError(w, "GetReview", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}

// DELETE /api/sessions/{sessionID}
func (db *DBHandler) AbandonReview(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "AbandonReview")
	if !ok {
		return
	}

	if err := db.Engine.Abandon(ident, r.PathValue("sessionID")); err != nil {
		writeError(w, "AbandonReview", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/sessions/{sessionID}/flip
func (db *DBHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "FlipCard")
	if !ok {
		return
	}

	st, err := db.Engine.Flip(ident, r.PathValue("sessionID"))
	writeState(w, "FlipCard", st, err)
}

// POST /api/sessions/{sessionID}/release
func (db *DBHandler) ReleaseCard(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "ReleaseCard")
	if !ok {
		return
	}

	var req struct {
		DX    *float64 `json:"dx" validate:"required"`
		Index *int     `json:"index" validate:"required,min=0"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("ReleaseCard: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := db.Engine.Release(ident, r.PathValue("sessionID"), *req.Index, *req.DX)
	writeState(w, "ReleaseCard", st, err)
}

// POST /api/sessions/{sessionID}/decide
func (db *DBHandler) DecideCard(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "DecideCard")
	if !ok {
		return
	}

	var req struct {
		Direction string `json:"direction" validate:"required,oneof=left right"`
		Index     *int   `json:"index" validate:"required,min=0"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("DecideCard: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	direction, err := review.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, "DecideCard", err)
		return
	}

	st, err := db.Engine.Decide(ident, r.PathValue("sessionID"), *req.Index, direction)
	writeState(w, "DecideCard", st, err)
}

// writeState answers with the session state. A decision that arrives for a
// card no longer on screen, or after completion, is a conflict that still
// carries the current state.
func writeState(w http.ResponseWriter, name string, st review.State, err error) {
	switch {
	case err == nil:
		utils.WriteJSON(w, http.StatusOK, st)
	case errors.Is(err, review.ErrStaleDecision), errors.Is(err, review.ErrSessionComplete):
		log.Printf("%s: Rejected decision on session %s: %v", name, st.SessionID, err)
		utils.WriteJSON(w, http.StatusConflict, st)
	default:
		writeError(w, name, err)
	}
}
