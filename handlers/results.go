package handlers

import (
	"net/http"
	"strconv"

	"github.com/andrewpaige1/flipsnap-api/utils"
)

// GET /api/sets/{setID}/results
func (db *DBHandler) GetReviewResults(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetReviewResults")
	if !ok {
		return
	}
	set, ok := db.ownedSet(w, r, ident, "GetReviewResults")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := db.Store.ListReviewResults(r.Context(), set.ID, limit)
	if err != nil {
		writeError(w, "GetReviewResults", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, results)
}
