package handlers

import (
	"net/http"
	"strings"

	"github.com/andrewpaige1/flipsnap-api/utils"
)

// GET /api/search?q=
func (db *DBHandler) Search(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "Search")
	if !ok {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}

	result, err := db.Store.Search(r.Context(), ident.UserID, q)
	if err != nil {
		writeError(w, "Search", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
