package handlers

import (
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/utils"
)

// GET /api/me
func (db *DBHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetProfile")
	if !ok {
		return
	}

	profile, err := db.Store.GetProfile(r.Context(), ident.UserID)
	if err != nil {
		writeError(w, "GetProfile", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}
