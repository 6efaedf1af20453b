package handlers

import (
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/utils"
)

// GET /api/notices
func (db *DBHandler) GetNotices(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetNotices")
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, db.Notices.Drain(ident.UserID))
}
