package handlers

import (
	"log"
	"net/http"

	"github.com/andrewpaige1/flipsnap-api/mastery"
	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/store"
	"github.com/andrewpaige1/flipsnap-api/utils"
)

// Mastery is never read from a request body: it only changes through
// recomputation.
type folderRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// GET /api/folders
func (db *DBHandler) GetFoldersForUser(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetFoldersForUser")
	if !ok {
		return
	}

	folders, err := db.Mastery.Folders(r.Context(), ident)
	if err != nil {
		writeError(w, "GetFoldersForUser", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, folders)
}

// POST /api/folders
func (db *DBHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "CreateFolder")
	if !ok {
		return
	}

	var req folderRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("CreateFolder: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	folder := models.Folder{Name: req.Name, Description: req.Description, UserID: ident.UserID}
	if err := db.Store.CreateFolder(r.Context(), &folder); err != nil {
		writeError(w, "CreateFolder", err)
		return
	}

	log.Printf("CreateFolder: Successfully created folder with publicID=%s for userID=%d", folder.PublicID, ident.UserID)
	utils.WriteJSON(w, http.StatusCreated, folder)
}

// GET /api/folders/{folderID}
func (db *DBHandler) GetFolderByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "GetFolderByID")
	if !ok {
		return
	}

	folder, err := db.Store.GetFolder(r.Context(), ident.UserID, r.PathValue("folderID"))
	if err != nil {
		writeError(w, "GetFolderByID", err)
		return
	}
	fm, err := db.Mastery.Folder(r.Context(), ident, folder)
	if err != nil {
		writeError(w, "GetFolderByID", err)
		return
	}
	sets, err := db.Store.ListSetSummariesByFolder(r.Context(), folder.ID)
	if err != nil {
		writeError(w, "GetFolderByID", err)
		return
	}

	type FolderResponse struct {
		mastery.FolderMastery
		Sets []store.SetSummary
	}
	utils.WriteJSON(w, http.StatusOK, FolderResponse{FolderMastery: fm, Sets: sets})
}

// PUT /api/folders/{folderID}
func (db *DBHandler) UpdateFolderByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "UpdateFolderByID")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
		Description *string `json:"description" validate:"omitnil,max=2000"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Printf("UpdateFolderByID: Invalid request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	folder, err := db.Store.UpdateFolder(r.Context(), ident.UserID, r.PathValue("folderID"), store.FolderUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, "UpdateFolderByID", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, folder)
}

// DELETE /api/folders/{folderID}
func (db *DBHandler) DeleteFolderByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "DeleteFolderByID")
	if !ok {
		return
	}

	folderID := r.PathValue("folderID")
	if err := db.Store.DeleteFolder(r.Context(), ident.UserID, folderID); err != nil {
		writeError(w, "DeleteFolderByID", err)
		return
	}
	log.Printf("DeleteFolderByID: Deleted folder %s for userID=%d", folderID, ident.UserID)
	w.WriteHeader(http.StatusNoContent)
}
