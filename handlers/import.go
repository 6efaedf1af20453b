package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/utils"
)

const maxImportSize = 10 << 20

// POST /api/sets/{setID}/flashcards/import
func (db *DBHandler) ImportFlashcards(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r, "ImportFlashcards")
	if !ok {
		return
	}
	set, ok := db.ownedSet(w, r, ident, "ImportFlashcards")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		log.Printf("ImportFlashcards: Invalid multipart form: %v", err)
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	cards, err := readFlashcardSheet(file)
	if err != nil {
		log.Printf("ImportFlashcards: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := db.Store.AddFlashcards(r.Context(), set, cards)
	if err != nil {
		writeError(w, "ImportFlashcards", err)
		return
	}
	log.Printf("ImportFlashcards: Imported %d flashcards into set %s", len(created), set.PublicID)
	utils.WriteJSON(w, http.StatusCreated, created)
}

// readFlashcardSheet reads term/definition pairs from columns A and B of the
// first sheet. The first row is a header. Rows missing either cell are
// skipped.
func readFlashcardSheet(r io.Reader) ([]models.Flashcard, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook > %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows > %w", err)
	}

	var cards []models.Flashcard
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		term := strings.TrimSpace(row[0])
		definition := strings.TrimSpace(row[1])
		if term == "" || definition == "" {
			continue
		}
		cards = append(cards, models.Flashcard{Term: term, Definition: definition})
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("no flashcards found in sheet %q", sheets[0])
	}
	return cards, nil
}
