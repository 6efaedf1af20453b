package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andrewpaige1/flipsnap-api/auth"
	"github.com/andrewpaige1/flipsnap-api/mastery"
	"github.com/andrewpaige1/flipsnap-api/middleware"
	"github.com/andrewpaige1/flipsnap-api/models"
	"github.com/andrewpaige1/flipsnap-api/notice"
	"github.com/andrewpaige1/flipsnap-api/review"
	"github.com/andrewpaige1/flipsnap-api/store"
	"github.com/andrewpaige1/flipsnap-api/testutil"
	"github.com/andrewpaige1/flipsnap-api/worker"
)

var tokenOptions = auth.TokenOptions{Secret: "test-secret", Issuer: "flipsnap-api", Audience: "flipsnap"}

type server struct {
	handler http.Handler
}

func newServer(t *testing.T) server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := store.New(testutil.NewDB(t))
	notices := notice.NewBoard()

	pool := worker.NewPool(worker.Options{Workers: 1, Queue: 8, RetryAttempts: 1, RetryDelay: time.Millisecond})
	pool.Start()
	t.Cleanup(pool.Close)

	aggregator := mastery.NewAggregator(s, notices)
	changes, unsubscribe := s.Subscribe(64)
	t.Cleanup(unsubscribe)
	go aggregator.Run(ctx, changes)

	h := &DBHandler{
		Store:   s,
		Engine:  review.NewEngine(s, pool, notices, review.Options{}),
		Mastery: aggregator,
		Notices: notices,
	}
	mux := http.NewServeMux()
	h.Routes(mux)

	ensure, err := middleware.EnsureValidToken(tokenOptions)
	require.NoError(t, err)
	return server{handler: ensure(middleware.SyncUserMiddleware(s)(mux))}
}

func token(t *testing.T, subject string) string {
	t.Helper()
	tok, err := auth.CreateToken(tokenOptions, subject, subject)
	require.NoError(t, err)
	return tok
}

func (s server) do(t *testing.T, tok, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type folderResponse struct {
	PublicID string
	Mastery  *float64
	SetCount int
	Band     string
	Sets     []struct {
		PublicID       string
		FlashcardCount int64
	}
}

func TestHandlers_RequireSignIn(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/sets"},
		{http.MethodGet, "/api/folders"},
		{http.MethodPost, "/api/sets/abc/play"},
		{http.MethodGet, "/api/notices"},
		{http.MethodGet, "/api/me"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := srv.do(t, "", tt.method, tt.path, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "please sign in")
		})
	}
}

func TestHandlers_ReviewUpdatesSetAndFolder(t *testing.T) {
	srv := newServer(t)
	tok := token(t, "auth|alice")

	rec := srv.do(t, tok, http.MethodPost, "/api/folders", map[string]any{"name": "Biology"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	folder := decode[models.Folder](t, rec)
	assert.Nil(t, folder.Mastery)

	rec = srv.do(t, tok, http.MethodPost, "/api/sets", map[string]any{
		"title":    "Cells",
		"folderID": folder.PublicID,
		"cards": []map[string]string{
			{"term": "Mitochondria", "definition": "Powerhouse of the cell"},
			{"term": "Ribosome", "definition": "Builds proteins"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	set := decode[models.FlashcardSet](t, rec)
	require.Len(t, set.Flashcards, 2)

	rec = srv.do(t, tok, http.MethodPost, "/api/sets/"+set.PublicID+"/play", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	st := decode[review.State](t, rec)
	require.NotNil(t, st.Card)
	assert.Equal(t, "Mitochondria", st.Card.Text)
	path := "/api/sessions/" + st.SessionID

	rec = srv.do(t, tok, http.MethodPost, path+"/flip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Powerhouse of the cell", decode[review.State](t, rec).Card.Text)

	rec = srv.do(t, tok, http.MethodPost, path+"/decide", map[string]any{"direction": "right", "index": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[review.State](t, rec).KnowCount)

	// A release exactly at the threshold snaps back.
	rec = srv.do(t, tok, http.MethodPost, path+"/release", map[string]any{"dx": 120, "index": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[review.State](t, rec).Index)

	// A repeated decision for the first card is rejected with the current state.
	rec = srv.do(t, tok, http.MethodPost, path+"/decide", map[string]any{"direction": "right", "index": 0})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, decode[review.State](t, rec).KnowCount)

	rec = srv.do(t, tok, http.MethodPost, path+"/release", map[string]any{"dx": -121.5, "index": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	st = decode[review.State](t, rec)
	require.True(t, st.Complete)
	require.NotNil(t, st.Result)
	require.NotNil(t, st.Result.Proficiency)
	assert.Equal(t, 50.0, *st.Result.Proficiency)

	assert.Eventually(t, func() bool {
		rec := srv.do(t, tok, http.MethodGet, "/api/sets/"+set.PublicID+"/results", nil)
		var results []models.ReviewResult
		return rec.Code == http.StatusOK && json.Unmarshal(rec.Body.Bytes(), &results) == nil && len(results) == 1
	}, 2*time.Second, 10*time.Millisecond)

	rec = srv.do(t, tok, http.MethodGet, "/api/sets/"+set.PublicID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50.0, decode[models.FlashcardSet](t, rec).Proficiency)

	rec = srv.do(t, tok, http.MethodGet, "/api/folders/"+folder.PublicID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[folderResponse](t, rec)
	require.NotNil(t, got.Mastery)
	assert.Equal(t, 50.0, *got.Mastery)
	assert.Equal(t, "fair", got.Band)
	require.Len(t, got.Sets, 1)
	assert.Equal(t, int64(2), got.Sets[0].FlashcardCount)

	// Detaching the only set empties the folder.
	rec = srv.do(t, tok, http.MethodPut, "/api/sets/"+set.PublicID+"/folder", map[string]any{"folderID": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, tok, http.MethodGet, "/api/folders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	folders := decode[[]folderResponse](t, rec)
	require.Len(t, folders, 1)
	assert.Nil(t, folders[0].Mastery)
	assert.Equal(t, 0, folders[0].SetCount)
}

func TestHandlers_SessionErrors(t *testing.T) {
	srv := newServer(t)
	alice := token(t, "auth|alice")
	bob := token(t, "auth|bob")

	rec := srv.do(t, alice, http.MethodPost, "/api/sets", map[string]any{
		"title": "Spanish",
		"cards": []map[string]string{{"term": "perro", "definition": "dog"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	set := decode[models.FlashcardSet](t, rec)

	rec = srv.do(t, alice, http.MethodPost, "/api/sets/"+set.PublicID+"/play", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionPath := "/api/sessions/" + decode[review.State](t, rec).SessionID

	tests := []struct {
		name       string
		tok        string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{name: "other user cannot see the set", tok: bob, method: http.MethodGet, path: "/api/sets/" + set.PublicID, wantStatus: http.StatusNotFound},
		{name: "other user cannot play the set", tok: bob, method: http.MethodPost, path: "/api/sets/" + set.PublicID + "/play", wantStatus: http.StatusNotFound},
		{name: "other user cannot see the session", tok: bob, method: http.MethodGet, path: sessionPath, wantStatus: http.StatusNotFound},
		{name: "unknown session", tok: alice, method: http.MethodGet, path: "/api/sessions/nope", wantStatus: http.StatusNotFound},
		{name: "invalid direction", tok: alice, method: http.MethodPost, path: sessionPath + "/decide", body: map[string]any{"direction": "up", "index": 0}, wantStatus: http.StatusBadRequest},
		{name: "missing index", tok: alice, method: http.MethodPost, path: sessionPath + "/release", body: map[string]any{"dx": 300}, wantStatus: http.StatusBadRequest},
		{name: "missing title", tok: alice, method: http.MethodPost, path: "/api/sets", body: map[string]any{"description": "x"}, wantStatus: http.StatusBadRequest},
		{name: "unknown folder", tok: alice, method: http.MethodPost, path: "/api/sets", body: map[string]any{"title": "x", "folderID": "nope"}, wantStatus: http.StatusNotFound},
		{name: "abandon", tok: alice, method: http.MethodDelete, path: sessionPath, wantStatus: http.StatusNoContent},
		{name: "abandoned session is gone", tok: alice, method: http.MethodGet, path: sessionPath, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.tok, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandlers_FlashcardCRUD(t *testing.T) {
	srv := newServer(t)
	tok := token(t, "auth|alice")

	rec := srv.do(t, tok, http.MethodPost, "/api/sets", map[string]any{"title": "Capitals"})
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/api/sets/" + decode[models.FlashcardSet](t, rec).PublicID + "/flashcards"

	rec = srv.do(t, tok, http.MethodPost, base, map[string]any{"term": "France", "definition": "Paris"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	card := decode[models.Flashcard](t, rec)

	rec = srv.do(t, tok, http.MethodPut, base+"/"+card.PublicID, map[string]any{"definition": "Paris, on the Seine"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "France", decode[models.Flashcard](t, rec).Term)

	rec = srv.do(t, tok, http.MethodGet, base+"/"+card.PublicID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Paris, on the Seine", decode[models.Flashcard](t, rec).Definition)

	rec = srv.do(t, tok, http.MethodDelete, base+"/"+card.PublicID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, tok, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Flashcard](t, rec))
}

func TestHandlers_ImportFlashcards(t *testing.T) {
	srv := newServer(t)
	tok := token(t, "auth|alice")

	rec := srv.do(t, tok, http.MethodPost, "/api/sets", map[string]any{"title": "Elements"})
	require.Equal(t, http.StatusCreated, rec.Code)
	setID := decode[models.FlashcardSet](t, rec).PublicID

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	rows := [][]string{{"Term", "Definition"}, {"H", "Hydrogen"}, {"", "orphan"}, {"He", "Helium"}}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, book.SetCellValue(sheet, cell, v))
		}
	}
	xlsx, err := book.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "elements.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsx.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/sets/"+setID+"/flashcards/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cards := decode[[]models.Flashcard](t, rec)
	require.Len(t, cards, 2)
	assert.Equal(t, "H", cards[0].Term)
	assert.Equal(t, "Helium", cards[1].Definition)
}

func TestHandlers_SearchProfileAndNotices(t *testing.T) {
	srv := newServer(t)
	tok := token(t, "auth|alice")

	require.Equal(t, http.StatusCreated, srv.do(t, tok, http.MethodPost, "/api/folders", map[string]any{"name": "Chemistry"}).Code)
	require.Equal(t, http.StatusCreated, srv.do(t, tok, http.MethodPost, "/api/sets", map[string]any{"title": "Organic chemistry"}).Code)
	require.Equal(t, http.StatusCreated, srv.do(t, tok, http.MethodPost, "/api/sets", map[string]any{"title": "French"}).Code)

	rec := srv.do(t, tok, http.MethodGet, "/api/search?q=CHEM", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[store.SearchResult](t, rec)
	assert.Len(t, result.Folders, 1)
	assert.Len(t, result.Sets, 1)

	assert.Equal(t, http.StatusBadRequest, srv.do(t, tok, http.MethodGet, "/api/search?q=", nil).Code)

	rec = srv.do(t, tok, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[store.Profile](t, rec)
	assert.Equal(t, "auth|alice", profile.Nickname)
	assert.Equal(t, int64(2), profile.SetCount)
	assert.Equal(t, int64(1), profile.FolderCount)
	assert.Nil(t, profile.LastReviewed)

	rec = srv.do(t, tok, http.MethodGet, "/api/notices", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
