package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cardfolio/cardfolio-api/middleware"
	"github.com/cardfolio/cardfolio-api/models"
)

// fakeFileStore records every purge and can be told to fail.
type fakeFileStore struct {
	deleted [][]string
	err     error
}

func (f *fakeFileStore) DeleteFiles(ctx context.Context, keys []string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, append([]string(nil), keys...))
	return nil
}

func (f *fakeFileStore) allDeleted() []string {
	var keys []string
	for _, batch := range f.deleted {
		keys = append(keys, batch...)
	}
	return keys
}

func setupTestHandler(t *testing.T) (*DBHandler, *fakeFileStore, func()) {
	dbPath := "./test_handlers_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.Set{},
		&models.Card{},
	)
	require.NoError(t, err)

	files := &fakeFileStore{}
	h := &DBHandler{DB: db, Files: files, Sessions: NewStudySessions()}

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return h, files, cleanup
}

func createTestUser(t *testing.T, db *gorm.DB, nickname string) *models.User {
	user := &models.User{
		Auth0ID:  "auth0|" + nickname,
		Nickname: nickname,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestSet(t *testing.T, db *gorm.DB, user *models.User, name string, cards []models.Card) *models.Set {
	set := &models.Set{
		ID:     "set-" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		UserID: user.ID,
		Name:   name,
	}
	require.NoError(t, db.Create(set).Error)

	for i := range cards {
		cards[i].SetID = set.ID
		require.NoError(t, db.Create(&cards[i]).Error)
	}
	require.NoError(t, db.Preload("Cards").First(set, "id = ?", set.ID).Error)
	return set
}

func authedRequest(t *testing.T, user *models.User, method, target string, body any) *http.Request {
	var req *http.Request
	if body != nil {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		req = httptest.NewRequest(method, target, &buf)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func countRows[T any](t *testing.T, db *gorm.DB) int64 {
	var model T
	var n int64
	require.NoError(t, db.Model(&model).Count(&n).Error)
	return n
}

func cardPayload(id int, term, definition string) map[string]any {
	return map[string]any{"id": id, "term": term, "definition": definition}
}

func seededCards(n int) []models.Card {
	cards := make([]models.Card, 0, n)
	for i := 1; i <= n; i++ {
		cards = append(cards, models.Card{
			Term:       fmt.Sprintf("term %d", i),
			Definition: fmt.Sprintf("definition %d", i),
		})
	}
	return cards
}
