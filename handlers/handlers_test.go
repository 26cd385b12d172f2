package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/camden-git/articlesbackend/config"
	"github.com/camden-git/articlesbackend/database"
	"github.com/camden-git/articlesbackend/models"
	"github.com/camden-git/articlesbackend/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	db      *gorm.DB
}

func newTestServer(t *testing.T, policy config.RegionIDPolicy) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), database.Options{Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	cfg := config.Config{
		AllowedOrigins: []string{"http://localhost:5173"},
		RequestTimeout: 10 * time.Second,
		RegionIDPolicy: policy,
	}
	return &testServer{t: t, handler: NewRouter(cfg, db, logger), db: db}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(method, path string, payload interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(s.t, err)
	return s.do(method, path, string(body))
}

func (s *testServer) author(first, last string) *models.Author {
	s.t.Helper()
	a := &models.Author{FirstName: first, LastName: last}
	require.NoError(s.t, s.db.Create(a).Error)
	return a
}

func (s *testServer) region(code, name string) *models.Region {
	s.t.Helper()
	r := &models.Region{Code: code, Name: name}
	require.NoError(s.t, s.db.Create(r).Error)
	return r
}

func (s *testServer) article(title, content string, author *models.Author, regions ...*models.Region) *models.Article {
	s.t.Helper()
	a := &models.Article{Title: title, Content: content}
	if author != nil {
		a.AuthorID = &author.ID
	}
	repo := repository.NewGormArticleRepository(s.db)
	require.NoError(s.t, repo.Create(a))
	for i, r := range regions {
		require.NoError(s.t, repo.AttachRegion(a.ID, r.ID, i))
	}
	return a
}

func (s *testServer) count(model interface{}) int64 {
	s.t.Helper()
	var n int64
	require.NoError(s.t, s.db.Model(model).Count(&n).Error)
	return n
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), "body: %s", rec.Body.String())
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
