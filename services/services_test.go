package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/camden-git/articlesbackend/config"
	"github.com/camden-git/articlesbackend/database"
	"github.com/camden-git/articlesbackend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), database.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newWriter(t *testing.T, policy config.RegionIDPolicy) (*ArticleWriter, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewArticleWriter(db, policy), db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	require.NoError(t, db.Create(value).Error)
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func regionIDs(regions []models.Region) []uint {
	ids := make([]uint, len(regions))
	for i, r := range regions {
		ids[i] = r.ID
	}
	return ids
}

var bg = context.Background()
