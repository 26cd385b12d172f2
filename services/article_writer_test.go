package services

import (
	"testing"

	"github.com/camden-git/articlesbackend/config"
	"github.com/camden-git/articlesbackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionsOf(entries ...RegionInput) *[]RegionInput {
	return &entries
}

func TestArticleWriterCreate(t *testing.T) {
	w, db := newWriter(t, config.RegionIDPolicyCreate)

	t.Run("bare article gets empty content no author no regions", func(t *testing.T) {
		article, created, err := w.Write(bg, ArticleInput{Title: ptr("Fake Article 1")})
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotZero(t, article.ID)
		assert.Equal(t, "Fake Article 1", article.Title)
		assert.Equal(t, "", article.Content)
		assert.Nil(t, article.Author)
		assert.NotNil(t, article.Regions)
		assert.Empty(t, article.Regions)
	})

	t.Run("author and regions are attached in input order", func(t *testing.T) {
		homer := &models.Author{FirstName: "Homer", LastName: "Simpson"}
		mustCreate(t, db, homer)

		article, created, err := w.Write(bg, ArticleInput{
			Title:   ptr("Fake Article 3"),
			Content: ptr("To be or not to be"),
			Author:  AuthorRef{Set: true, ID: &homer.ID},
			Regions: regionsOf(
				RegionInput{Code: ptr("US"), Name: ptr("United States of America")},
				RegionInput{Code: ptr("AU"), Name: ptr("Austria")},
			),
		})
		require.NoError(t, err)
		assert.True(t, created)
		require.NotNil(t, article.Author)
		assert.Equal(t, homer.ID, article.Author.ID)
		assert.Equal(t, "Homer", article.Author.FirstName)
		require.Len(t, article.Regions, 2)
		assert.Equal(t, "US", article.Regions[0].Code)
		assert.Equal(t, "United States of America", article.Regions[0].Name)
		assert.Equal(t, "AU", article.Regions[1].Code)
	})

	t.Run("title is required on create", func(t *testing.T) {
		before := count(t, db, &models.Article{})
		_, _, err := w.Write(bg, ArticleInput{Content: ptr("x")})
		fe, ok := AsFieldErrors(err)
		require.True(t, ok, "expected FieldErrors, got %v", err)
		assert.Equal(t, FieldErrors{"title": {MsgRequired}}, fe)
		assert.Equal(t, before, count(t, db, &models.Article{}))
	})

	t.Run("unknown id creates a row with that id", func(t *testing.T) {
		article, created, err := w.Write(bg, ArticleInput{ID: ptr(uint(900)), Title: ptr("Upserted")})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, uint(900), article.ID)
	})
}

func TestArticleWriterUnknownAuthorRollsBack(t *testing.T) {
	w, db := newWriter(t, config.RegionIDPolicyCreate)

	existing, _, err := w.Write(bg, ArticleInput{Title: ptr("Original"), Content: ptr("Body")})
	require.NoError(t, err)

	t.Run("create", func(t *testing.T) {
		_, _, err := w.Write(bg, ArticleInput{
			Title:   ptr("Fake Article 3"),
			Author:  AuthorRef{Set: true, ID: ptr(uint(42))},
			Regions: regionsOf(RegionInput{Code: ptr("US"), Name: ptr("United States of America")}),
		})
		fe, ok := AsFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, FieldErrors{"author": {"Author does not exist"}}, fe)
		assert.Equal(t, int64(1), count(t, db, &models.Article{}))
		assert.Equal(t, int64(0), count(t, db, &models.Region{}))
	})

	t.Run("update", func(t *testing.T) {
		_, _, err := w.Write(bg, ArticleInput{
			ID:     &existing.ID,
			Title:  ptr("Changed"),
			Author: AuthorRef{Set: true, ID: ptr(uint(42))},
		})
		_, ok := AsFieldErrors(err)
		require.True(t, ok)

		var stored models.Article
		require.NoError(t, db.First(&stored, existing.ID).Error)
		assert.Equal(t, "Original", stored.Title)
		assert.Equal(t, "Body", stored.Content)
	})
}

func TestArticleWriterUpdate(t *testing.T) {
	w, db := newWriter(t, config.RegionIDPolicyCreate)

	al := &models.Region{Code: "AL", Name: "Albania"}
	uk := &models.Region{Code: "UK", Name: "United Kingdom"}
	mustCreate(t, db, al)
	mustCreate(t, db, uk)
	homer := &models.Author{FirstName: "Homer", LastName: "Simpson"}
	mustCreate(t, db, homer)

	article, _, err := w.Write(bg, ArticleInput{
		Title:   ptr("Fake Article 1"),
		Author:  AuthorRef{Set: true, ID: &homer.ID},
		Regions: regionsOf(RegionInput{ID: &al.ID}, RegionInput{ID: &uk.ID}),
	})
	require.NoError(t, err)
	require.Equal(t, []uint{al.ID, uk.ID}, regionIDs(article.Regions))

	t.Run("omitted regions and author stay as they were", func(t *testing.T) {
		updated, created, err := w.Write(bg, ArticleInput{ID: &article.ID, Title: ptr("Renamed")})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, []uint{al.ID, uk.ID}, regionIDs(updated.Regions))
		require.NotNil(t, updated.Author)
		assert.Equal(t, homer.ID, updated.Author.ID)
	})

	t.Run("existing region keeps stored code and name", func(t *testing.T) {
		updated, _, err := w.Write(bg, ArticleInput{
			ID:      &article.ID,
			Regions: regionsOf(RegionInput{ID: &uk.ID, Code: ptr("XX"), Name: ptr("Elsewhere")}),
		})
		require.NoError(t, err)
		require.Len(t, updated.Regions, 1)
		assert.Equal(t, models.Region{ID: uk.ID, Code: "UK", Name: "United Kingdom"}, updated.Regions[0])

		var stored models.Region
		require.NoError(t, db.First(&stored, uk.ID).Error)
		assert.Equal(t, "UK", stored.Code)
	})

	t.Run("new region first then existing region", func(t *testing.T) {
		updated, _, err := w.Write(bg, ArticleInput{
			ID:      &article.ID,
			Title:   ptr("Fake Article 1 (Modified)"),
			Content: ptr("To be or not to be here"),
			Regions: regionsOf(
				RegionInput{Code: ptr("US"), Name: ptr("United States of America")},
				RegionInput{ID: &al.ID},
			),
		})
		require.NoError(t, err)
		require.Len(t, updated.Regions, 2)
		assert.Equal(t, "US", updated.Regions[0].Code)
		assert.NotEqual(t, al.ID, updated.Regions[0].ID)
		assert.Equal(t, models.Region{ID: al.ID, Code: "AL", Name: "Albania"}, updated.Regions[1])
		assert.Equal(t, int64(1), count(t, db, &models.Article{}))
	})

	t.Run("duplicate entries collapse", func(t *testing.T) {
		updated, _, err := w.Write(bg, ArticleInput{
			ID:      &article.ID,
			Regions: regionsOf(RegionInput{ID: &uk.ID}, RegionInput{ID: &al.ID}, RegionInput{ID: &uk.ID}),
		})
		require.NoError(t, err)
		assert.Equal(t, []uint{uk.ID, al.ID}, regionIDs(updated.Regions))
	})

	t.Run("empty list clears the association but keeps regions", func(t *testing.T) {
		regionsBefore := count(t, db, &models.Region{})
		updated, _, err := w.Write(bg, ArticleInput{
			ID:      &article.ID,
			Author:  AuthorRef{Set: true},
			Regions: regionsOf(),
		})
		require.NoError(t, err)
		assert.Empty(t, updated.Regions)
		assert.Nil(t, updated.Author)
		assert.Equal(t, regionsBefore, count(t, db, &models.Region{}))
		assert.Equal(t, int64(0), count(t, db, &models.ArticleRegion{}))
		assert.Equal(t, int64(1), count(t, db, &models.Author{}))
	})
}

func TestArticleWriterRegionIDPolicy(t *testing.T) {
	t.Run("create policy assigns a fresh id", func(t *testing.T) {
		w, db := newWriter(t, config.RegionIDPolicyCreate)
		article, _, err := w.Write(bg, ArticleInput{
			Title:   ptr("A"),
			Regions: regionsOf(RegionInput{ID: ptr(uint(77)), Code: ptr("FR"), Name: ptr("France")}),
		})
		require.NoError(t, err)
		require.Len(t, article.Regions, 1)
		assert.NotEqual(t, uint(77), article.Regions[0].ID)
		assert.Equal(t, "FR", article.Regions[0].Code)
		assert.Equal(t, int64(1), count(t, db, &models.Region{}))
	})

	t.Run("strict policy rejects the write", func(t *testing.T) {
		w, db := newWriter(t, config.RegionIDPolicyStrict)
		_, _, err := w.Write(bg, ArticleInput{
			Title:   ptr("A"),
			Regions: regionsOf(RegionInput{Code: ptr("DE"), Name: ptr("Germany")}, RegionInput{ID: ptr(uint(77)), Code: ptr("FR"), Name: ptr("France")}),
		})
		fe, ok := AsFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, FieldErrors{"regions.1.id": {MsgRegionMissing}}, fe)
		assert.Equal(t, int64(0), count(t, db, &models.Region{}))
		assert.Equal(t, int64(0), count(t, db, &models.Article{}))
	})
}

func TestArticleWriterCollectsAllFieldErrors(t *testing.T) {
	w, db := newWriter(t, config.RegionIDPolicyCreate)
	mustCreate(t, db, &models.Region{Code: "AL", Name: "Albania"})

	_, _, err := w.Write(bg, ArticleInput{
		Author: AuthorRef{Set: true, ID: ptr(uint(5))},
		Regions: regionsOf(
			RegionInput{Name: ptr("Nameless")},
			RegionInput{Code: ptr("AL"), Name: ptr("Albania again")},
			RegionInput{Code: ptr("NZ"), Name: ptr("New Zealand")},
			RegionInput{Code: ptr("NZ"), Name: ptr("Aotearoa")},
		),
	})
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, FieldErrors{
		"title":          {MsgRequired},
		"author":         {MsgAuthorMissing},
		"regions.0.code": {MsgRequired},
	}, fe)
	assert.Equal(t, int64(1), count(t, db, &models.Region{}))
}

func TestArticleWriterEntriesWithoutIDAlwaysCreate(t *testing.T) {
	w, db := newWriter(t, config.RegionIDPolicyCreate)
	al := &models.Region{Code: "AL", Name: "Albania"}
	mustCreate(t, db, al)

	article, _, err := w.Write(bg, ArticleInput{
		Title: ptr("A"),
		Regions: regionsOf(
			RegionInput{Code: ptr("AL"), Name: ptr("Albania again")},
			RegionInput{Code: ptr("NZ"), Name: ptr("New Zealand")},
			RegionInput{Code: ptr("NZ"), Name: ptr("Aotearoa")},
		),
	})
	require.NoError(t, err)
	require.Len(t, article.Regions, 3)
	assert.NotEqual(t, al.ID, article.Regions[0].ID)
	assert.Equal(t, "Albania again", article.Regions[0].Name)
	assert.Equal(t, []string{"New Zealand", "Aotearoa"}, []string{article.Regions[1].Name, article.Regions[2].Name})
	assert.Equal(t, int64(4), count(t, db, &models.Region{}))

	again, _, err := w.Write(bg, ArticleInput{
		ID:      &article.ID,
		Regions: regionsOf(RegionInput{Code: ptr("NZ"), Name: ptr("New Zealand")}),
	})
	require.NoError(t, err)
	require.Len(t, again.Regions, 1)
	assert.Equal(t, "NZ", again.Regions[0].Code)
	assert.Equal(t, int64(5), count(t, db, &models.Region{}))
}
