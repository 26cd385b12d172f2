package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/camden-git/articlesbackend/models"
	"github.com/camden-git/articlesbackend/repository"
	"gorm.io/gorm"
)

// Seed inserts the demo authors, regions and articles. It does nothing when authors already exist.
func Seed(ctx context.Context, db *gorm.DB, writer *ArticleWriter) error {
	authors := repository.NewGormAuthorRepository(db.WithContext(ctx))
	existing, err := authors.ListAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.InfoContext(ctx, "database already seeded, skipping", "authors", len(existing))
		return nil
	}

	homer := &models.Author{FirstName: "Homer", LastName: "Simpson"}
	marge := &models.Author{FirstName: "Marge", LastName: "Simpson"}
	for _, a := range []*models.Author{homer, marge} {
		if err := authors.Create(a); err != nil {
			return err
		}
	}

	articles := []ArticleInput{
		seedArticle(nil, seedRegion("AL", "Albania"), seedRegion("UK", "United Kingdom")),
		seedArticle(&marge.ID),
		seedArticle(nil),
		seedArticle(&homer.ID),
		seedArticle(nil, seedRegion("AU", "Austria"), seedRegion("US", "United States of America")),
	}
	for i, in := range articles {
		if _, _, err := writer.Write(ctx, in); err != nil {
			return fmt.Errorf("failed to seed article %d: %w", i+1, err)
		}
	}

	slog.InfoContext(ctx, "database seeded", "authors", 2, "articles", len(articles))
	return nil
}

func seedArticle(authorID *uint, regions ...RegionInput) ArticleInput {
	title, content := "Fake Article", "Fake Content"
	in := ArticleInput{
		Title:   &title,
		Content: &content,
		Author:  AuthorRef{Set: true, ID: authorID},
	}
	if len(regions) > 0 {
		in.Regions = &regions
	}
	return in
}

func seedRegion(code, name string) RegionInput {
	return RegionInput{Code: &code, Name: &name}
}
