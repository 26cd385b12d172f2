package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/camden-git/articlesbackend/config"
	"github.com/camden-git/articlesbackend/models"
	"github.com/camden-git/articlesbackend/repository"
	"gorm.io/gorm"
)

// AuthorRef is the author field of an article write.
// Set is false when the field was absent; ID is nil when it was null.
type AuthorRef struct {
	Set bool
	ID  *uint
}

// RegionInput is one entry of an article's regions list.
type RegionInput struct {
	ID   *uint
	Code *string
	Name *string
}

// ArticleInput is a deserialized article payload. Nil pointers mean the field was absent.
// Regions nil leaves the association untouched; an empty slice clears it.
type ArticleInput struct {
	ID      *uint
	Title   *string
	Content *string
	Author  AuthorRef
	Regions *[]RegionInput
}

// ArticleWriter persists an article together with its author reference and region set in one transaction.
type ArticleWriter struct {
	db     *gorm.DB
	policy config.RegionIDPolicy
}

func NewArticleWriter(db *gorm.DB, policy config.RegionIDPolicy) *ArticleWriter {
	if policy == "" {
		policy = config.RegionIDPolicyCreate
	}
	return &ArticleWriter{db: db, policy: policy}
}

// Write upserts the article keyed on in.ID and returns the stored aggregate.
// created reports whether a new row was inserted. Any FieldErrors abort the whole write.
func (w *ArticleWriter) Write(ctx context.Context, in ArticleInput) (article *models.Article, created bool, err error) {
	err = w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		articles := repository.NewGormArticleRepository(tx)
		authors := repository.NewGormAuthorRepository(tx)
		regions := repository.NewGormRegionRepository(tx)

		fe := FieldErrors{}

		target, isNew, err := w.resolveArticle(articles, in.ID)
		if err != nil {
			return err
		}
		created = isNew
		applyScalars(target, in, isNew, fe)

		if err := resolveAuthor(authors, target, in.Author, fe); err != nil {
			return err
		}

		var plan *regionResolution
		if in.Regions != nil {
			plan, err = w.resolveRegions(regions, *in.Regions, fe)
			if err != nil {
				return err
			}
		}

		// every field problem is reported together before anything is written
		if err := fe.Err(); err != nil {
			return err
		}

		if isNew {
			if err := articles.Create(target); err != nil {
				return err
			}
		} else if err := articles.UpdateScalars(target); err != nil {
			return err
		}

		if plan != nil {
			regionIDs, err := plan.commit(regions)
			if err != nil {
				return err
			}
			if err := syncRegions(articles, target.ID, regionIDs); err != nil {
				return err
			}
		}

		article, err = articles.GetByID(target.ID)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	slog.DebugContext(ctx, "article written", "article_id", article.ID, "created", created, "regions", len(article.Regions))
	return article, created, nil
}

// resolveArticle looks the article up by id. A missing or unknown id yields a fresh, unsaved article.
func (w *ArticleWriter) resolveArticle(articles repository.ArticleRepository, id *uint) (*models.Article, bool, error) {
	if id == nil {
		return &models.Article{}, true, nil
	}
	existing, err := articles.GetByID(*id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Article{ID: *id}, true, nil
		}
		return nil, false, err
	}
	return existing, false, nil
}

func applyScalars(article *models.Article, in ArticleInput, isNew bool, fe FieldErrors) {
	if in.Title != nil {
		article.Title = *in.Title
	} else if isNew {
		fe.Add("title", MsgRequired)
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
}

func resolveAuthor(authors repository.AuthorRepository, article *models.Article, ref AuthorRef, fe FieldErrors) error {
	if !ref.Set {
		return nil
	}
	if ref.ID == nil {
		article.AuthorID = nil
		article.Author = nil
		return nil
	}
	author, err := authors.GetByID(*ref.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fe.Add("author", MsgAuthorMissing)
			return nil
		}
		return err
	}
	article.AuthorID = &author.ID
	article.Author = author
	return nil
}

// regionResolution holds the resolved region list; entries with a nil region are created on commit.
type regionResolution struct {
	slots []regionSlot
}

type regionSlot struct {
	region *models.Region
	code   string
	name   string
}

// resolveRegions maps each entry to an existing region or a pending creation without writing anything.
// An entry without a matching id always becomes a new region, even when its code is already in use.
func (w *ArticleWriter) resolveRegions(regions repository.RegionRepository, entries []RegionInput, fe FieldErrors) (*regionResolution, error) {
	res := &regionResolution{slots: make([]regionSlot, 0, len(entries))}

	for i, entry := range entries {
		prefix := fmt.Sprintf("regions.%d", i)

		if entry.ID != nil {
			existing, err := regions.GetByID(*entry.ID)
			switch {
			case err == nil:
				// stored code and name win over whatever the entry carries
				res.slots = append(res.slots, regionSlot{region: existing})
				continue
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return nil, err
			case w.policy == config.RegionIDPolicyStrict:
				fe.Add(prefix+".id", MsgRegionMissing)
				continue
			}
		}

		if err := ValidateRegionFields(entry.Code, entry.Name); err != nil {
			verrs, ok := AsFieldErrors(err)
			if !ok {
				return nil, err
			}
			fe.Merge(verrs.Prefixed(prefix))
			continue
		}
		res.slots = append(res.slots, regionSlot{code: *entry.Code, name: *entry.Name})
	}
	return res, nil
}

// commit creates the pending regions and returns every region id in entry order.
func (res *regionResolution) commit(regions repository.RegionRepository) ([]uint, error) {
	ids := make([]uint, 0, len(res.slots))
	for _, slot := range res.slots {
		if slot.region == nil {
			region := &models.Region{Code: slot.code, Name: slot.name}
			if err := regions.Create(region); err != nil {
				return nil, err
			}
			slot.region = region
		}
		ids = append(ids, slot.region.ID)
	}
	return ids, nil
}
