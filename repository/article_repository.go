package repository

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/camden-git/articlesbackend/database"
	"github.com/camden-git/articlesbackend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormArticleRepository struct {
	db *gorm.DB
}

func NewGormArticleRepository(db *gorm.DB) ArticleRepository {
	return &GormArticleRepository{db: db}
}

func (r *GormArticleRepository) Create(article *models.Article) error {
	// associations are written explicitly by the caller
	if err := r.db.Omit(clause.Associations).Create(article).Error; err != nil {
		return fmt.Errorf("failed to create article %q: %w", article.Title, err)
	}
	return nil
}

func (r *GormArticleRepository) UpdateScalars(article *models.Article) error {
	result := r.db.Model(&models.Article{}).Where("id = ?", article.ID).Updates(map[string]interface{}{
		"title":     article.Title,
		"content":   article.Content,
		"author_id": article.AuthorID,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update article ID %d: %w", article.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Article{}).Where("id = ?", article.ID).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *GormArticleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").First(&article, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get article by ID %d: %w", id, err)
	}

	articles := []models.Article{article}
	if err := r.loadRegions(articles); err != nil {
		return nil, err
	}
	return &articles[0], nil
}

func (r *GormArticleRepository) List(filter ArticleFilter) ([]models.Article, error) {
	q := r.db.Preload("Author").Order("id ASC")
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.RegionCode != "" {
		sub, args, err := database.Builder.Select("ar.article_id").
			From("article_regions ar").
			Join("regions r ON r.id = ar.region_id").
			Where(sq.Eq{"r.code": filter.RegionCode}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build region filter: %w", err)
		}
		q = q.Where("id IN ("+sub+")", args...)
	}

	var articles []models.Article
	if err := q.Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	if err := r.loadRegions(articles); err != nil {
		return nil, err
	}
	return articles, nil
}

type articleRegionRow struct {
	ArticleID uint
	ID        uint
	Code      string
	Name      string
}

// loadRegions fills Regions on each article in association order with a single query.
func (r *GormArticleRepository) loadRegions(articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	ids := make([]uint, len(articles))
	byID := make(map[uint]*models.Article, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
		articles[i].Regions = []models.Region{}
		byID[articles[i].ID] = &articles[i]
	}

	sqlStr, args, err := database.Builder.Select("ar.article_id", "r.id", "r.code", "r.name").
		From("article_regions ar").
		Join("regions r ON r.id = ar.region_id").
		Where(sq.Eq{"ar.article_id": ids}).
		OrderBy("ar.article_id", "ar.position").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for article regions: %w", err)
	}

	var rows []articleRegionRow
	if err := r.db.Raw(sqlStr, args...).Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to load article regions: %w", err)
	}
	for _, row := range rows {
		a := byID[row.ArticleID]
		a.Regions = append(a.Regions, models.Region{ID: row.ID, Code: row.Code, Name: row.Name})
	}
	return nil
}

func (r *GormArticleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleRegion{}).Error; err != nil {
			return fmt.Errorf("failed to detach regions from article ID %d: %w", id, err)
		}
		result := tx.Delete(&models.Article{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete article ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormArticleRepository) RegionLinks(articleID uint) ([]models.ArticleRegion, error) {
	sqlStr, args, err := database.Builder.Select("article_id", "region_id", "position").
		From("article_regions").
		Where(sq.Eq{"article_id": articleID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for RegionLinks: %w", err)
	}
	var links []models.ArticleRegion
	if err := r.db.Raw(sqlStr, args...).Scan(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to read region links for article ID %d: %w", articleID, err)
	}
	return links, nil
}

func (r *GormArticleRepository) AttachRegion(articleID, regionID uint, position int) error {
	sqlStr, args, err := database.Builder.Insert("article_regions").
		Columns("article_id", "region_id", "position").
		Values(articleID, regionID, position).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for AttachRegion: %w", err)
	}
	if err := r.db.Exec(sqlStr, args...).Error; err != nil {
		return fmt.Errorf("failed to attach region %d to article %d: %w", regionID, articleID, err)
	}
	return nil
}

func (r *GormArticleRepository) DetachRegions(articleID uint, regionIDs []uint) error {
	if len(regionIDs) == 0 {
		return nil
	}
	sqlStr, args, err := database.Builder.Delete("article_regions").
		Where(sq.Eq{"article_id": articleID}).
		Where(sq.Eq{"region_id": regionIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for DetachRegions: %w", err)
	}
	if err := r.db.Exec(sqlStr, args...).Error; err != nil {
		return fmt.Errorf("failed to detach regions from article %d: %w", articleID, err)
	}
	return nil
}

func (r *GormArticleRepository) MoveRegion(articleID, regionID uint, position int) error {
	sqlStr, args, err := database.Builder.Update("article_regions").
		Set("position", position).
		Where(sq.Eq{"article_id": articleID, "region_id": regionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for MoveRegion: %w", err)
	}
	if err := r.db.Exec(sqlStr, args...).Error; err != nil {
		return fmt.Errorf("failed to move region %d on article %d: %w", regionID, articleID, err)
	}
	return nil
}
