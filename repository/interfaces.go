package repository

import (
	"github.com/camden-git/articlesbackend/models"
)

// AuthorRepository defines the methods for author data operations
type AuthorRepository interface {
	Create(author *models.Author) error
	GetByID(id uint) (*models.Author, error)
	ListAll() ([]models.Author, error)
	Update(author *models.Author) error
	// Delete removes the author and clears the author reference on its articles.
	Delete(id uint) error
}

// RegionFilter narrows ListAll. Zero value lists every region by id.
type RegionFilter struct {
	Code string
	Sort string // database.SortRegionID or database.SortRegionName
}

// RegionRepository defines the methods for region data operations
type RegionRepository interface {
	Create(region *models.Region) error
	GetByID(id uint) (*models.Region, error)
	ListAll(filter RegionFilter) ([]models.Region, error)
	Update(region *models.Region) error
	// Delete detaches the region from every article, then removes it.
	Delete(id uint) error
}

// ArticleFilter narrows List. Zero value lists every article by id.
type ArticleFilter struct {
	AuthorID   *uint
	RegionCode string
}

// ArticleRepository defines the methods for article data operations.
// Read methods return articles with Author and the ordered Regions populated.
type ArticleRepository interface {
	Create(article *models.Article) error
	// UpdateScalars writes title, content and author_id of an existing article.
	UpdateScalars(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	List(filter ArticleFilter) ([]models.Article, error)
	Delete(id uint) error

	// region association primitives, ordered by position
	RegionLinks(articleID uint) ([]models.ArticleRegion, error)
	AttachRegion(articleID, regionID uint, position int) error
	DetachRegions(articleID uint, regionIDs []uint) error
	MoveRegion(articleID, regionID uint, position int) error
}
