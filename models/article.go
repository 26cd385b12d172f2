package models

// Article represents an article in the database using GORM.
// It corresponds to the 'articles' table.
type Article struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string  `gorm:"size:255;not null" json:"title"`
	Content  string  `gorm:"not null;default:''" json:"content"`
	AuthorID *uint   `gorm:"index" json:"-"` // Nullable
	Author   *Author `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL;" json:"author"`

	// Regions is loaded from article_regions ordered by position; GORM does not manage it.
	Regions []Region `gorm:"-" json:"regions"`
}

// TableName explicitly sets the table name for GORM.
func (Article) TableName() string {
	return "articles"
}

// ArticleRegion is the ordered join table between articles and regions.
type ArticleRegion struct {
	ArticleID uint    `gorm:"primaryKey"`
	RegionID  uint    `gorm:"primaryKey;index"`
	Position  int     `gorm:"not null"`
	Article   Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE;"`
	Region    Region  `gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE;"`
}

// TableName overrides the table name for ArticleRegion to be `article_regions`
func (ArticleRegion) TableName() string {
	return "article_regions"
}
