package repository

import (
	"fmt"

	"github.com/camden-git/articlesbackend/models"
	"gorm.io/gorm"
)

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewGormAuthorRepository(db *gorm.DB) AuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) Create(author *models.Author) error {
	if err := r.db.Create(author).Error; err != nil {
		return fmt.Errorf("failed to create author %s %s: %w", author.FirstName, author.LastName, err)
	}
	return nil
}

func (r *GormAuthorRepository) GetByID(id uint) (*models.Author, error) {
	var author models.Author
	err := r.db.First(&author, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get author by ID %d: %w", id, err)
	}
	return &author, nil
}

func (r *GormAuthorRepository) ListAll() ([]models.Author, error) {
	var authors []models.Author
	if err := r.db.Order("id ASC").Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

func (r *GormAuthorRepository) Update(author *models.Author) error {
	result := r.db.Model(&models.Author{}).Where("id = ?", author.ID).Updates(map[string]interface{}{
		"first_name": author.FirstName,
		"last_name":  author.LastName,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update author ID %d: %w", author.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Author{}).Where("id = ?", author.ID).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *GormAuthorRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// detach from articles; the articles themselves stay
		if err := tx.Model(&models.Article{}).Where("author_id = ?", id).Update("author_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach author ID %d from articles: %w", id, err)
		}
		result := tx.Delete(&models.Author{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete author ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
