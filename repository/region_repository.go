package repository

import (
	"fmt"
	"sort"

	"github.com/camden-git/articlesbackend/database"
	"github.com/camden-git/articlesbackend/models"
	"github.com/facette/natsort"
	"gorm.io/gorm"
)

type GormRegionRepository struct {
	db *gorm.DB
}

func NewGormRegionRepository(db *gorm.DB) RegionRepository {
	return &GormRegionRepository{db: db}
}

func (r *GormRegionRepository) Create(region *models.Region) error {
	if err := r.db.Create(region).Error; err != nil {
		return fmt.Errorf("failed to create region %s: %w", region.Code, err)
	}
	return nil
}

func (r *GormRegionRepository) GetByID(id uint) (*models.Region, error) {
	var region models.Region
	err := r.db.First(&region, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get region by ID %d: %w", id, err)
	}
	return &region, nil
}

// ListAll returns regions by id, or in natural name order ("Region 2" before "Region 10") when asked.
func (r *GormRegionRepository) ListAll(filter RegionFilter) ([]models.Region, error) {
	var regions []models.Region
	q := r.db.Order("id ASC")
	if filter.Code != "" {
		q = q.Where("code = ?", filter.Code)
	}
	if err := q.Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	sortBy := filter.Sort
	if sortBy == "" {
		sortBy = database.DefaultRegionSort
	}
	if sortBy == database.SortRegionName {
		// natsort.Compare reports true for equal strings, which would break stability
		sort.SliceStable(regions, func(i, j int) bool {
			return regions[i].Name != regions[j].Name && natsort.Compare(regions[i].Name, regions[j].Name)
		})
	}
	return regions, nil
}

func (r *GormRegionRepository) Update(region *models.Region) error {
	result := r.db.Model(&models.Region{}).Where("id = ?", region.ID).Updates(map[string]interface{}{
		"code": region.Code,
		"name": region.Name,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update region ID %d: %w", region.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Region{}).Where("id = ?", region.ID).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *GormRegionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("region_id = ?", id).Delete(&models.ArticleRegion{}).Error; err != nil {
			return fmt.Errorf("failed to detach region ID %d from articles: %w", id, err)
		}
		result := tx.Delete(&models.Region{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete region ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
