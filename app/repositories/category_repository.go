package repositories

import (
	"errors"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/pkg/metrics"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// All returns every category ordered by name.
func (r *CategoryRepository) All() ([]models.Category, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var categories []models.Category
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

// FindBySlug looks up a category by its slug.
func (r *CategoryRepository) FindBySlug(slug string) (models.Category, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	return category, err
}

// UpsertBySlug finds the category with the given slug, creating it with
// name when it does not exist yet. The name of an existing category is
// left untouched.
func (r *CategoryRepository) UpsertBySlug(slug, name string) (models.Category, error) {
	category, err := r.FindBySlug(slug)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, err
	}

	defer metrics.ObserveDBQuery("insert", time.Now())
	category = models.Category{Name: name, Slug: slug}
	if err := r.db.Create(&category).Error; err != nil {
		// Lost a create race: someone else inserted the slug first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindBySlug(slug)
		}
		return models.Category{}, err
	}
	return category, nil
}
