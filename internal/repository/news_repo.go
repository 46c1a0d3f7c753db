package repository

import (
	"context"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/pkg/utils"

	"gorm.io/gorm"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepo(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// NewsOrdering lists the sortable news fields
var NewsOrdering = map[string]string{
	"published_date": "published_date",
	"created_at":     "created_at",
	"title":          "title",
}

// ListPublished returns one page of published articles
func (r *NewsRepository) ListPublished(ctx context.Context, params ListParams, order string) ([]models.News, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.News{}).Where("is_published = ?", true)
	q = search(q, params.Search, "title", "content", "excerpt")

	news := []models.News{}
	count, err := paginate(q, params.Page, order, &news)
	return news, count, err
}

// Featured returns up to limit published, featured articles, newest first
func (r *NewsRepository) Featured(ctx context.Context, limit int) ([]models.News, error) {
	news := []models.News{}
	err := r.db.WithContext(ctx).
		Where("is_published = ? AND is_featured = ?", true, true).
		Order("published_date DESC").
		Limit(limit).
		Find(&news).Error
	return news, err
}

// FindBySlug finds an article by slug
func (r *NewsRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.News, error) {
	var article models.News
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	if err := q.First(&article).Error; err != nil {
		return nil, notFound(err)
	}
	return &article, nil
}

// Create derives a unique slug when needed and inserts the article
func (r *NewsRepository) Create(ctx context.Context, article *models.News) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assignSlug(ctx, tx, article); err != nil {
			return err
		}
		return tx.Create(article).Error
	})
}

// Save persists every field of article, re-deriving an emptied slug
func (r *NewsRepository) Save(ctx context.Context, article *models.News) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assignSlug(ctx, tx, article); err != nil {
			return err
		}
		return tx.Save(article).Error
	})
}

// Delete removes an article by slug
func (r *NewsRepository) Delete(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.News{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func assignSlug(ctx context.Context, tx *gorm.DB, article *models.News) error {
	base := article.Slug
	if base == "" {
		base = utils.Slugify(article.Title)
	} else {
		base = utils.Slugify(base)
	}
	slug, err := utils.EnsureUniqueSlug(ctx, tx, models.News{}.TableName(), "slug", base, article.ID)
	if err != nil {
		return err
	}
	article.Slug = slug
	return nil
}
