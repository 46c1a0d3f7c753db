package service

import (
	"context"
	"errors"
	"fmt"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"
)

const featuredNewsLimit = 5

type NewsService struct {
	newsRepo *repository.NewsRepository
	auditor  *security.Auditor
}

func NewNewsService(newsRepo *repository.NewsRepository, auditor *security.Auditor) *NewsService {
	return &NewsService{
		newsRepo: newsRepo,
		auditor:  auditor,
	}
}

// List returns one page of published articles
func (s *NewsService) List(ctx context.Context, params repository.ListParams) ([]models.News, int64, error) {
	order := utils.OrderClause(params.Ordering, repository.NewsOrdering, "published_date DESC")
	return s.newsRepo.ListPublished(ctx, params, order)
}

// Featured returns the latest featured articles
func (s *NewsService) Featured(ctx context.Context) ([]models.News, error) {
	return s.newsRepo.Featured(ctx, featuredNewsLimit)
}

// Get returns a published article by slug
func (s *NewsService) Get(ctx context.Context, slug string) (*models.News, error) {
	return s.newsRepo.FindBySlug(ctx, slug, true)
}

// Create creates an article; an empty slug is derived from the title
func (s *NewsService) Create(ctx context.Context, article *models.News, caller Caller) (*models.News, error) {
	if err := s.newsRepo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create news: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "news_create", fmt.Sprintf("Created news: %s (slug: %s)", article.Title, article.Slug))
	return article, nil
}

// Update replaces the article stored under slug (staff only)
func (s *NewsService) Update(ctx context.Context, slug string, article *models.News, caller Caller) (*models.News, error) {
	existing, err := s.newsRepo.FindBySlug(ctx, slug, false)
	if err != nil {
		return nil, err
	}
	article.ID = existing.ID
	article.CreatedAt = existing.CreatedAt
	if article.Slug == "" {
		article.Slug = existing.Slug
	}
	if article.PublishedDate == nil {
		article.PublishedDate = existing.PublishedDate
	}

	if err := s.newsRepo.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to update news: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "news_update", fmt.Sprintf("Updated news: %s", article.Slug))
	return article, nil
}

// Delete removes an article by slug (staff only)
func (s *NewsService) Delete(ctx context.Context, slug string, caller Caller) error {
	if err := s.newsRepo.Delete(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete news: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "news_delete", fmt.Sprintf("Deleted news: %s", slug))
	return nil
}
