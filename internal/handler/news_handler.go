package handler

import (
	"net/http"
	"time"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsService *service.NewsService
}

func NewNewsHandler(newsService *service.NewsService) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
	}
}

type NewsRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	Slug          string     `json:"slug" binding:"max=200"`
	Content       string     `json:"content" binding:"required"`
	Excerpt       string     `json:"excerpt" binding:"max=300"`
	FeaturedImage string     `json:"featured_image" binding:"max=255"`
	Author        string     `json:"author" binding:"max=100"`
	IsPublished   bool       `json:"is_published"`
	IsFeatured    bool       `json:"is_featured"`
	PublishedDate *time.Time `json:"published_date"`
}

func (r NewsRequest) model() *models.News {
	return &models.News{
		Title:         r.Title,
		Slug:          r.Slug,
		Content:       r.Content,
		Excerpt:       r.Excerpt,
		FeaturedImage: r.FeaturedImage,
		Author:        r.Author,
		IsPublished:   r.IsPublished,
		IsFeatured:    r.IsFeatured,
		PublishedDate: r.PublishedDate,
	}
}

// ListNews lists published articles, newest first
func (h *NewsHandler) ListNews(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	items, count, err := h.newsService.List(c.Request.Context(), params)
	respondPage(c, params.Page, count, newNewsSummaries(items), err)
}

// FeaturedNews returns the latest featured articles
func (h *NewsHandler) FeaturedNews(c *gin.Context) {
	items, err := h.newsService.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, newNewsSummaries(items))
}

// GetNews retrieves a published article by slug
func (h *NewsHandler) GetNews(c *gin.Context) {
	article, err := h.newsService.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, article)
}

// CreateNews creates an article (staff only)
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req NewsRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.newsService.Create(c.Request.Context(), req.model(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, article)
}

// UpdateNews replaces an article (staff only)
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	var req NewsRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.newsService.Update(c.Request.Context(), c.Param("slug"), req.model(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, article)
}

// DeleteNews removes an article (staff only)
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	if err := h.newsService.Delete(c.Request.Context(), c.Param("slug"), caller(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
