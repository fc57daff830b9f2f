package services

import (
	"context"
	"strings"
	"time"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/repository"
	"github.com/medo-health/assistant-api/internal/utils"
)

type LibraryService interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	ListArticlesByCategory(ctx context.Context, category string) ([]models.Article, error)
	SearchArticles(ctx context.Context, query string) ([]models.Article, error)
	CreateArticle(ctx context.Context, input models.ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id string, input models.ArticleInput) (*models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type libraryService struct {
	repo   repository.ArticleRepository
	logger *utils.Logger
}

func NewLibraryService(repo repository.ArticleRepository, logger *utils.Logger) LibraryService {
	return &libraryService{repo: repo, logger: logger}
}

func (s *libraryService) ListArticles(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list articles", "error", err)
		return nil, utils.NewInternalError("Failed to retrieve articles")
	}
	return articles, nil
}

func (s *libraryService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get article", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve article")
	}
	if article == nil {
		return nil, utils.NewNotFoundError("Article not found")
	}
	return article, nil
}

func (s *libraryService) ListArticlesByCategory(ctx context.Context, category string) ([]models.Article, error) {
	articles, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		s.logger.Error("Failed to list articles by category", "error", err, "category", category)
		return nil, utils.NewInternalError("Failed to retrieve articles")
	}
	return articles, nil
}

func (s *libraryService) SearchArticles(ctx context.Context, query string) ([]models.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.NewBadRequestError("Search query is required")
	}

	articles, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Error("Failed to search articles", "error", err, "query", query)
		return nil, utils.NewInternalError("Failed to search articles")
	}
	return articles, nil
}

func (s *libraryService) CreateArticle(ctx context.Context, input models.ArticleInput) (*models.Article, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, utils.NewBadRequestError("Title and content are required")
	}

	now := time.Now()
	article := &models.Article{
		ID:        utils.GenerateID(),
		Title:     input.Title,
		Category:  input.Category,
		Summary:   input.Summary,
		Content:   input.Content,
		Tags:      input.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		s.logger.Error("Failed to create article", "error", err)
		return nil, utils.NewInternalError("Failed to save article")
	}

	s.logger.Info("Article created", "id", article.ID, "title", article.Title)
	return article, nil
}

func (s *libraryService) UpdateArticle(ctx context.Context, id string, input models.ArticleInput) (*models.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get article for update", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve article")
	}
	if article == nil {
		return nil, utils.NewNotFoundError("Article not found")
	}

	if input.Title != "" {
		article.Title = input.Title
	}
	if input.Category != "" {
		article.Category = input.Category
	}
	if input.Summary != "" {
		article.Summary = input.Summary
	}
	if input.Content != "" {
		article.Content = input.Content
	}
	if input.Tags != "" {
		article.Tags = input.Tags
	}
	article.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, article); err != nil {
		s.logger.Error("Failed to update article", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to update article")
	}
	return article, nil
}

func (s *libraryService) DeleteArticle(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete article", "error", err, "id", id)
		return utils.NewInternalError("Failed to delete article")
	}
	if !deleted {
		return utils.NewNotFoundError("Article not found")
	}
	return nil
}

func (s *libraryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", "error", err)
		return nil, utils.NewInternalError("Failed to retrieve categories")
	}
	return categories, nil
}
