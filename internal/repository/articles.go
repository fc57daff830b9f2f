package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medo-health/assistant-api/internal/models"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context) ([]models.Article, error)
	ListByCategory(ctx context.Context, category string) ([]models.Article, error)
	Search(ctx context.Context, query string) ([]models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) (bool, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (id, title, category, summary, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Category,
		article.Summary,
		article.Content,
		article.Tags,
		article.CreatedAt,
		article.UpdatedAt,
	)

	return err
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article

	query := `
		SELECT id, title, category, summary, content, tags, created_at, updated_at
		FROM articles
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &article, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &article, nil
}

func (r *articleRepository) List(ctx context.Context) ([]models.Article, error) {
	articles := []models.Article{}

	query := `
		SELECT id, title, category, summary, content, tags, created_at, updated_at
		FROM articles
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) ListByCategory(ctx context.Context, category string) ([]models.Article, error) {
	articles := []models.Article{}

	query := `
		SELECT id, title, category, summary, content, tags, created_at, updated_at
		FROM articles
		WHERE category = $1
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &articles, query, category); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) Search(ctx context.Context, query string) ([]models.Article, error) {
	articles := []models.Article{}

	// Case-insensitive match over the searchable text columns.
	stmt := `
		SELECT id, title, category, summary, content, tags, created_at, updated_at
		FROM articles
		WHERE title LIKE $1 COLLATE NOCASE
		   OR summary LIKE $1 COLLATE NOCASE
		   OR content LIKE $1 COLLATE NOCASE
		   OR tags LIKE $1 COLLATE NOCASE
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &articles, stmt, "%"+query+"%"); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $2, category = $3, summary = $4, content = $5, tags = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Category,
		article.Summary,
		article.Content,
		article.Tags,
		time.Now(),
	)

	return err
}

func (r *articleRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *articleRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}

	query := `
		SELECT id, name, description
		FROM categories
		ORDER BY name ASC
	`

	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}

	return categories, nil
}
