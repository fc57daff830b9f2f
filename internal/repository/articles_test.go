package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/medo-health/assistant-api/internal/models"
)

const testSchema = `
CREATE TABLE categories (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE articles (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    category   TEXT NOT NULL,
    summary    TEXT NOT NULL DEFAULT '',
    content    TEXT NOT NULL,
    tags       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

func newTestRepo(t *testing.T) ArticleRepository {
	t.Helper()
	conn, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec(testSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return NewArticleRepository(conn)
}

func sampleArticle(id, title, category string) *models.Article {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Article{
		ID:        id,
		Title:     title,
		Category:  category,
		Summary:   "summary of " + title,
		Content:   "content of " + title,
		Tags:      "health,general",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := sampleArticle("a1", "Understanding Blood Pressure", "cardiology")
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatalf("article not found after create")
	}
	if got.Title != want.Title || got.Category != want.Category {
		t.Errorf("roundtrip mismatch: got %+v", got)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing article")
	}
}

func TestListByCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.Create(ctx, sampleArticle("a1", "Heart Health", "cardiology"))
	repo.Create(ctx, sampleArticle("a2", "Sleep Hygiene", "wellness"))
	repo.Create(ctx, sampleArticle("a3", "Arrhythmia Basics", "cardiology"))

	articles, err := repo.ListByCategory(ctx, "cardiology")
	if err != nil {
		t.Fatalf("ListByCategory returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("expected 2 cardiology articles, got %d", len(articles))
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.Create(ctx, sampleArticle("a1", "Understanding Diabetes", "endocrinology"))
	repo.Create(ctx, sampleArticle("a2", "Healthy Eating", "nutrition"))

	articles, err := repo.Search(ctx, "DIABETES")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "a1" {
		t.Errorf("case-insensitive title search failed, got %+v", articles)
	}

	// Tags are searchable too.
	articles, err = repo.Search(ctx, "general")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("tag search should match both articles, got %d", len(articles))
	}
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	article := sampleArticle("a1", "Old Title", "wellness")
	repo.Create(ctx, article)

	article.Title = "New Title"
	if err := repo.Update(ctx, article); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, _ := repo.GetByID(ctx, "a1")
	if got.Title != "New Title" {
		t.Errorf("update not persisted, got %q", got.Title)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.Create(ctx, sampleArticle("a1", "Doomed", "misc"))

	deleted, err := repo.Delete(ctx, "a1")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Errorf("expected deletion to report success")
	}

	deleted, err = repo.Delete(ctx, "a1")
	if err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	if deleted {
		t.Errorf("second delete should report nothing deleted")
	}
}
