package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/norphel/odin-blogAPI/internal/apperrors"
	"github.com/norphel/odin-blogAPI/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID string `json:"authorId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type UpdatePostRequest struct {
	PostID   string `json:"postId"`
	AuthorID string `json:"authorId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
		INSERT INTO posts (post_id, author_id, title, content, thumbnail, is_published, likes, created_at, updated_at)
		VALUES (:post_id, :author_id, :title, :content, :thumbnail, :is_published, :likes, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE post_id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetPublished(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE is_published = TRUE
		ORDER BY created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении опубликованных постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetPublishedByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE author_id = $1 AND is_published = TRUE
		ORDER BY created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов автора: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetAllByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов автора: %w", err)
	}

	return posts, nil
}

// Update не трогает author_id: автор поста неизменяем после создания.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			thumbnail = :thumbnail,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, apperrors.ErrNotFound)
	}

	return nil
}

func (r *postRepository) SetPublished(ctx context.Context, postID string, isPublished bool) error {
	query := `
		UPDATE posts SET
			is_published = $1,
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, isPublished, postID)
	if err != nil {
		return fmt.Errorf("ошибка при изменении статуса публикации: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	// комментарии удаляются каскадно (ON DELETE CASCADE)
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
	}

	return nil
}
