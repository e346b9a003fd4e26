package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/norphel/odin-blogAPI/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error
	ClearRefreshToken(ctx context.Context, userID string) error
	UpdateProfilePicture(ctx context.Context, userID, pictureURL string) error
	CountFollowers(ctx context.Context, userID string) (int, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetPublished(ctx context.Context) ([]models.Post, error)
	GetPublishedByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	GetAllByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	SetPublished(ctx context.Context, postID string, isPublished bool) error
	Delete(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
	}
}
