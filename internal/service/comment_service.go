package service

import (
	"context"

	"github.com/norphel/odin-blogAPI/internal/models"
	"github.com/norphel/odin-blogAPI/internal/repository"
)

type CommentService interface {
	CreateComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error)
	GetCommentsOnPost(ctx context.Context, postID string) ([]models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *commentService) CreateComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error) {
	// комментарий привязывается только к существующему посту
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}

	err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) GetCommentsOnPost(ctx context.Context, postID string) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByPostID(ctx, postID)
}
