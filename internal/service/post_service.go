package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/norphel/odin-blogAPI/internal/apperrors"
	"github.com/norphel/odin-blogAPI/internal/models"
	"github.com/norphel/odin-blogAPI/internal/repository"
	"github.com/norphel/odin-blogAPI/internal/storage"
)

type Thumbnail struct {
	FileName string
	File     io.Reader
	Size     int64
}

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest, thumb *Thumbnail) (*models.Post, error)
	GetPost(ctx context.Context, postID, callerID string) (*models.Post, error)
	GetPublishedPosts(ctx context.Context) ([]models.Post, error)
	GetPublishedPostsOfUser(ctx context.Context, authorID string) ([]models.Post, error)
	GetAllPostsOfUser(ctx context.Context, authorID, callerID string) ([]models.Post, error)
	EditPost(ctx context.Context, req repository.UpdatePostRequest, thumb *Thumbnail) (*models.Post, error)
	SetPublished(ctx context.Context, postID, callerID string, isPublished bool) error
	DeletePost(ctx context.Context, postID, callerID string) error
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
	}
}

// checkOwnership сравнивает канонические идентификаторы автора и вызывающего.
func checkOwnership(post *models.Post, callerID string) error {
	if post.AuthorID != callerID {
		return fmt.Errorf("пост %s принадлежит другому автору: %w", post.PostID, apperrors.ErrForbidden)
	}
	return nil
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest, thumb *Thumbnail) (*models.Post, error) {
	post := &models.Post{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Content:  req.Content,
	}

	var thumbObject string
	if thumb != nil {
		objectName, thumbURL, err := p.storage.UploadMedia(ctx, "thumbnails", thumb.FileName, thumb.File, thumb.Size)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки обложки: %w", apperrors.ErrUpstream)
		}
		thumbObject = objectName
		post.Thumbnail.String = thumbURL
		post.Thumbnail.Valid = true
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		// запись не создана, загруженную обложку убираем
		if thumbObject != "" {
			if delErr := p.storage.DeleteMedia(ctx, thumbObject); delErr != nil {
				log.Printf("Предупреждение: не удалось удалить обложку %s: %v", thumbObject, delErr)
			}
		}
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID, callerID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// неопубликованный пост видит только автор
	if !post.IsPublished && post.AuthorID != callerID {
		return nil, fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
	}

	return post, nil
}

func (p *postService) GetPublishedPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetPublished(ctx)
}

func (p *postService) GetPublishedPostsOfUser(ctx context.Context, authorID string) ([]models.Post, error) {
	return p.postRepo.GetPublishedByAuthor(ctx, authorID)
}

func (p *postService) GetAllPostsOfUser(ctx context.Context, authorID, callerID string) ([]models.Post, error) {
	if authorID != callerID {
		return nil, fmt.Errorf("черновики доступны только автору: %w", apperrors.ErrForbidden)
	}

	return p.postRepo.GetAllByAuthor(ctx, authorID)
}

func (p *postService) EditPost(ctx context.Context, req repository.UpdatePostRequest, thumb *Thumbnail) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if err := checkOwnership(post, req.AuthorID); err != nil {
		return nil, err
	}

	oldThumbnail := post.Thumbnail

	post.Title = req.Title
	post.Content = req.Content

	if thumb != nil {
		_, thumbURL, err := p.storage.UploadMedia(ctx, "thumbnails", thumb.FileName, thumb.File, thumb.Size)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки обложки: %w", apperrors.ErrUpstream)
		}
		post.Thumbnail.String = thumbURL
		post.Thumbnail.Valid = true
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	// вытесненную обложку удаляем синхронно, сбой только логируем
	if thumb != nil && oldThumbnail.Valid {
		oldObject := p.storage.ObjectNameFromURL(oldThumbnail.String)
		if err := p.storage.DeleteMedia(ctx, oldObject); err != nil {
			log.Printf("Предупреждение: не удалось удалить старую обложку %s: %v", oldObject, err)
		}
	}

	return post, nil
}

func (p *postService) SetPublished(ctx context.Context, postID, callerID string, isPublished bool) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := checkOwnership(post, callerID); err != nil {
		return err
	}

	return p.postRepo.SetPublished(ctx, postID, isPublished)
}

func (p *postService) DeletePost(ctx context.Context, postID, callerID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := checkOwnership(post, callerID); err != nil {
		return err
	}

	err = p.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}

	if post.Thumbnail.Valid {
		thumbObject := p.storage.ObjectNameFromURL(post.Thumbnail.String)
		if err := p.storage.DeleteMedia(ctx, thumbObject); err != nil {
			log.Printf("Предупреждение: не удалось удалить обложку %s: %v", thumbObject, err)
		}
	}

	return nil
}
