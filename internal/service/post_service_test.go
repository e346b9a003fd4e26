package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/norphel/odin-blogAPI/internal/apperrors"
	"github.com/norphel/odin-blogAPI/internal/models"
	"github.com/norphel/odin-blogAPI/internal/repository"
)

const (
	ownerID    = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	strangerID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	testPostID = "cccccccc-cccc-cccc-cccc-cccccccccccc"
)

func ownedPost() *models.Post {
	return &models.Post{
		PostID:      testPostID,
		AuthorID:    ownerID,
		Title:       "Заголовок",
		Content:     "Текст",
		IsPublished: true,
	}
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	req := repository.CreatePostRequest{
		AuthorID: ownerID,
		Title:    "Заголовок",
		Content:  "Текст",
	}

	t.Run("Создание с обложкой", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		storage := new(MockStorage)
		svc := NewPostService(postRepo, storage)

		storage.On("UploadMedia", mock.Anything, "thumbnails", "cover.png", mock.Anything, int64(4)).
			Return("thumbnails/2026/08/obj.png", "http://localhost:9000/media/thumbnails/2026/08/obj.png", nil)
		postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
			Return(nil)

		post, err := svc.CreatePost(ctx, req, &Thumbnail{
			FileName: "cover.png",
			File:     strings.NewReader("data"),
			Size:     4,
		})

		require.NoError(t, err)
		assert.Equal(t, ownerID, post.AuthorID)
		assert.True(t, post.Thumbnail.Valid)
		assert.False(t, post.IsPublished) // новый пост всегда черновик
		storage.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("Сбой загрузки обложки прерывает операцию", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		storage := new(MockStorage)
		svc := NewPostService(postRepo, storage)

		storage.On("UploadMedia", mock.Anything, "thumbnails", "cover.png", mock.Anything, int64(4)).
			Return("", "", errors.New("minio недоступен"))

		post, err := svc.CreatePost(ctx, req, &Thumbnail{
			FileName: "cover.png",
			File:     strings.NewReader("data"),
			Size:     4,
		})

		assert.Nil(t, post)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
		postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Сбой вставки убирает загруженную обложку", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		storage := new(MockStorage)
		svc := NewPostService(postRepo, storage)

		storage.On("UploadMedia", mock.Anything, "thumbnails", "cover.png", mock.Anything, int64(4)).
			Return("thumbnails/2026/08/obj.png", "http://localhost:9000/media/thumbnails/2026/08/obj.png", nil)
		postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
			Return(errors.New("БД недоступна"))
		storage.On("DeleteMedia", mock.Anything, "thumbnails/2026/08/obj.png").
			Return(nil)

		post, err := svc.CreatePost(ctx, req, &Thumbnail{
			FileName: "cover.png",
			File:     strings.NewReader("data"),
			Size:     4,
		})

		assert.Nil(t, post)
		assert.Error(t, err)
		storage.AssertCalled(t, "DeleteMedia", mock.Anything, "thumbnails/2026/08/obj.png")
	})
}

func TestPostService_GetPost(t *testing.T) {
	ctx := context.Background()

	t.Run("Опубликованный пост доступен всем", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("GetByID", mock.Anything, testPostID).Return(ownedPost(), nil)

		post, err := svc.GetPost(ctx, testPostID, "")

		require.NoError(t, err)
		assert.Equal(t, testPostID, post.PostID)
	})

	t.Run("Черновик видит только автор", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		draft := ownedPost()
		draft.IsPublished = false
		postRepo.On("GetByID", mock.Anything, testPostID).Return(draft, nil)

		post, err := svc.GetPost(ctx, testPostID, strangerID)
		assert.Nil(t, post)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		post, err = svc.GetPost(ctx, testPostID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, testPostID, post.PostID)
	})
}

func TestPostService_OwnershipGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("Удаление чужого поста запрещено", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("GetByID", mock.Anything, testPostID).Return(ownedPost(), nil)

		err := svc.DeletePost(ctx, testPostID, strangerID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Автор удаляет свой пост", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		storage := new(MockStorage)
		svc := NewPostService(postRepo, storage)

		post := ownedPost()
		post.Thumbnail = sql.NullString{String: "http://localhost:9000/media/thumbnails/obj.png", Valid: true}
		postRepo.On("GetByID", mock.Anything, testPostID).Return(post, nil)
		postRepo.On("Delete", mock.Anything, testPostID).Return(nil)
		storage.On("ObjectNameFromURL", post.Thumbnail.String).Return("thumbnails/obj.png")
		storage.On("DeleteMedia", mock.Anything, "thumbnails/obj.png").Return(nil)

		err := svc.DeletePost(ctx, testPostID, ownerID)

		assert.NoError(t, err)
		postRepo.AssertExpectations(t)
	})

	t.Run("Редактирование чужого поста запрещено", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("GetByID", mock.Anything, testPostID).Return(ownedPost(), nil)

		post, err := svc.EditPost(ctx, repository.UpdatePostRequest{
			PostID:   testPostID,
			AuthorID: strangerID,
			Title:    "Чужой заголовок",
			Content:  "Чужой текст",
		}, nil)

		assert.Nil(t, post)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Автор редактирует свой пост", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("GetByID", mock.Anything, testPostID).Return(ownedPost(), nil)
		postRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil)

		post, err := svc.EditPost(ctx, repository.UpdatePostRequest{
			PostID:   testPostID,
			AuthorID: ownerID,
			Title:    "Новый заголовок",
			Content:  "Новый текст",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Новый заголовок", post.Title)
		assert.Equal(t, ownerID, post.AuthorID) // автор неизменяем
	})

	t.Run("Смена статуса публикации чужого поста запрещена", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("GetByID", mock.Anything, testPostID).Return(ownedPost(), nil)

		err := svc.SetPublished(ctx, testPostID, strangerID, true)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		postRepo.AssertNotCalled(t, "SetPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Автор снимает пост с публикации", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("GetByID", mock.Anything, testPostID).Return(ownedPost(), nil)
		postRepo.On("SetPublished", mock.Anything, testPostID, false).Return(nil)

		err := svc.SetPublished(ctx, testPostID, ownerID, false)

		assert.NoError(t, err)
		postRepo.AssertExpectations(t)
	})
}

func TestPostService_GetAllPostsOfUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Чужие черновики недоступны", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		posts, err := svc.GetAllPostsOfUser(ctx, ownerID, strangerID)

		assert.Nil(t, posts)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		postRepo.AssertNotCalled(t, "GetAllByAuthor", mock.Anything, mock.Anything)
	})

	t.Run("Автор видит все свои посты", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockStorage))

		postRepo.On("GetAllByAuthor", mock.Anything, ownerID).
			Return([]models.Post{*ownedPost()}, nil)

		posts, err := svc.GetAllPostsOfUser(ctx, ownerID, ownerID)

		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})
}
