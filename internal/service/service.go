package service

import (
	"github.com/norphel/odin-blogAPI/internal/config"
	"github.com/norphel/odin-blogAPI/internal/repository"
	"github.com/norphel/odin-blogAPI/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User, storage),
		Post:    NewPostService(rep.Post, storage),
		Comment: NewCommentService(rep.Comment, rep.Post),
	}
}
