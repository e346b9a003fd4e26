package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/norphel/odin-blogAPI/internal/config"
	"github.com/norphel/odin-blogAPI/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		PostService:    services.Post,
		CommentService: services.Comment,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
