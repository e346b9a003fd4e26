package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/norphel/odin-blogAPI/internal/avatar"
	"github.com/norphel/odin-blogAPI/internal/models"
	"github.com/norphel/odin-blogAPI/internal/repository"
	"github.com/norphel/odin-blogAPI/internal/storage"
)

type Profile struct {
	User           *models.User
	ProfilePicture string
	FollowerCount  int
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfilePicture(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.userRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	// пользователям без аватара отдаем SVG с инициалами
	picture := user.ProfilePicture.String
	if !user.ProfilePicture.Valid {
		picture = avatar.GenerateSVG(avatar.Initials(user.DisplayName))
	}

	return &Profile{
		User:           user,
		ProfilePicture: picture,
		FollowerCount:  followerCount,
	}, nil
}

func (s *userService) UpdateProfilePicture(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, pictureURL, err := s.storage.UploadMedia(ctx, "avatars", fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки аватара: %w", err)
	}

	err = s.userRepo.UpdateProfilePicture(ctx, userID, pictureURL)
	if err != nil {
		return nil, err
	}

	// старый аватар удаляем синхронно, но его потеря не фатальна
	if user.ProfilePicture.Valid {
		oldObject := s.storage.ObjectNameFromURL(user.ProfilePicture.String)
		if err := s.storage.DeleteMedia(ctx, oldObject); err != nil {
			log.Printf("Предупреждение: не удалось удалить старый аватар %s: %v", oldObject, err)
		}
	}

	user.ProfilePicture.String = pictureURL
	user.ProfilePicture.Valid = true

	return user, nil
}
