package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/norphel/odin-blogAPI/internal/apperrors"
	"github.com/norphel/odin-blogAPI/internal/config"
	"github.com/norphel/odin-blogAPI/internal/models"
	"github.com/norphel/odin-blogAPI/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	Logout(ctx context.Context, userID string) error
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	// username и email должны быть свободны
	if existing, err := s.userRepo.GetUserByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("username %s уже занят: %w", req.Username, apperrors.ErrConflict)
	}

	if existing, err := s.userRepo.GetUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s уже зарегистрирован: %w", req.Email, apperrors.ErrConflict)
	}

	user := &models.User{
		DisplayName: req.DisplayName,
		Username:    req.Username,
		Email:       req.Email,
	}

	err := s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации refresh token: %w", err)
	}

	// новый refresh token вытесняет предыдущий: активна только одна сессия
	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	userID, err := s.parseToken(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, "", "", fmt.Errorf("недействительный refresh token: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", "", fmt.Errorf("недействительный refresh token: %w", apperrors.ErrUnauthorized)
	}

	// токен должен совпадать с последним выданным; более старые отозваны
	if !user.RefreshToken.Valid || user.RefreshToken.String != refreshToken {
		return nil, "", "", fmt.Errorf("refresh token отозван: %w", apperrors.ErrUnauthorized)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	newRefreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации refresh token: %w", err)
	}

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, newRefreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка обновления refresh token: %w", err)
	}

	return user, accessToken, newRefreshToken, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	err := s.userRepo.ClearRefreshToken(ctx, userID)
	if err != nil {
		return fmt.Errorf("ошибка при выходе: %w", err)
	}

	return nil
}

// Authenticate проверяет access token и возвращает живого пользователя.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	userID, err := s.parseToken(accessToken, s.cfg.AccessTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("недействительный токен: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("пользователь токена не существует: %w", apperrors.ErrUnauthorized)
	}

	return user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	if s.cfg.AccessTokenSecret == "" {
		return "", fmt.Errorf("секрет access token не задан")
	}

	claims := jwt.MapClaims{
		"userId":   user.UserID,
		"email":    user.Email,
		"username": user.Username,
		"exp":      time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken(user *models.User) (string, error) {
	if s.cfg.RefreshTokenSecret == "" {
		return "", fmt.Errorf("секрет refresh token не задан")
	}

	// jti делает каждый выданный токен уникальным, даже в пределах секунды
	claims := jwt.MapClaims{
		"userId": user.UserID,
		"jti":    uuid.New().String(),
		"exp":    time.Now().Add(s.cfg.RefreshTokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.RefreshTokenSecret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) parseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("недействительный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("неверный формат claims")
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("в токене отсутствует userId")
	}

	return userID, nil
}
