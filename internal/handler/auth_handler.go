package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/norphel/odin-blogAPI/internal/apperrors"
	"github.com/norphel/odin-blogAPI/internal/models"
	"github.com/norphel/odin-blogAPI/internal/repository"
)

type SignupRequest struct {
	DisplayName string `json:"displayName" validate:"required"`
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=24"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
}

type AuthResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		DisplayName: user.DisplayName,
		Username:    user.Username,
		Email:       user.Email,
	}
}

func (h *Handlers) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Path:     "/",
		Expires:  time.Now().Add(h.Cfg.AccessTokenDuration),
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		Expires:  time.Now().Add(h.Cfg.RefreshTokenDuration),
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.Cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	serviceReq := repository.CreateUserRequest{
		DisplayName: req.DisplayName,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
	}

	user, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			WriteError(w, "Username или email уже заняты", http.StatusConflict)
			return
		}
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{
		User:    toUserResponse(user),
		Message: "Пользователь успешно зарегистрирован",
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// различие 404/401 раскрывает существование аккаунта; поведение
		// сохранено как документированное (см. DESIGN.md)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			WriteError(w, "Пользователь с таким email не найден", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrUnauthorized):
			WriteError(w, "Неверный пароль", http.StatusUnauthorized)
		default:
			WriteDomainError(w, err)
		}
		return
	}

	h.setAuthCookies(w, accessToken, refreshToken)

	WriteSuccess(w, AuthResponse{
		User:    toUserResponse(user),
		Message: "Вход выполнен успешно",
	}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	// токен берем из cookie, затем из тела
	var refreshToken string
	if cookie, err := r.Cookie("refreshToken"); err == nil && cookie.Value != "" {
		refreshToken = cookie.Value
	} else {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken == "" {
		WriteError(w, "Отсутствует refresh token", http.StatusUnauthorized)
		return
	}

	user, accessToken, newRefreshToken, err := h.AuthService.RefreshTokens(r.Context(), refreshToken)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	h.setAuthCookies(w, accessToken, newRefreshToken)

	WriteSuccess(w, AuthResponse{
		User:    toUserResponse(user),
		Message: "Токены обновлены",
	}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := h.AuthService.Logout(r.Context(), user.UserID); err != nil {
		WriteDomainError(w, err)
		return
	}

	h.clearAuthCookies(w)

	WriteSuccess(w, MessageResponse{Message: "Выход выполнен успешно"}, http.StatusOK)
}
