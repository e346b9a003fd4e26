package handlers

import (
	"net/http"
	"time"
)

type ProfileResponse struct {
	UserID         string    `json:"userId"`
	DisplayName    string    `json:"displayName"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	FollowerCount  int       `json:"followerCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	profile, err := h.UserService.GetProfile(r.Context(), user.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, ProfileResponse{
		UserID:         profile.User.UserID,
		DisplayName:    profile.User.DisplayName,
		Username:       profile.User.Username,
		Email:          profile.User.Email,
		ProfilePicture: profile.ProfilePicture,
		FollowerCount:  profile.FollowerCount,
		CreatedAt:      profile.User.CreatedAt,
		UpdatedAt:      profile.User.UpdatedAt,
	}, http.StatusOK)
}

func (h *Handlers) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !isAllowedImageType(header.Header.Get("Content-Type")) {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	updated, err := h.UserService.UpdateProfilePicture(r.Context(), user.UserID, header.Filename, file, header.Size)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, ProfileResponse{
		UserID:         updated.UserID,
		DisplayName:    updated.DisplayName,
		Username:       updated.Username,
		Email:          updated.Email,
		ProfilePicture: updated.ProfilePicture.String,
		CreatedAt:      updated.CreatedAt,
		UpdatedAt:      updated.UpdatedAt,
	}, http.StatusOK)
}

// isAllowedImageType ограничивает загрузку растровыми форматами
func isAllowedImageType(contentType string) bool {
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return allowedTypes[contentType]
}
