package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/norphel/odin-blogAPI/internal/models"
	"github.com/norphel/odin-blogAPI/internal/repository"
	"github.com/norphel/odin-blogAPI/internal/service"
)

type PostResponse struct {
	PostID      string    `json:"postId"`
	AuthorID    string    `json:"authorId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	IsPublished bool      `json:"isPublished"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PostsResponse struct {
	Posts []PostResponse `json:"posts"`
}

func toPostResponse(post *models.Post) PostResponse {
	return PostResponse{
		PostID:      post.PostID,
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Content:     post.Content,
		Thumbnail:   post.Thumbnail.String,
		IsPublished: post.IsPublished,
		Likes:       post.Likes,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func toPostsResponse(posts []models.Post) PostsResponse {
	out := PostsResponse{Posts: make([]PostResponse, 0, len(posts))}
	for i := range posts {
		out.Posts = append(out.Posts, toPostResponse(&posts[i]))
	}
	return out
}

// pathID достает идентификатор из URL и проверяет его каноническую форму.
func pathID(r *http.Request, name string) (string, bool) {
	id := mux.Vars(r)[name]
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")

	if title == "" {
		WriteError(w, "Отсутствует заголовок", http.StatusBadRequest)
		return
	}
	if content == "" {
		WriteError(w, "Отсутствует текст поста", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		WriteError(w, "Отсутствует обложка поста", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !isAllowedImageType(header.Header.Get("Content-Type")) {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreatePostRequest{
		AuthorID: user.UserID,
		Title:    title,
		Content:  content,
	}

	post, err := h.PostService.CreatePost(r.Context(), serviceReq, &service.Thumbnail{
		FileName: header.Filename,
		File:     file,
		Size:     header.Size,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, toPostResponse(post), http.StatusCreated)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetPublishedPosts(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, toPostsResponse(posts), http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	// эндпоинт публичный, но автор видит и свои черновики
	var callerID string
	if token := extractToken(r); token != "" {
		if user, err := h.AuthService.Authenticate(r.Context(), token); err == nil {
			callerID = user.UserID
		}
	}

	post, err := h.PostService.GetPost(r.Context(), postID, callerID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, toPostResponse(post), http.StatusOK)
}

func (h *Handlers) GetPublishedPostsOfUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.GetPublishedPostsOfUser(r.Context(), userID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, toPostsResponse(posts), http.StatusOK)
}

func (h *Handlers) GetAllPostsOfUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	userID, valid := pathID(r, "userID")
	if !valid {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.GetAllPostsOfUser(r.Context(), userID, user.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, toPostsResponse(posts), http.StatusOK)
}

func (h *Handlers) ChangePublishedStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID, valid := pathID(r, "postID")
	if !valid {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	var req struct {
		IsPublished *bool `json:"isPublished"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsPublished == nil {
		WriteError(w, "Неверный формат запроса: требуется isPublished", http.StatusBadRequest)
		return
	}

	if err := h.PostService.SetPublished(r.Context(), postID, user.UserID, *req.IsPublished); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Статус публикации обновлен"}, http.StatusOK)
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID, valid := pathID(r, "postID")
	if !valid {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")

	if title == "" {
		WriteError(w, "Отсутствует заголовок", http.StatusBadRequest)
		return
	}
	if content == "" {
		WriteError(w, "Отсутствует текст поста", http.StatusBadRequest)
		return
	}

	// новая обложка необязательна
	var thumb *service.Thumbnail
	if file, header, err := r.FormFile("thumbnail"); err == nil {
		defer file.Close()

		if !isAllowedImageType(header.Header.Get("Content-Type")) {
			WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
			return
		}

		thumb = &service.Thumbnail{
			FileName: header.Filename,
			File:     file,
			Size:     header.Size,
		}
	}

	serviceReq := repository.UpdatePostRequest{
		PostID:   postID,
		AuthorID: user.UserID,
		Title:    title,
		Content:  content,
	}

	post, err := h.PostService.EditPost(r.Context(), serviceReq, thumb)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, toPostResponse(post), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID, valid := pathID(r, "postID")
	if !valid {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, user.UserID); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост успешно удален"}, http.StatusOK)
}
