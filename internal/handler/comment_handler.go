package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/norphel/odin-blogAPI/internal/models"
)

type CommentResponse struct {
	CommentID string    `json:"commentId"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}

func toCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		CommentID: comment.CommentID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
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
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		WriteError(w, "Текст комментария не может быть пустым", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), postID, user.UserID, req.Text)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, toCommentResponse(comment), http.StatusOK)
}

func (h *Handlers) GetCommentsOnPost(w http.ResponseWriter, r *http.Request) {
	postID, valid := pathID(r, "postID")
	if !valid {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	comments, err := h.CommentService.GetCommentsOnPost(r.Context(), postID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := CommentsResponse{Comments: make([]CommentResponse, 0, len(comments))}
	for i := range comments {
		out.Comments = append(out.Comments, toCommentResponse(&comments[i]))
	}

	WriteSuccess(w, out, http.StatusOK)
}
