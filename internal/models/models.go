package models

import (
	"database/sql"
	"time"
)

type User struct {
	UserID         string         `json:"userId" db:"user_id"`
	DisplayName    string         `json:"displayName" db:"display_name"`
	Username       string         `json:"username" db:"username"`
	Email          string         `json:"email" db:"email"`
	PasswordHash   string         `json:"-" db:"password_hash"`
	ProfilePicture sql.NullString `json:"-" db:"profile_picture"`
	RefreshToken   sql.NullString `json:"-" db:"refresh_token"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	PostID      string         `json:"postId" db:"post_id"`
	AuthorID    string         `json:"authorId" db:"author_id"`
	Title       string         `json:"title" db:"title"`
	Content     string         `json:"content" db:"content"`
	Thumbnail   sql.NullString `json:"-" db:"thumbnail"`
	IsPublished bool           `json:"isPublished" db:"is_published"`
	Likes       int            `json:"likes" db:"likes"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
