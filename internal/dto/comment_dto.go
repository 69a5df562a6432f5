package dto

import (
	"lexihub/internal/models"
	"time"
)

// CreateCommentRequest used for POST /api/v1/comments
type CreateCommentRequest struct {
	EntryID         string  `json:"entry_id" binding:"required,uuid"`
	Content         string  `json:"content" binding:"required"`
	ParentCommentID *string `json:"parent_comment_id,omitempty" binding:"omitempty,uuid"`
}

func (d CreateCommentRequest) ToModel() models.Comment {
	return models.Comment{
		EntryID:         d.EntryID,
		Content:         d.Content,
		ParentCommentID: d.ParentCommentID,
	}
}

// UpdateCommentRequest used for PUT /api/v1/comments/:comment_id
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse DTO for responses
type CommentResponse struct {
	ID              string        `json:"id"`
	EntryID         string        `json:"entry_id"`
	UserID          string        `json:"user_id"`
	ParentCommentID *string       `json:"parent_comment_id,omitempty"`
	Content         string        `json:"content"`
	IsEdited        bool          `json:"is_edited"`
	EditHistory     any           `json:"edit_history,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	User            *UserResponse `json:"user,omitempty"`
}

func FromCommentModel(c models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:              c.ID,
		EntryID:         c.EntryID,
		UserID:          c.UserID,
		ParentCommentID: c.ParentCommentID,
		Content:         c.Content,
		IsEdited:        c.IsEdited,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if len(c.EditHistory) > 0 {
		resp.EditHistory = c.EditHistory
	}
	if c.User != nil {
		user := FromUserModel(*c.User)
		resp.User = &user
	}
	return resp
}
