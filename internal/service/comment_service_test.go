package service

import (
	"context"
	"encoding/json"
	"testing"

	"lexihub/internal/dto"
	"lexihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateComment_EntryMissing(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockEntries := new(MockEntryRepository)

	mockEntries.On("Exists", mock.Anything, "entry-1").Return(false, nil)

	svc := NewCommentService(mockComments, mockEntries)
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	_, err := svc.CreateComment(context.Background(), actor, dto.CreateCommentRequest{
		EntryID: "entry-1",
		Content: "hello",
	})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestCreateComment_ParentOnDifferentEntry(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockEntries := new(MockEntryRepository)

	mockEntries.On("Exists", mock.Anything, "entry-1").Return(true, nil)
	parentID := "comment-parent"
	mockComments.On("GetByID", mock.Anything, parentID).
		Return(&models.Comment{ID: parentID, EntryID: "entry-2"}, nil)

	svc := NewCommentService(mockComments, mockEntries)
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	_, err := svc.CreateComment(context.Background(), actor, dto.CreateCommentRequest{
		EntryID:         "entry-1",
		Content:         "reply",
		ParentCommentID: &parentID,
	})
	assert.ErrorIs(t, err, ErrInvalidParentComment)
}

func TestUpdateComment_NotAuthor(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockEntries := new(MockEntryRepository)

	mockComments.On("GetByID", mock.Anything, "comment-1").
		Return(&models.Comment{ID: "comment-1", UserID: "someone-else", Content: "original"}, nil)

	svc := NewCommentService(mockComments, mockEntries)
	actor := &models.User{ID: "user-1", Role: models.RoleAdmin}

	// Even admins cannot edit other people's comments.
	_, err := svc.UpdateComment(context.Background(), actor, "comment-1", dto.UpdateCommentRequest{Content: "changed"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateComment_AppendsEditHistory(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockEntries := new(MockEntryRepository)

	comment := &models.Comment{ID: "comment-1", UserID: "user-1", Content: "first version"}
	mockComments.On("GetByID", mock.Anything, "comment-1").Return(comment, nil)
	mockComments.On("Update", mock.Anything, comment).Return(nil)

	svc := NewCommentService(mockComments, mockEntries)
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	resp, err := svc.UpdateComment(context.Background(), actor, "comment-1", dto.UpdateCommentRequest{Content: "second version"})

	assert.NoError(t, err)
	assert.Equal(t, "second version", resp.Content)
	assert.True(t, resp.IsEdited)

	var history map[string]map[string]any
	assert.NoError(t, json.Unmarshal(comment.EditHistory, &history))
	assert.Len(t, history, 1)
	assert.Equal(t, "first version", history["0"]["old_content"])
	mockComments.AssertExpectations(t)
}

func TestUpdateComment_SameContentIsNoop(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockEntries := new(MockEntryRepository)

	comment := &models.Comment{ID: "comment-1", UserID: "user-1", Content: "unchanged"}
	mockComments.On("GetByID", mock.Anything, "comment-1").Return(comment, nil)

	svc := NewCommentService(mockComments, mockEntries)
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	resp, err := svc.UpdateComment(context.Background(), actor, "comment-1", dto.UpdateCommentRequest{Content: "unchanged"})

	assert.NoError(t, err)
	assert.False(t, resp.IsEdited)
	assert.Nil(t, comment.EditHistory)
	mockComments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteComment_AdminCanDeleteOthers(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockEntries := new(MockEntryRepository)

	mockComments.On("GetByID", mock.Anything, "comment-1").
		Return(&models.Comment{ID: "comment-1", UserID: "someone-else"}, nil)
	mockComments.On("Delete", mock.Anything, "comment-1").Return(nil)

	svc := NewCommentService(mockComments, mockEntries)
	admin := &models.User{ID: "admin-1", Role: models.RoleAdmin}

	assert.NoError(t, svc.DeleteComment(context.Background(), admin, "comment-1"))
	mockComments.AssertExpectations(t)
}

func TestDeleteComment_ContributorCannotDeleteOthers(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockEntries := new(MockEntryRepository)

	mockComments.On("GetByID", mock.Anything, "comment-1").
		Return(&models.Comment{ID: "comment-1", UserID: "someone-else"}, nil)

	svc := NewCommentService(mockComments, mockEntries)
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	err := svc.DeleteComment(context.Background(), actor, "comment-1")
	assert.ErrorIs(t, err, ErrForbidden)
}
