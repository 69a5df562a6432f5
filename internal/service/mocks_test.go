package service

import (
	"context"
	"time"

	"lexihub/internal/models"
	"lexihub/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks for the repository interfaces, shared by the
// service tests in this package.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, skip, limit int) ([]models.User, int64, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CreateVerificationCode(ctx context.Context, code *models.VerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockUserRepository) NewestUsableCode(ctx context.Context, userID string, now time.Time) (*models.VerificationCode, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationCode), args.Error(1)
}

func (m *MockUserRepository) MarkCodeUsed(ctx context.Context, code *models.VerificationCode, usedAt time.Time) error {
	args := m.Called(ctx, code, usedAt)
	return args.Error(0)
}

func (m *MockUserRepository) ActivitySummary(ctx context.Context, userID string) (*repository.UserActivity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserActivity), args.Error(1)
}

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) List(ctx context.Context, filter repository.EntryFilter, fuzzyThreshold float64) ([]models.Entry, int64, error) {
	args := m.Called(ctx, filter, fuzzyThreshold)
	return args.Get(0).([]models.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string, withTranslations bool) (*models.Entry, error) {
	args := m.Called(ctx, id, withTranslations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *MockEntryRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *models.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) BulkUpdate(ctx context.Context, ids []string, updates map[string]any, restrictToCreator string) ([]models.Entry, error) {
	args := m.Called(ctx, ids, updates, restrictToCreator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}

func (m *MockEntryRepository) DeleteCascade(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntryRepository) TotalCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) CountUpdatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) NewestUpdated(ctx context.Context, limit int) ([]models.Entry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Entry), args.Error(1)
}

func (m *MockEntryRepository) WithNewestTranslations(ctx context.Context, limit int) ([]models.Entry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Entry), args.Error(1)
}

func (m *MockEntryRepository) WithNewestComments(ctx context.Context, limit int) ([]repository.EntryWithComment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repository.EntryWithComment), args.Error(1)
}

func (m *MockEntryRepository) CreateHistory(ctx context.Context, h *models.EntryHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockEntryRepository) ListHistory(ctx context.Context, entryID string) ([]models.EntryHistory, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).([]models.EntryHistory), args.Error(1)
}

type MockTranslationRepository struct {
	mock.Mock
}

func (m *MockTranslationRepository) ListByEntry(ctx context.Context, entryID string) ([]models.Translation, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).([]models.Translation), args.Error(1)
}

func (m *MockTranslationRepository) GetByID(ctx context.Context, id string) (*models.Translation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Translation), args.Error(1)
}

func (m *MockTranslationRepository) Create(ctx context.Context, t *models.Translation) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTranslationRepository) Update(ctx context.Context, t *models.Translation) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTranslationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) GetByTranslationAndUser(ctx context.Context, translationID, userID string) (*models.TranslationVote, error) {
	args := m.Called(ctx, translationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TranslationVote), args.Error(1)
}

func (m *MockVoteRepository) CreateOrUpdate(ctx context.Context, translationID, userID, voteType string) (*models.TranslationVote, error) {
	args := m.Called(ctx, translationID, userID, voteType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TranslationVote), args.Error(1)
}

func (m *MockVoteRepository) Delete(ctx context.Context, translationID, userID string) error {
	args := m.Called(ctx, translationID, userID)
	return args.Error(0)
}

func (m *MockVoteRepository) Recalculate(ctx context.Context, translationID string) (int, int, error) {
	args := m.Called(ctx, translationID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockVoteRepository) VotesForTranslations(ctx context.Context, userID string, translationIDs []string) (map[string]string, error) {
	args := m.Called(ctx, userID, translationIDs)
	return args.Get(0).(map[string]string), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) ListByEntry(ctx context.Context, entryID string) ([]models.Comment, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRelationshipRepository struct {
	mock.Mock
}

func (m *MockRelationshipRepository) ListByEntry(ctx context.Context, entryID string) ([]models.EntryRelationship, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).([]models.EntryRelationship), args.Error(1)
}

func (m *MockRelationshipRepository) GetByID(ctx context.Context, id string) (*models.EntryRelationship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EntryRelationship), args.Error(1)
}

func (m *MockRelationshipRepository) Create(ctx context.Context, rel *models.EntryRelationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMailer records deliveries instead of talking to SMTP.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationCode(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}
