package service

import (
	"context"
	"testing"

	"lexihub/internal/cache"
	"lexihub/internal/config"
	"lexihub/internal/dto"
	"lexihub/internal/models"
	"lexihub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTestEntryService(entries *MockEntryRepository, rels *MockRelationshipRepository, votes *MockVoteRepository) EntryService {
	return NewEntryService(entries, rels, votes, &cache.MetadataCache{}, &config.Config{FuzzyThreshold: 0.3})
}

func strPtr(s string) *string { return &s }

func TestListEntries_InvalidEntryType(t *testing.T) {
	svc := newTestEntryService(new(MockEntryRepository), new(MockRelationshipRepository), new(MockVoteRepository))

	_, err := svc.ListEntries(context.Background(), repository.EntryFilter{EntryType: "galaxy"})
	assert.ErrorIs(t, err, ErrInvalidEntryType)
}

func TestCreateEntry_StampsAuthorAndWritesHistory(t *testing.T) {
	mockEntries := new(MockEntryRepository)

	var created *models.Entry
	mockEntries.On("Create", mock.Anything, mock.AnythingOfType("*models.Entry")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Entry)
			created.ID = "entry-1"
		}).Return(nil)

	var history *models.EntryHistory
	mockEntries.On("CreateHistory", mock.Anything, mock.AnythingOfType("*models.EntryHistory")).
		Run(func(args mock.Arguments) {
			history = args.Get(1).(*models.EntryHistory)
		}).Return(nil)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), new(MockVoteRepository))
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	resp, err := svc.CreateEntry(context.Background(), actor, dto.CreateEntryRequest{
		PrimaryName:  "Chang'an",
		LanguageCode: "zh",
		EntryType:    strPtr(models.EntryTypePlaceName),
	})

	assert.NoError(t, err)
	assert.Equal(t, "user-1", resp.CreatedBy)
	assert.Equal(t, "user-1", resp.UpdatedBy)
	assert.NotNil(t, history)
	assert.Equal(t, models.ChangeCreated, history.ChangeType)
	assert.Equal(t, "entry-1", history.EntryID)
	assert.Nil(t, history.OldValues)
	assert.NotEmpty(t, history.NewValues)
}

func TestUpdateEntry_NonOwnerContributorForbidden(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockEntries.On("GetByID", mock.Anything, "entry-1", false).
		Return(&models.Entry{ID: "entry-1", CreatedBy: "owner"}, nil)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), new(MockVoteRepository))
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	_, err := svc.UpdateEntry(context.Background(), actor, "entry-1", dto.UpdateEntryRequest{PrimaryName: strPtr("new")})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateEntry_VerifiedTranslatorAllowed(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	entry := &models.Entry{ID: "entry-1", CreatedBy: "owner", PrimaryName: "old"}
	mockEntries.On("GetByID", mock.Anything, "entry-1", false).Return(entry, nil)
	mockEntries.On("Update", mock.Anything, entry).Return(nil)
	mockEntries.On("CreateHistory", mock.Anything, mock.AnythingOfType("*models.EntryHistory")).Return(nil)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), new(MockVoteRepository))
	actor := &models.User{ID: "translator-1", Role: models.RoleVerifiedTranslator}

	resp, err := svc.UpdateEntry(context.Background(), actor, "entry-1", dto.UpdateEntryRequest{PrimaryName: strPtr("new")})

	assert.NoError(t, err)
	assert.Equal(t, "new", resp.PrimaryName)
	assert.Equal(t, "translator-1", resp.UpdatedBy)
	mockEntries.AssertExpectations(t)
}

func TestBulkUpdateEntries_ContributorRestrictedToOwn(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockEntries.On("BulkUpdate", mock.Anything, []string{"e1", "e2"}, mock.Anything, "user-1").
		Return([]models.Entry{{ID: "e1", LanguageCode: "ja", CreatedBy: "user-1"}}, nil)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), new(MockVoteRepository))
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	updated, err := svc.BulkUpdateEntries(context.Background(), actor, dto.BulkUpdateEntriesRequest{
		EntryIDs: []string{"e1", "e2"},
		Updates:  dto.BulkEntryUpdates{LanguageCode: strPtr("ja")},
	})

	assert.NoError(t, err)
	assert.Len(t, updated, 1)
	assert.Equal(t, "e1", updated[0].ID)
	assert.Equal(t, "ja", updated[0].LanguageCode)
	mockEntries.AssertExpectations(t)
}

func TestBulkUpdateEntries_NothingMatched(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockEntries.On("BulkUpdate", mock.Anything, []string{"e1"}, mock.Anything, "").
		Return([]models.Entry{}, nil)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), new(MockVoteRepository))
	admin := &models.User{ID: "admin-1", Role: models.RoleAdmin}

	_, err := svc.BulkUpdateEntries(context.Background(), admin, dto.BulkUpdateEntriesRequest{
		EntryIDs: []string{"e1"},
		Updates:  dto.BulkEntryUpdates{IsVerified: boolPtr(true)},
	})
	assert.ErrorIs(t, err, ErrNoEntriesUpdated)
}

func boolPtr(b bool) *bool { return &b }

func TestDeleteEntry_VerifiedTranslatorCannotDeleteOthers(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockEntries.On("GetByID", mock.Anything, "entry-1", false).
		Return(&models.Entry{ID: "entry-1", CreatedBy: "owner"}, nil)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), new(MockVoteRepository))
	actor := &models.User{ID: "translator-1", Role: models.RoleVerifiedTranslator}

	err := svc.DeleteEntry(context.Background(), actor, "entry-1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteEntry_MissingEntry(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockEntries.On("GetByID", mock.Anything, "entry-1", false).
		Return(nil, gorm.ErrRecordNotFound)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), new(MockVoteRepository))
	admin := &models.User{ID: "admin-1", Role: models.RoleAdmin}

	err := svc.DeleteEntry(context.Background(), admin, "entry-1")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestVerifyEntry_SetsFlagsAndHistory(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	entry := &models.Entry{ID: "entry-1", CreatedBy: "owner"}
	mockEntries.On("GetByID", mock.Anything, "entry-1", false).Return(entry, nil)
	mockEntries.On("Update", mock.Anything, entry).Return(nil)

	var history *models.EntryHistory
	mockEntries.On("CreateHistory", mock.Anything, mock.AnythingOfType("*models.EntryHistory")).
		Run(func(args mock.Arguments) {
			history = args.Get(1).(*models.EntryHistory)
		}).Return(nil)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), new(MockVoteRepository))
	translator := &models.User{ID: "translator-1", Role: models.RoleVerifiedTranslator}

	resp, err := svc.VerifyEntry(context.Background(), translator, "entry-1", dto.VerifyEntryRequest{Notes: strPtr("checked against source")})

	assert.NoError(t, err)
	assert.True(t, resp.IsVerified)
	assert.Equal(t, "checked against source", *resp.VerificationNotes)
	assert.Equal(t, models.ChangeVerified, history.ChangeType)
}

func TestGetEntry_AttachesViewerVotes(t *testing.T) {
	mockEntries := new(MockEntryRepository)
	mockVotes := new(MockVoteRepository)

	entry := &models.Entry{
		ID:          "entry-1",
		PrimaryName: "dao",
		Translations: []models.Translation{
			{ID: "t1", EntryID: "entry-1", TranslatedName: "way"},
			{ID: "t2", EntryID: "entry-1", TranslatedName: "path"},
		},
	}
	mockEntries.On("GetByID", mock.Anything, "entry-1", true).Return(entry, nil)
	mockVotes.On("VotesForTranslations", mock.Anything, "user-1", []string{"t1", "t2"}).
		Return(map[string]string{"t2": models.VoteUp}, nil)

	svc := newTestEntryService(mockEntries, new(MockRelationshipRepository), mockVotes)
	viewer := &models.User{ID: "user-1", Role: models.RoleContributor}

	resp, err := svc.GetEntry(context.Background(), viewer, "entry-1")

	assert.NoError(t, err)
	assert.Nil(t, resp.Translations[0].UserVote)
	assert.Equal(t, models.VoteUp, *resp.Translations[1].UserVote)
}

func TestCreateRelationship_InvalidType(t *testing.T) {
	svc := newTestEntryService(new(MockEntryRepository), new(MockRelationshipRepository), new(MockVoteRepository))
	actor := &models.User{ID: "user-1", Role: models.RoleContributor}

	_, err := svc.CreateRelationship(context.Background(), actor, "entry-1", dto.CreateRelationshipRequest{
		TargetEntryID:    "entry-2",
		RelationshipType: "rhymes_with",
	})
	assert.ErrorIs(t, err, ErrInvalidRelationshipType)
}
