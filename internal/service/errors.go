package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers. The error text is
// what ends up in the response "detail" field.
var (
	ErrUserNotFound         = errors.New("User not found")
	ErrEntryNotFound        = errors.New("Entry not found")
	ErrTranslationNotFound  = errors.New("Translation not found")
	ErrCommentNotFound      = errors.New("Comment not found")
	ErrSourceNotFound       = errors.New("Source not found")
	ErrRelationshipNotFound = errors.New("Relationship not found")
	ErrVoteNotFound         = errors.New("Vote not found")
	ErrBackupNotFound       = errors.New("Backup file not found")

	ErrForbidden = errors.New("Not enough permissions")

	ErrInvalidCode          = errors.New("Invalid or expired verification code")
	ErrInvalidToken         = errors.New("Could not validate credentials")
	ErrTooManyLoginRequests = errors.New("Too many verification code requests")

	ErrTranslationConflict  = errors.New("Translation already exists for this entry and language")
	ErrRelationshipConflict = errors.New("Relationship already exists between these entries")

	ErrInvalidRole             = errors.New("Invalid role")
	ErrInvalidEntryType        = errors.New("Invalid entry type")
	ErrInvalidRelationshipType = errors.New("Invalid relationship type")
	ErrInvalidParentComment    = errors.New("Parent comment must belong to the same entry")
	ErrInvalidBackupFilename   = errors.New("Invalid backup filename")
	ErrNoEntriesUpdated        = errors.New("No entries were updated")
)
