package domain

import "fmt"

// ListFilter provides filtering options for listing sessions.
type ListFilter struct {
	// FilePath filters sessions to a single file.
	// If empty, sessions for all files are included.
	FilePath string

	// Limit restricts the number of sessions returned.
	// If 0, no limit is applied.
	Limit int

	// IncludeDeleted includes soft-deleted sessions in results.
	// By default, deleted sessions are excluded.
	IncludeDeleted bool
}

// SessionRepository defines the persistence interface for Session entities.
// Implementations may use SQLite, in-memory storage, or other backends.
type SessionRepository interface {
	// Save persists a session to the repository.
	// For new sessions (ID == 0), this creates a new record and sets the ID.
	// For existing sessions (ID > 0), this updates the existing record.
	Save(session *Session) error

	// FindByGUID retrieves a session by its GUID.
	// Returns SessionNotFoundError if no matching session exists.
	// Soft-deleted sessions are not returned.
	FindByGUID(guid string) (*Session, error)

	// FindByFile retrieves the most recently opened session for a file.
	// Returns SessionNotFoundError if no matching session exists.
	// Soft-deleted sessions are not returned.
	FindByFile(filePath string) (*Session, error)

	// ListWithFilter retrieves sessions matching the given filter criteria.
	// Results are ordered by last_opened_at descending (most recent first).
	ListWithFilter(filter ListFilter) ([]*Session, error)

	// Delete performs a soft delete on a session by setting its deletedAt
	// timestamp. Returns SessionNotFoundError if no matching session exists.
	Delete(guid string) error

	// DeleteAllForFile performs a hard delete of all sessions for a file.
	DeleteAllForFile(filePath string) error

	// Close releases any resources held by the repository.
	Close() error
}

// SessionNotFoundError indicates no session matched the lookup.
type SessionNotFoundError struct {
	GUID     string
	FilePath string
}

func (e *SessionNotFoundError) Error() string {
	if e.GUID != "" {
		return fmt.Sprintf("session not found: guid=%s", e.GUID)
	}
	if e.FilePath != "" {
		return fmt.Sprintf("session not found for file: %s", e.FilePath)
	}
	return "session not found"
}
