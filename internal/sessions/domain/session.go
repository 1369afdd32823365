// Package domain provides the pure domain layer for editing sessions with no
// infrastructure dependencies.
//
// A session records where the user left off in a file: the cursor location,
// the reveal-codes toggle, and when the file was last opened. The domain
// layer has no knowledge of persistence concerns; the SessionRepository
// interface abstracts those away.
package domain

import "time"

// Session represents a domain entity for per-file editing sessions.
// All fields are unexported to enforce encapsulation; use the constructor
// and getter methods to access data.
type Session struct {
	id       int64
	guid     string
	filePath string

	// Cursor state at last close. CursorPath is the encoded paragraph
	// path; the sessions service owns the encoding.
	cursorPath   string
	cursorOffset int

	// View state
	revealCodes bool
	wrapWidth   int // 0 means follow the configured default

	// Timestamps
	createdAt    time.Time
	lastOpenedAt time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewSession creates a new Session for the given file.
// The createdAt, lastOpenedAt, and updatedAt timestamps are set to the
// current time. The ID is left as zero; it will be assigned by the
// persistence layer.
func NewSession(guid, filePath string) *Session {
	now := time.Now()
	return &Session{
		id:           0,
		guid:         guid,
		filePath:     filePath,
		cursorPath:   "",
		cursorOffset: 0,
		revealCodes:  false,
		wrapWidth:    0,
		createdAt:    now,
		lastOpenedAt: now,
		updatedAt:    now,
		deletedAt:    nil,
	}
}

// ReconstituteSession creates a Session from existing data, typically when
// hydrating from the database. All fields are provided explicitly.
func ReconstituteSession(
	id int64,
	guid, filePath string,
	cursorPath string,
	cursorOffset int,
	revealCodes bool,
	wrapWidth int,
	createdAt, lastOpenedAt, updatedAt time.Time,
	deletedAt *time.Time,
) *Session {
	return &Session{
		id:           id,
		guid:         guid,
		filePath:     filePath,
		cursorPath:   cursorPath,
		cursorOffset: cursorOffset,
		revealCodes:  revealCodes,
		wrapWidth:    wrapWidth,
		createdAt:    createdAt,
		lastOpenedAt: lastOpenedAt,
		updatedAt:    updatedAt,
		deletedAt:    deletedAt,
	}
}

// ID returns the database identifier for this session.
// Returns 0 for newly created sessions that haven't been persisted.
func (s *Session) ID() int64 {
	return s.id
}

// SetID assigns the database identifier. Called by the persistence layer
// after the first insert.
func (s *Session) SetID(id int64) {
	s.id = id
}

// GUID returns the globally unique identifier for this session.
func (s *Session) GUID() string {
	return s.guid
}

// FilePath returns the absolute path of the file this session belongs to.
func (s *Session) FilePath() string {
	return s.filePath
}

// CursorPath returns the encoded paragraph path of the saved cursor.
// Empty means the cursor was at the document start.
func (s *Session) CursorPath() string {
	return s.cursorPath
}

// CursorOffset returns the rune offset of the saved cursor within its segment.
func (s *Session) CursorOffset() int {
	return s.cursorOffset
}

// RevealCodes returns whether reveal codes was active when the session
// was last saved.
func (s *Session) RevealCodes() bool {
	return s.revealCodes
}

// WrapWidth returns the saved wrap width override, or 0 when the session
// follows the configured default.
func (s *Session) WrapWidth() int {
	return s.wrapWidth
}

// CreatedAt returns when this session was first created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastOpenedAt returns when the file was last opened under this session.
func (s *Session) LastOpenedAt() time.Time {
	return s.lastOpenedAt
}

// UpdatedAt returns when this session was last modified.
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// DeletedAt returns the soft-delete timestamp, or nil if the session is live.
func (s *Session) DeletedAt() *time.Time {
	return s.deletedAt
}

// IsDeleted reports whether the session has been soft-deleted.
func (s *Session) IsDeleted() bool {
	return s.deletedAt != nil
}

// SetCursor records the cursor location to restore on the next open.
func (s *Session) SetCursor(path string, offset int) {
	s.cursorPath = path
	s.cursorOffset = offset
	s.touch()
}

// SetRevealCodes records the reveal-codes toggle state.
func (s *Session) SetRevealCodes(enabled bool) {
	s.revealCodes = enabled
	s.touch()
}

// SetWrapWidth records a per-session wrap width override.
// Zero clears the override.
func (s *Session) SetWrapWidth(width int) {
	if width < 0 {
		width = 0
	}
	s.wrapWidth = width
	s.touch()
}

// MarkOpened stamps lastOpenedAt with the current time.
func (s *Session) MarkOpened() {
	s.lastOpenedAt = time.Now()
	s.touch()
}

// MarkDeleted soft-deletes the session.
func (s *Session) MarkDeleted() {
	now := time.Now()
	s.deletedAt = &now
	s.touch()
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}
