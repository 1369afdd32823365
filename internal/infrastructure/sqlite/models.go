package sqlite

import (
	"time"

	"github.com/zjrosen/fold/internal/sessions/domain"
)

// SessionModel represents the database row for the sessions table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type SessionModel struct {
	ID           int64
	GUID         string
	FilePath     string
	CursorPath   string
	CursorOffset int
	RevealCodes  bool
	WrapWidth    int

	CreatedAt    int64  // Unix timestamp
	LastOpenedAt int64  // Unix timestamp
	UpdatedAt    int64  // Unix timestamp
	DeletedAt    *int64 // Unix timestamp, nullable
}

// toSessionModel converts a domain Session entity to a database SessionModel.
func toSessionModel(s *domain.Session) *SessionModel {
	m := &SessionModel{
		ID:           s.ID(),
		GUID:         s.GUID(),
		FilePath:     s.FilePath(),
		CursorPath:   s.CursorPath(),
		CursorOffset: s.CursorOffset(),
		RevealCodes:  s.RevealCodes(),
		WrapWidth:    s.WrapWidth(),
		CreatedAt:    s.CreatedAt().Unix(),
		LastOpenedAt: s.LastOpenedAt().Unix(),
		UpdatedAt:    s.UpdatedAt().Unix(),
	}
	if s.DeletedAt() != nil {
		deletedAt := s.DeletedAt().Unix()
		m.DeletedAt = &deletedAt
	}
	return m
}

// toDomain converts a database SessionModel to a domain Session entity.
func (m *SessionModel) toDomain() *domain.Session {
	var deletedAt *time.Time
	if m.DeletedAt != nil {
		t := time.Unix(*m.DeletedAt, 0)
		deletedAt = &t
	}
	return domain.ReconstituteSession(
		m.ID,
		m.GUID,
		m.FilePath,
		m.CursorPath,
		m.CursorOffset,
		m.RevealCodes,
		m.WrapWidth,
		time.Unix(m.CreatedAt, 0),
		time.Unix(m.LastOpenedAt, 0),
		time.Unix(m.UpdatedAt, 0),
		deletedAt,
	)
}
