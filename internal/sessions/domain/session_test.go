package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession("guid-1", "/notes/todo.fold")

	assert.Equal(t, int64(0), s.ID())
	assert.Equal(t, "guid-1", s.GUID())
	assert.Equal(t, "/notes/todo.fold", s.FilePath())
	assert.Equal(t, "", s.CursorPath())
	assert.Equal(t, 0, s.CursorOffset())
	assert.False(t, s.RevealCodes())
	assert.Equal(t, 0, s.WrapWidth())
	assert.False(t, s.IsDeleted())
	assert.Nil(t, s.DeletedAt())
	assert.False(t, s.CreatedAt().IsZero())
	assert.False(t, s.LastOpenedAt().IsZero())
}

func TestSession_SetCursorTouchesUpdatedAt(t *testing.T) {
	s := NewSession("guid-1", "/notes/todo.fold")
	before := s.UpdatedAt()

	time.Sleep(2 * time.Millisecond)
	s.SetCursor("2", 14)

	assert.Equal(t, "2", s.CursorPath())
	assert.Equal(t, 14, s.CursorOffset())
	assert.True(t, s.UpdatedAt().After(before), "UpdatedAt should advance")
}

func TestSession_SetRevealCodes(t *testing.T) {
	s := NewSession("guid-1", "/notes/todo.fold")

	s.SetRevealCodes(true)
	assert.True(t, s.RevealCodes())

	s.SetRevealCodes(false)
	assert.False(t, s.RevealCodes())
}

func TestSession_SetWrapWidthClampsNegative(t *testing.T) {
	s := NewSession("guid-1", "/notes/todo.fold")

	s.SetWrapWidth(100)
	assert.Equal(t, 100, s.WrapWidth())

	s.SetWrapWidth(-5)
	assert.Equal(t, 0, s.WrapWidth())
}

func TestSession_MarkOpened(t *testing.T) {
	s := NewSession("guid-1", "/notes/todo.fold")
	before := s.LastOpenedAt()

	time.Sleep(2 * time.Millisecond)
	s.MarkOpened()

	assert.True(t, s.LastOpenedAt().After(before))
}

func TestSession_MarkDeleted(t *testing.T) {
	s := NewSession("guid-1", "/notes/todo.fold")

	s.MarkDeleted()

	assert.True(t, s.IsDeleted())
	require.NotNil(t, s.DeletedAt())
	assert.False(t, s.DeletedAt().IsZero())
}

func TestSession_SetID(t *testing.T) {
	s := NewSession("guid-1", "/notes/todo.fold")

	s.SetID(42)
	assert.Equal(t, int64(42), s.ID())
}

func TestReconstituteSession_Roundtrip(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	opened := created.Add(time.Hour)
	updated := opened.Add(time.Minute)
	deleted := updated.Add(time.Minute)

	s := ReconstituteSession(
		7, "guid-7", "/notes/meeting.fold",
		"1.c0", 3,
		true, 72,
		created, opened, updated, &deleted,
	)

	assert.Equal(t, int64(7), s.ID())
	assert.Equal(t, "guid-7", s.GUID())
	assert.Equal(t, "/notes/meeting.fold", s.FilePath())
	assert.Equal(t, "1.c0", s.CursorPath())
	assert.Equal(t, 3, s.CursorOffset())
	assert.True(t, s.RevealCodes())
	assert.Equal(t, 72, s.WrapWidth())
	assert.Equal(t, created, s.CreatedAt())
	assert.Equal(t, opened, s.LastOpenedAt())
	assert.Equal(t, updated, s.UpdatedAt())
	require.NotNil(t, s.DeletedAt())
	assert.Equal(t, deleted, *s.DeletedAt())
	assert.True(t, s.IsDeleted())
}

func TestSessionNotFoundError_Message(t *testing.T) {
	err := &SessionNotFoundError{GUID: "guid-9"}
	assert.Contains(t, err.Error(), "guid-9")

	err = &SessionNotFoundError{FilePath: "/notes/todo.fold"}
	assert.Contains(t, err.Error(), "/notes/todo.fold")

	err = &SessionNotFoundError{}
	assert.Equal(t, "session not found", err.Error())
}
