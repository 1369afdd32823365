// Package sessions restores editing state across runs of the program.
// A session ties a file path to the last cursor location and view toggles;
// the service layer sits between the UI and the repository and keeps a
// short-lived read cache in front of the database.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/fold/internal/cachemanager"
	"github.com/zjrosen/fold/internal/editor"
	"github.com/zjrosen/fold/internal/log"
	"github.com/zjrosen/fold/internal/sessions/domain"
)

// cacheTTL bounds staleness of the by-file lookup cache. Sessions are only
// written by this process, so a short TTL is enough.
const cacheTTL = 5 * time.Minute

// Service coordinates session persistence for the UI layer.
type Service struct {
	repo   domain.SessionRepository
	cache  cachemanager.CacheManager[string, *domain.Session]
	byFile *cachemanager.ReadThroughCache[string, *domain.Session, string]
}

// NewService creates a Service over the given repository.
// When skipCache is true every lookup goes straight to the repository.
func NewService(repo domain.SessionRepository, skipCache bool) *Service {
	cache := cachemanager.NewInMemoryCacheManager[string, *domain.Session](
		"sessions", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval,
	)
	byFile := cachemanager.NewReadThroughCache[string, *domain.Session, string](
		cache,
		func(ctx context.Context, filePath string) (*domain.Session, error) {
			return repo.FindByFile(filePath)
		},
		skipCache,
	)
	return &Service{repo: repo, cache: cache, byFile: byFile}
}

// OpenForFile returns the session for filePath, creating one on first open.
// The session's lastOpenedAt is stamped and persisted.
func (s *Service) OpenForFile(ctx context.Context, filePath string) (*domain.Session, error) {
	session, err := s.byFile.Get(ctx, fileKey(filePath), filePath, cacheTTL)
	if err != nil {
		var notFound *domain.SessionNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		session = domain.NewSession(uuid.NewString(), filePath)
		log.Info(log.CatSession, "Creating session", "file", filePath, "guid", session.GUID())
	}

	session.MarkOpened()
	if err := s.repo.Save(session); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, fileKey(filePath), session, cacheTTL)
	return session, nil
}

// SaveEditorState persists the editor's cursor and view toggles onto the
// session. Called on quit and after significant navigation.
func (s *Service) SaveEditorState(ctx context.Context, session *domain.Session, ed *editor.Editor) error {
	pointer := ed.CursorPointer()
	session.SetCursor(EncodePointer(pointer), pointer.Offset)
	session.SetRevealCodes(ed.RevealCodes())

	if err := s.repo.Save(session); err != nil {
		return err
	}
	s.cache.Set(ctx, fileKey(session.FilePath()), session, cacheTTL)
	log.Debug(log.CatSession, "Saved editor state",
		"guid", session.GUID(), "path", session.CursorPath(), "offset", session.CursorOffset())
	return nil
}

// RestoreEditorState applies a saved session to the editor: reveal codes
// first (it changes which segments are selectable), then the cursor.
// Returns true when the saved cursor was restored exactly; a stale or
// malformed pointer degrades to the nearest selectable position.
func (s *Service) RestoreEditorState(session *domain.Session, ed *editor.Editor) bool {
	ed.SetRevealCodes(session.RevealCodes())

	if session.CursorPath() == "" {
		return false
	}
	parPath, spanPath, err := DecodePointer(session.CursorPath())
	if err != nil {
		log.Warn(log.CatSession, "Discarding malformed cursor path",
			"guid", session.GUID(), "path", session.CursorPath(), "error", err.Error())
		return false
	}

	pointer := editor.CursorPointer{
		ParagraphPath: parPath,
		SpanPath:      spanPath,
		Offset:        session.CursorOffset(),
		SegmentKind:   editor.SegmentText,
	}
	if ed.MoveToPointer(pointer) {
		return true
	}

	// The document changed since the session was saved.
	ed.EnsureCursorSelectable()
	log.Debug(log.CatSession, "Saved cursor no longer resolves",
		"guid", session.GUID(), "path", session.CursorPath())
	return false
}

// Forget soft-deletes the session with the given GUID and drops it from
// the cache.
func (s *Service) Forget(ctx context.Context, session *domain.Session) error {
	if err := s.repo.Delete(session.GUID()); err != nil {
		return err
	}
	return s.cache.Delete(ctx, fileKey(session.FilePath()))
}

// ListRecent returns up to limit sessions ordered by most recent open.
func (s *Service) ListRecent(limit int) ([]*domain.Session, error) {
	return s.repo.ListWithFilter(domain.ListFilter{Limit: limit})
}

func fileKey(filePath string) string {
	return "session:file:" + filePath
}
