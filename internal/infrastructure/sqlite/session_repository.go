package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/fold/internal/sessions/domain"
)

// sessionColumns is the list of columns to select for session queries.
const sessionColumns = `id, guid, file_path, cursor_path, cursor_offset, reveal_codes, wrap_width,
	created_at, last_opened_at, updated_at, deleted_at`

// sessionRepository implements domain.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new sessionRepository instance.
func newSessionRepository(db *sql.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

// Ensure sessionRepository implements domain.SessionRepository.
var _ domain.SessionRepository = (*sessionRepository)(nil)

// scanSession scans a row into a SessionModel.
func scanSession(scanner interface{ Scan(...any) error }) (*SessionModel, error) {
	var model SessionModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.FilePath,
		&model.CursorPath, &model.CursorOffset, &model.RevealCodes, &model.WrapWidth,
		&model.CreatedAt, &model.LastOpenedAt, &model.UpdatedAt, &model.DeletedAt,
	)
	return &model, err
}

// Save persists a session to the database.
// For new sessions (ID == 0), inserts a new row and sets the session ID.
// For existing sessions (ID > 0), updates the existing row.
func (r *sessionRepository) Save(session *domain.Session) error {
	model := toSessionModel(session)

	if session.ID() == 0 {
		result, err := r.db.Exec(
			`INSERT INTO sessions (
				guid, file_path, cursor_path, cursor_offset, reveal_codes, wrap_width,
				created_at, last_opened_at, updated_at, deleted_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			model.GUID, model.FilePath, model.CursorPath, model.CursorOffset,
			model.RevealCodes, model.WrapWidth,
			model.CreatedAt, model.LastOpenedAt, model.UpdatedAt, model.DeletedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		session.SetID(id)
		return nil
	}

	_, err := r.db.Exec(
		`UPDATE sessions SET
			cursor_path = ?, cursor_offset = ?, reveal_codes = ?, wrap_width = ?,
			last_opened_at = ?, updated_at = ?, deleted_at = ?
		WHERE id = ?`,
		model.CursorPath, model.CursorOffset, model.RevealCodes, model.WrapWidth,
		model.LastOpenedAt, model.UpdatedAt, model.DeletedAt,
		model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// FindByGUID retrieves a session by its GUID.
// Returns SessionNotFoundError if no matching session exists.
// Soft-deleted sessions are not returned.
func (r *sessionRepository) FindByGUID(guid string) (*domain.Session, error) {
	row := r.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE guid = ? AND deleted_at IS NULL`,
		guid,
	)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SessionNotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session by guid: %w", err)
	}
	return model.toDomain(), nil
}

// FindByFile retrieves the most recently opened session for a file.
// Returns SessionNotFoundError if no matching session exists.
// Soft-deleted sessions are not returned.
func (r *sessionRepository) FindByFile(filePath string) (*domain.Session, error) {
	row := r.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE file_path = ? AND deleted_at IS NULL
		 ORDER BY last_opened_at DESC, id DESC LIMIT 1`,
		filePath,
	)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SessionNotFoundError{FilePath: filePath}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session by file: %w", err)
	}
	return model.toDomain(), nil
}

// ListWithFilter retrieves sessions matching the given filter criteria.
// Results are ordered by last_opened_at descending (most recent first).
func (r *sessionRepository) ListWithFilter(filter domain.ListFilter) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE 1=1`
	args := []any{}

	if filter.FilePath != "" {
		query += ` AND file_path = ?`
		args = append(args, filter.FilePath)
	}

	if !filter.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	query += ` ORDER BY last_opened_at DESC, id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		model, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}

// Delete performs a soft delete on a session by setting its deletedAt timestamp.
// Returns SessionNotFoundError if no matching session exists.
func (r *sessionRepository) Delete(guid string) error {
	now := time.Now().Unix()
	result, err := r.db.Exec(
		`UPDATE sessions SET deleted_at = ?, updated_at = ?
		 WHERE guid = ? AND deleted_at IS NULL`,
		now, now, guid,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.SessionNotFoundError{GUID: guid}
	}
	return nil
}

// DeleteAllForFile performs a hard delete of all sessions for a file.
func (r *sessionRepository) DeleteAllForFile(filePath string) error {
	_, err := r.db.Exec(
		`DELETE FROM sessions WHERE file_path = ?`,
		filePath,
	)
	if err != nil {
		return fmt.Errorf("failed to delete sessions for file: %w", err)
	}
	return nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *sessionRepository) Close() error {
	return nil
}
