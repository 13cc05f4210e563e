package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"trimly-be/internal/entities"
	"trimly-be/internal/errs"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = pq.ErrorCode("23505")

// URLRepository defines the interface for URL database operations.
// All lookups exclude soft-deleted records; a tombstoned row is invisible
// to every read path.
type URLRepository interface {
	Create(shortCode, originalURL string, userID *string) (*entities.URL, error)
	FindByID(id string) (*entities.URL, error)
	FindByShortCode(shortCode string) (*entities.URL, error)
	GetByUserID(userID string) ([]*entities.URL, error)
	Update(id, originalURL string) (*entities.URL, error)
	IncrementClickCount(shortCode string) error
	SoftDelete(id string) error
}

type urlRepository struct {
	db *sql.DB
}

// NewURLRepository creates a new URL repository
func NewURLRepository(db *sql.DB) URLRepository {
	return &urlRepository{db: db}
}

const urlColumns = `id, short_code, original_url, user_id, click_count, created_at, updated_at, deleted_at`

func scanURL(row *sql.Row) (*entities.URL, error) {
	var url entities.URL
	err := row.Scan(
		&url.ID,
		&url.ShortCode,
		&url.OriginalURL,
		&url.UserID,
		&url.ClickCount,
		&url.CreatedAt,
		&url.UpdatedAt,
		&url.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// Create inserts a new URL into the database. A short code collision with a
// live record surfaces as errs.ErrConflict so callers can retry with a fresh code.
func (r *urlRepository) Create(shortCode, originalURL string, userID *string) (*entities.URL, error) {
	query := `
		INSERT INTO urls (short_code, original_url, user_id)
		VALUES ($1, $2, $3)
		RETURNING ` + urlColumns

	url, err := scanURL(r.db.QueryRow(query, shortCode, originalURL, userID))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("short code %q is taken: %w", shortCode, errs.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create URL: %w", err)
	}

	return url, nil
}

// FindByID finds a live URL by its id. Soft-deleted records are treated as nonexistent.
func (r *urlRepository) FindByID(id string) (*entities.URL, error) {
	query := `
		SELECT ` + urlColumns + `
		FROM urls
		WHERE id = $1 AND deleted_at IS NULL
	`

	url, err := scanURL(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find URL: %w", err)
	}

	return url, nil
}

// FindByShortCode finds a live URL by its short code.
func (r *urlRepository) FindByShortCode(shortCode string) (*entities.URL, error) {
	query := `
		SELECT ` + urlColumns + `
		FROM urls
		WHERE short_code = $1 AND deleted_at IS NULL
	`

	url, err := scanURL(r.db.QueryRow(query, shortCode))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find URL: %w", err)
	}

	return url, nil
}

// GetByUserID retrieves all live URLs owned by a user, newest first.
func (r *urlRepository) GetByUserID(userID string) ([]*entities.URL, error) {
	query := `
		SELECT ` + urlColumns + `
		FROM urls
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get URLs: %w", err)
	}
	defer rows.Close()

	var urls []*entities.URL
	for rows.Next() {
		var url entities.URL
		err := rows.Scan(
			&url.ID,
			&url.ShortCode,
			&url.OriginalURL,
			&url.UserID,
			&url.ClickCount,
			&url.CreatedAt,
			&url.UpdatedAt,
			&url.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan URL: %w", err)
		}
		urls = append(urls, &url)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating URLs: %w", err)
	}

	return urls, nil
}

// Update replaces the original URL and bumps updated_at.
func (r *urlRepository) Update(id, originalURL string) (*entities.URL, error) {
	query := `
		UPDATE urls
		SET original_url = $2, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + urlColumns

	url, err := scanURL(r.db.QueryRow(query, id, originalURL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update URL: %w", err)
	}

	return url, nil
}

// IncrementClickCount increments the click counter for a short code.
// A code that matches nothing is a no-op, not an error; the caller treats
// this as best-effort accounting.
func (r *urlRepository) IncrementClickCount(shortCode string) error {
	query := `
		UPDATE urls
		SET click_count = click_count + 1
		WHERE short_code = $1 AND deleted_at IS NULL
	`

	if _, err := r.db.Exec(query, shortCode); err != nil {
		return fmt.Errorf("failed to increment click count: %w", err)
	}
	return nil
}

// SoftDelete sets the tombstone on a live record. The tombstone is set at
// most once; a second delete of the same id reports not found.
func (r *urlRepository) SoftDelete(id string) error {
	query := `
		UPDATE urls
		SET deleted_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete URL: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errs.ErrNotFound
	}

	return nil
}
