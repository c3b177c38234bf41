package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pazorg/candidatetrack/internal/domain"
)

// PostgresCandidateRepository implements domain.CandidateRepository using
// PostgreSQL. Nested structures are stored as JSONB with camelCase keys; the
// scalar columns stay snake_case.
type PostgresCandidateRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCandidateRepository creates a new candidate repository
func NewPostgresCandidateRepository(db *sql.DB, logger *slog.Logger) *PostgresCandidateRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCandidateRepository{
		db:     db,
		logger: logger,
	}
}

const candidateColumns = `
	id, first_name, last_name, email, phone, city, timestamp, status,
	admin_data, applicant_questionnaire, post_interview, assessment,
	score, fit_category
`

// Upsert writes the whole candidate row. Partial updates are deliberately
// unsupported: callers mutate the aggregate and persist it in one write.
func (r *PostgresCandidateRepository) Upsert(ctx context.Context, c *domain.Candidate) error {
	adminData, err := marshalNullable(c.AdminData)
	if err != nil {
		return fmt.Errorf("failed to encode admin data: %w", err)
	}
	questionnaire, err := marshalNullable(c.ApplicantQuestionnaire)
	if err != nil {
		return fmt.Errorf("failed to encode questionnaire: %w", err)
	}
	postInterview, err := marshalNullable(c.PostInterview)
	if err != nil {
		return fmt.Errorf("failed to encode post-interview: %w", err)
	}
	assessment, err := marshalNullable(c.Assessment)
	if err != nil {
		return fmt.Errorf("failed to encode assessment: %w", err)
	}

	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			city = EXCLUDED.city,
			timestamp = EXCLUDED.timestamp,
			status = EXCLUDED.status,
			admin_data = EXCLUDED.admin_data,
			applicant_questionnaire = EXCLUDED.applicant_questionnaire,
			post_interview = EXCLUDED.post_interview,
			assessment = EXCLUDED.assessment,
			score = EXCLUDED.score,
			fit_category = EXCLUDED.fit_category
	`

	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.City,
		c.Timestamp,
		c.Status,
		adminData,
		questionnaire,
		postInterview,
		assessment,
		nullableInt(c.Score),
		nullableString(c.FitCategory),
	)
	if err != nil {
		r.logger.Error("failed to upsert candidate",
			slog.String("id", c.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to upsert candidate: %w", err)
	}

	return nil
}

// GetByID retrieves a candidate by its short uppercase ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE id = $1
	`

	c, err := scanCandidate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("failed to get candidate by id",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	return c, nil
}

// GetByEmail retrieves the most recent candidate matching the email,
// case-insensitively. Callers pass the normalized form; the lower() guard
// also covers rows written before normalization existed.
func (r *PostgresCandidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE lower(email) = lower($1)
		ORDER BY timestamp DESC
		LIMIT 1
	`

	c, err := scanCandidate(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get candidate by email: %w", err)
	}

	return c, nil
}

// List returns all candidates newest-first
func (r *PostgresCandidateRepository) List(ctx context.Context) ([]*domain.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		ORDER BY timestamp DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list candidates",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			r.logger.Error("failed to scan candidate row",
				slog.String("error", err.Error()),
			)
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

// Delete removes a candidate row permanently
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (*domain.Candidate, error) {
	c := &domain.Candidate{}
	var (
		adminData     []byte
		questionnaire []byte
		postInterview []byte
		assessment    []byte
		score         sql.NullInt64
		fitCategory   sql.NullString
	)

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.City,
		&c.Timestamp,
		&c.Status,
		&adminData,
		&questionnaire,
		&postInterview,
		&assessment,
		&score,
		&fitCategory,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalNullable(adminData, &c.AdminData); err != nil {
		return nil, fmt.Errorf("failed to decode admin data: %w", err)
	}
	if err := unmarshalNullable(questionnaire, &c.ApplicantQuestionnaire); err != nil {
		return nil, fmt.Errorf("failed to decode questionnaire: %w", err)
	}
	if err := unmarshalNullable(postInterview, &c.PostInterview); err != nil {
		return nil, fmt.Errorf("failed to decode post-interview: %w", err)
	}
	if err := unmarshalNullable(assessment, &c.Assessment); err != nil {
		return nil, fmt.Errorf("failed to decode assessment: %w", err)
	}

	if score.Valid {
		v := int(score.Int64)
		c.Score = &v
	}
	if fitCategory.Valid {
		v := fitCategory.String
		c.FitCategory = &v
	}

	return c, nil
}

// marshalNullable maps a nil pointer to SQL NULL instead of the JSON string
// "null".
func marshalNullable[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalNullable[T any](data []byte, dst **T) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	*dst = v
	return nil
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
