package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// Assessment is a saved calculation: the tool that produced it plus the raw
// request and response bodies.
type Assessment struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int             `json:"user_id"`
	Tool      string          `json:"tool"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	SaveAssessment(ctx context.Context, a *Assessment) error
	ListAssessments(ctx context.Context, userID int) ([]Assessment, error)
	GetAssessment(ctx context.Context, userID int, id uuid.UUID) (*Assessment, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assessments (
	id UUID PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	tool TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	input JSONB NOT NULL,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS assessments_user_idx ON assessments (user_id, created_at DESC);
`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate creates the tables when they do not exist yet.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetByLogin returns ErrNotFound for an unknown login.
func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"
	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrNotFound
		}
		return 0, "", err
	}
	return id, hash, nil
}

// SaveAssessment assigns ID and CreatedAt when they are zero.
func (r *PostgresRepository) SaveAssessment(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO assessments (id, user_id, tool, name, input, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, a.Tool, a.Name, []byte(a.Input), []byte(a.Result), a.CreatedAt)
	return err
}

func (r *PostgresRepository) ListAssessments(ctx context.Context, userID int) ([]Assessment, error) {
	query := `SELECT id, user_id, tool, name, input, result, created_at
		FROM assessments WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var a Assessment
		if err := scanAssessment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetAssessment(ctx context.Context, userID int, id uuid.UUID) (*Assessment, error) {
	query := `SELECT id, user_id, tool, name, input, result, created_at
		FROM assessments WHERE id=$1 AND user_id=$2`
	var a Assessment
	err := scanAssessment(r.db.QueryRowContext(ctx, query, id, userID), &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s scanner, a *Assessment) error {
	var input, result []byte
	if err := s.Scan(&a.ID, &a.UserID, &a.Tool, &a.Name, &input, &result, &a.CreatedAt); err != nil {
		return err
	}
	a.Input = input
	a.Result = result
	return nil
}
