package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/netflim/movie-reactions/internal/model"
)

// UserRepo provides access to the users table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user for the given session token and returns it.
// A UNIQUE violation on session_id is passed through to the caller, which
// GetOrCreate relies on to resolve concurrent first-use races.
func (r *UserRepo) Create(ctx context.Context, sessionID string) (model.User, error) {
	now := nowMillis()
	u := model.User{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		CreatedAt: fromMillis(now),
		UpdatedAt: fromMillis(now),
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, session_id, created_at, updated_at) VALUES (?,?,?,?)",
		u.ID, u.SessionID, now, now)
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// GetBySessionID fetches a user by session token.  Returns ErrUserNotFound
// when no row exists; callers that serve reads use this directly so that
// checking status never creates a user as a side effect.
func (r *UserRepo) GetBySessionID(ctx context.Context, sessionID string) (model.User, error) {
	var (
		u                    model.User
		createdMs, updatedMs int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, session_id, created_at, updated_at FROM users WHERE session_id = ? LIMIT 1",
		sessionID).Scan(&u.ID, &u.SessionID, &createdMs, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	u.CreatedAt = fromMillis(createdMs)
	u.UpdatedAt = fromMillis(updatedMs)
	return u, nil
}

// GetOrCreate resolves a session token to a user, creating one on first
// sight.  Two simultaneous requests with the same unseen token race on the
// insert; the UNIQUE constraint on session_id rejects the loser, which is
// then resolved by re-reading the row the winner created.
func (r *UserRepo) GetOrCreate(ctx context.Context, sessionID string) (model.User, error) {
	u, err := r.GetBySessionID(ctx, sessionID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return model.User{}, err
	}
	u, err = r.Create(ctx, sessionID)
	if isUniqueViolation(err) {
		return r.GetBySessionID(ctx, sessionID)
	}
	return u, err
}

// Stats counts the user's reactions partitioned by is_liked.
func (r *UserRepo) Stats(ctx context.Context, userID string) (model.UserStats, error) {
	var s model.UserStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN is_liked = 1 THEN 1 END),
			COUNT(CASE WHEN is_liked = 0 THEN 1 END)
		FROM likes
		WHERE user_id = ?`, userID).
		Scan(&s.TotalReactions, &s.LikedMovies, &s.DislikedMovies)
	return s, err
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// GetAll lists every user, newest first.  Admin use only.
func (r *UserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, session_id, created_at, updated_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var (
			u                    model.User
			createdMs, updatedMs int64
		)
		if err := rows.Scan(&u.ID, &u.SessionID, &createdMs, &updatedMs); err != nil {
			return nil, err
		}
		u.CreatedAt = fromMillis(createdMs)
		u.UpdatedAt = fromMillis(updatedMs)
		users = append(users, u)
	}
	return users, rows.Err()
}
