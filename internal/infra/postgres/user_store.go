package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"golang.org/x/sync/singleflight"

	"learner-activity-service/internal/domain"
)

const uniqueViolation = "23505"

// UserStore stores each user as a JSONB document next to a version counter.
// Save is a conditional UPDATE on that counter.
type UserStore struct {
	pool *pgxpool.Pool
	sf   singleflight.Group
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

type userRow struct {
	data    []byte
	version int64
}

func (s *UserStore) Create(ctx context.Context, user domain.User) (domain.User, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal user: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, email, data, version, registered_at) VALUES ($1, $2, $3::jsonb, 1, $4)`,
		user.ID, user.Email, string(data), user.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	user.Version = 1
	return user, nil
}

// Load reads the current record for a read-modify-write cycle. It always goes
// to the database so the version it returns is never older than the call.
func (s *UserStore) Load(ctx context.Context, userID string) (domain.User, error) {
	row, err := s.loadRow(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	return decodeUser(row)
}

// Snapshot is a read-only Load. Concurrent snapshots of one user share a
// single query; the result must not be passed to Save.
func (s *UserStore) Snapshot(ctx context.Context, userID string) (domain.User, error) {
	row, err := s.shared(ctx, userID, s.loadRow)
	if err != nil {
		return domain.User{}, err
	}
	return decodeUser(row)
}

// shared runs load once per key for all concurrent callers. The query runs
// detached from any single caller's cancellation; each caller still stops
// waiting when its own ctx is done.
func (s *UserStore) shared(ctx context.Context, key string, load func(context.Context, string) (userRow, error)) (userRow, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(key, func() (interface{}, error) {
		return load(flightCtx, key)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return userRow{}, res.Err
		}
		return res.Val.(userRow), nil
	case <-ctx.Done():
		return userRow{}, ctx.Err()
	}
}

func (s *UserStore) loadRow(ctx context.Context, userID string) (userRow, error) {
	var row userRow
	err := s.pool.QueryRow(ctx, `SELECT data, version FROM users WHERE id=$1`, userID).Scan(&row.data, &row.version)
	if errors.Is(err, pgx.ErrNoRows) {
		return userRow{}, domain.ErrUserNotFound
	}
	if err != nil {
		return userRow{}, fmt.Errorf("load user: %w", err)
	}
	return row, nil
}

func (s *UserStore) Save(ctx context.Context, user domain.User) (domain.User, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal user: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET data=$1::jsonb, email=$2, version=version+1 WHERE id=$3 AND version=$4`,
		string(data), user.Email, user.ID, user.Version)
	if err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, user.ID).Scan(&exists); err != nil {
			return domain.User{}, fmt.Errorf("save user: %w", err)
		}
		if !exists {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, domain.ErrConflict
	}
	user.Version++
	return user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var row userRow
	err := s.pool.QueryRow(ctx, `SELECT data, version FROM users WHERE email=$1`, email).Scan(&row.data, &row.version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return decodeUser(row)
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT data, version FROM users ORDER BY registered_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var row userRow
		if err := rows.Scan(&row.data, &row.version); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		user, err := decodeUser(row)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UserStore) Delete(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func decodeUser(row userRow) (domain.User, error) {
	var user domain.User
	if err := json.Unmarshal(row.data, &user); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	user.Version = row.version
	return user, nil
}
