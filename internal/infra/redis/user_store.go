package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"learner-activity-service/internal/domain"
)

// UserStore keeps each user as a hash:
//
//	HSET activity:user:{id} data {json} version {n}
//	SET  activity:email:{email} {id}
//	ZADD activity:users {registeredAt} {id}
//
// Saves run inside WATCH/MULTI on the user key so a concurrent writer turns
// into domain.ErrConflict instead of a lost update.
type UserStore struct {
	client *redis.Client
}

func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

func (s *UserStore) Create(ctx context.Context, user domain.User) (domain.User, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal user: %w", err)
	}
	ok, err := s.client.SetNX(ctx, emailKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return domain.User{}, fmt.Errorf("reserve email: %w", err)
	}
	if !ok {
		return domain.User{}, domain.ErrEmailTaken
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, userKey(user.ID), "data", data, "version", 1)
		pipe.ZAdd(ctx, usersKey, redis.Z{Score: float64(user.RegisteredAt.Unix()), Member: user.ID})
		return nil
	})
	if err != nil {
		_ = s.client.Del(ctx, emailKey(user.Email)).Err()
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	user.Version = 1
	return user, nil
}

func (s *UserStore) Load(ctx context.Context, userID string) (domain.User, error) {
	fields, err := s.client.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return decodeUser(fields)
}

func (s *UserStore) Save(ctx context.Context, user domain.User) (domain.User, error) {
	key := userKey(user.ID)
	data, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal user: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, "version").Int64()
		if errors.Is(err, redis.Nil) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if current != user.Version {
			return domain.ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "data", data, "version", current+1)
			return nil
		})
		return err
	}, key)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		return domain.User{}, domain.ErrConflict
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrUserNotFound):
		return domain.User{}, err
	case err != nil:
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	user.Version++
	return user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	userID, err := s.client.Get(ctx, emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return s.Load(ctx, userID)
}

// List returns users ordered by registration time.
func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	ids, err := s.client.ZRange(ctx, usersKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, userKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(ids))
	for _, cmd := range cmds {
		user, err := decodeUser(cmd.Val())
		if errors.Is(err, domain.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *UserStore) Delete(ctx context.Context, userID string) error {
	user, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, userKey(userID), emailKey(user.Email))
		pipe.ZRem(ctx, usersKey, userID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

const usersKey = "activity:users"

func userKey(userID string) string {
	return "activity:user:" + userID
}

func emailKey(email string) string {
	return "activity:email:" + email
}

func decodeUser(fields map[string]string) (domain.User, error) {
	raw, ok := fields["data"]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	version, err := strconv.ParseInt(fields["version"], 10, 64)
	if err != nil {
		return domain.User{}, fmt.Errorf("parse version: %w", err)
	}
	user.Version = version
	return user, nil
}
