package session

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/seedcampus/seed-client/internal/types"
)

// Session key patterns
const (
	userKey       = "seed:session:current_user"
	likedPostsKey = "seed:session:liked_posts"
	eventKey      = "seed:session:current_event"
)

// RedisStore keeps the session in Redis so several client processes on one
// machine share the same signed-in state.
type RedisStore struct {
	rdb    *redis.Client
	secret []byte
}

func NewRedisStore(rdb *redis.Client, secret string) *RedisStore {
	return &RedisStore{rdb: rdb, secret: []byte(secret)}
}

func (s *RedisStore) Restore() (*types.User, error) {
	ctx := context.Background()

	token, err := s.rdb.Get(ctx, userKey).Result()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	user, err := verifyUser(token, s.secret)
	if err != nil {
		return nil, ErrNoSession
	}
	return user, nil
}

func (s *RedisStore) Persist(user *types.User) error {
	ctx := context.Background()

	token, err := signUser(user, s.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	if err := s.rdb.Set(ctx, userKey, token, 0).Err(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear() error {
	ctx := context.Background()
	if err := s.rdb.Del(ctx, userKey, likedPostsKey, eventKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *RedisStore) LikedPosts() ([]types.ID, error) {
	ctx := context.Background()

	members, err := s.rdb.SMembers(ctx, likedPostsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read liked posts: %w", err)
	}
	ids := make([]types.ID, len(members))
	for i, m := range members {
		ids[i] = types.ID(m)
	}
	return ids, nil
}

func (s *RedisStore) AddLikedPost(id types.ID) error {
	ctx := context.Background()
	if err := s.rdb.SAdd(ctx, likedPostsKey, string(id)).Err(); err != nil {
		return fmt.Errorf("record liked post: %w", err)
	}
	return nil
}

func (s *RedisStore) CurrentEventID() (types.ID, error) {
	ctx := context.Background()

	id, err := s.rdb.Get(ctx, eventKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read current event: %w", err)
	}
	return types.ID(id), nil
}

func (s *RedisStore) SetCurrentEventID(id types.ID) error {
	ctx := context.Background()
	if err := s.rdb.Set(ctx, eventKey, string(id), 0).Err(); err != nil {
		return fmt.Errorf("record current event: %w", err)
	}
	return nil
}
