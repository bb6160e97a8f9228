package sessionstore

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/pkg/config"
	"happyhour-console/internal/pkg/errs"
)

var (
	ErrChallengeNotFound = errs.New("challenge not found or expired")
	ErrCodeMismatch      = errs.New("verification code mismatch")
)

func editKey(userID, barID uuid.UUID) string {
	return fmt.Sprintf("edit:%s:%s", userID, barID)
}

func challengeKey(challengeID uuid.UUID) string {
	return fmt.Sprintf("mfa:challenge:%s", challengeID)
}

// RedisStore persists edit sessions and login challenges. Both expire
// on their own: abandoned drafts don't pin memory and stale codes
// can't be replayed.
type RedisStore struct {
	rdb        *redis.Client
	sessionTTL config.EditConfig
	mfa        config.MFAConfig
}

func NewRedisStore(rdb *redis.Client, editCfg config.EditConfig, mfaCfg config.MFAConfig) *RedisStore {
	return &RedisStore{
		rdb:        rdb,
		sessionTTL: editCfg,
		mfa:        mfaCfg,
	}
}

func (s *RedisStore) Get(ctx context.Context, userID, barID uuid.UUID) (*bar.EditSession, error) {
	raw, err := s.rdb.Get(ctx, editKey(userID, barID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to load edit session")
	}

	var session bar.EditSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errs.Wrap(err, "failed to decode edit session")
	}
	return &session, nil
}

func (s *RedisStore) Put(ctx context.Context, userID, barID uuid.UUID, session *bar.EditSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errs.Wrap(err, "failed to encode edit session")
	}
	if err := s.rdb.Set(ctx, editKey(userID, barID), raw, s.sessionTTL.SessionTTL).Err(); err != nil {
		return errs.Wrap(err, "failed to store edit session")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID, barID uuid.UUID) error {
	if err := s.rdb.Del(ctx, editKey(userID, barID)).Err(); err != nil {
		return errs.Wrap(err, "failed to delete edit session")
	}
	return nil
}

type challengeRecord struct {
	UserID uuid.UUID `json:"user_id"`
	Code   string    `json:"code"`
}

func (s *RedisStore) SaveChallenge(ctx context.Context, challengeID, userID uuid.UUID, code string) error {
	raw, err := json.Marshal(challengeRecord{UserID: userID, Code: code})
	if err != nil {
		return errs.Wrap(err, "failed to encode challenge")
	}
	if err := s.rdb.Set(ctx, challengeKey(challengeID), raw, s.mfa.CodeTTL).Err(); err != nil {
		return errs.Wrap(err, "failed to store challenge")
	}
	return nil
}

// ConsumeChallenge deletes the challenge only on a correct code; a
// wrong guess leaves it in place until the TTL runs out.
func (s *RedisStore) ConsumeChallenge(ctx context.Context, challengeID uuid.UUID, code string) (uuid.UUID, error) {
	key := challengeKey(challengeID)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrChallengeNotFound
		}
		return uuid.Nil, errs.Wrap(err, "failed to load challenge")
	}

	var record challengeRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to decode challenge")
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return uuid.Nil, ErrCodeMismatch
	}

	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to consume challenge")
	}
	return record.UserID, nil
}
