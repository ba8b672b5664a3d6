package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// MirrorEntry is the denormalized per-date availability summary served to
// public reads. It carries taken slot labels only, never client identity.
type MirrorEntry struct {
	TakenTimes []string  `json:"taken_times"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Entries expire well past the bookable horizon so stale dates age out on
// their own.
const mirrorTTL = 90 * 24 * time.Hour

type MirrorStore struct {
	rdb *redis.Client
}

func NewMirrorStore(rdb *redis.Client) *MirrorStore {
	return &MirrorStore{rdb: rdb}
}

func mirrorKey(date string) string {
	return "availability:" + date
}

// Get returns nil without error when no entry exists for the date.
func (s *MirrorStore) Get(ctx context.Context, date string) (*MirrorEntry, error) {
	raw, err := s.rdb.Get(ctx, mirrorKey(date)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry MirrorEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MirrorStore) Set(ctx context.Context, date string, entry *MirrorEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, mirrorKey(date), raw, mirrorTTL).Err()
}
