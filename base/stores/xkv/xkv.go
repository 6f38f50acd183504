package xkv

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/stores/kv"
)

// Store wraps the go-zero kv store with JSON helpers.
type Store struct {
	kv.Store
}

func NewStore(c kv.KvConf) *Store {
	return &Store{Store: kv.NewStore(c)}
}

// ReadJson unmarshals the value at key into v. The second return is
// false when the key is absent.
func (s *Store) ReadJson(key string, v interface{}) (bool, error) {
	raw, err := s.Get(key)
	if err != nil {
		return false, errors.Wrap(err, "failed on read cache")
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, errors.Wrap(err, "failed on unmarshal cache value")
	}
	return true, nil
}

// WriteJson stores v at key for seconds, or without expiry when
// seconds <= 0.
func (s *Store) WriteJson(key string, v interface{}, seconds int) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed on marshal cache value")
	}
	if seconds > 0 {
		err = s.Setex(key, string(raw), seconds)
	} else {
		err = s.Set(key, string(raw))
	}
	return errors.Wrap(err, "failed on write cache")
}
