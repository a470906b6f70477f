// Package cache keeps short-lived copies of list responses on disk so that
// name lookups do not spend the request budget on every invocation.
//
// Entries are JSON files scoped per resource and TalentLMS domain. Set
// TALENTLMS_NO_CACHE to bypass the cache.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTTL is how long an entry stays fresh.
const DefaultTTL = 5 * time.Minute

const envNoCache = "TALENTLMS_NO_CACHE"

type entry[T any] struct {
	CachedAt time.Time `json:"cached_at"`
	Items    []T       `json:"items"`
}

// Store caches one list of T.
type Store[T any] struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

// New returns a Store for resource on domain, kept for ttl.
func New[T any](dir, resource, domain string, ttl time.Duration) *Store[T] {
	sum := sha1.Sum([]byte(strings.ToLower(domain)))
	name := sanitize(resource) + "_" + hex.EncodeToString(sum[:6]) + ".json"
	return &Store[T]{path: filepath.Join(dir, name), ttl: ttl, now: time.Now}
}

// Path returns the file backing the store.
func (s *Store[T]) Path() string {
	return s.path
}

// Load returns the cached items, or false on a miss.
func (s *Store[T]) Load() ([]T, bool) {
	if disabled() {
		return nil, false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}
	var e entry[T]
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if s.now().Sub(e.CachedAt) > s.ttl {
		return nil, false
	}
	return e.Items, true
}

// Save replaces the cached items. Failures are ignored; the cache is an
// optimisation only.
func (s *Store[T]) Save(items []T) {
	if disabled() {
		return
	}
	data, err := json.Marshal(entry[T]{CachedAt: s.now(), Items: items})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return
	}
	_ = os.Rename(tmp, s.path)
}

// Clear removes the cached file.
func (s *Store[T]) Clear() {
	_ = os.Remove(s.path)
}

// DefaultDir returns "$XDG_CACHE_HOME/talentlms" or the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "talentlms"), nil
}

func disabled() bool {
	return os.Getenv(envNoCache) != ""
}

func sanitize(resource string) string {
	resource = strings.TrimSpace(resource)
	if resource == "" {
		return "cache"
	}
	return strings.NewReplacer("/", "-", "\\", "-", "_", "-").Replace(resource)
}
