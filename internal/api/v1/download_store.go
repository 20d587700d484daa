package v1

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type conversionDownload struct {
	filePath  string
	records   int
	expiresAt time.Time
}

// downloadStore hands out one-shot tokens for converted workbooks written to
// the temp directory.
type downloadStore struct {
	mu    sync.Mutex
	items map[string]conversionDownload
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]conversionDownload),
	}
}

func (s *downloadStore) put(filePath string, records int, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = conversionDownload{
		filePath:  filePath,
		records:   records,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *downloadStore) get(token string) (conversionDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return conversionDownload{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return conversionDownload{}, false
	}
	return v, true
}

func (s *downloadStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
