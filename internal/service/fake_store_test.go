package service

import (
	"context"
	"fmt"
	"path"
	"sync"
)

// fakeKeyStore is an in-memory KeyStore that keeps keys in insertion order.
// The cursor is the index of the next matching key.
type fakeKeyStore struct {
	mu sync.Mutex

	keys []string
	live map[string]bool

	scanCalls   int
	scanErrs    map[int]error // by ScanPage call index
	deleteCalls [][]string
	deleteErrs  map[int]error // by Delete call index
}

func newFakeKeyStore(keys ...string) *fakeKeyStore {
	s := &fakeKeyStore{
		live:       make(map[string]bool, len(keys)),
		scanErrs:   make(map[int]error),
		deleteErrs: make(map[int]error),
	}
	s.add(keys...)
	return s
}

func (s *fakeKeyStore) add(keys ...string) {
	for _, k := range keys {
		if !s.live[k] {
			s.keys = append(s.keys, k)
		}
		s.live[k] = true
	}
}

func (s *fakeKeyStore) ScanPage(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := s.scanCalls
	s.scanCalls++
	if err, ok := s.scanErrs[call]; ok {
		return nil, 0, err
	}

	matching := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		if ok, _ := path.Match(pattern, k); ok && s.live[k] {
			matching = append(matching, k)
		}
	}

	start := min(int(cursor), len(matching))
	end := min(start+int(count), len(matching))
	next := uint64(end)
	if end == len(matching) {
		next = 0
	}

	return append([]string(nil), matching[start:end]...), next, nil
}

func (s *fakeKeyStore) Delete(ctx context.Context, keys []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := len(s.deleteCalls)
	s.deleteCalls = append(s.deleteCalls, append([]string(nil), keys...))
	if err, ok := s.deleteErrs[call]; ok {
		return 0, err
	}

	var removed int64
	for _, k := range keys {
		if s.live[k] {
			delete(s.live, k)
			removed++
		}
	}
	return removed, nil
}

func (s *fakeKeyStore) liveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// userKeys returns user:from .. user:to.
func userKeys(from, to int) []string {
	keys := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		keys = append(keys, fmt.Sprintf("user:%d", i))
	}
	return keys
}
