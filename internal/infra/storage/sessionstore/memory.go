package sessionstore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	updatedAt time.Time
}

// MemoryStore хранилище сессий в памяти процесса (разработка и тесты)
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore создает пустое хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]map[string]memoryEntry),
		now:      time.Now,
	}
}

// Get возвращает значение ключа сессии
func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[sessionID][key]
	if !ok {
		return "", ErrNotFound
	}
	return entry.value, nil
}

// Set сохраняет значение ключа сессии
func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.sessions[sessionID]
	if !ok {
		values = make(map[string]memoryEntry)
		s.sessions[sessionID] = values
	}
	values[key] = memoryEntry{value: value, updatedAt: s.now()}
	return nil
}

// Clear удаляет перечисленные ключи; без ключей удаляет сессию целиком
func (s *MemoryStore) Clear(_ context.Context, sessionID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(keys) == 0 {
		delete(s.sessions, sessionID)
		return nil
	}

	values := s.sessions[sessionID]
	for _, key := range keys {
		delete(values, key)
	}
	if len(values) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}

// Touch отмечает все ключи сессии обновлёнными в момент at
func (s *MemoryStore) Touch(_ context.Context, sessionID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.sessions[sessionID]
	for key, entry := range values {
		if at.After(entry.updatedAt) {
			entry.updatedAt = at
			values[key] = entry
		}
	}
	return nil
}

// DeleteExpired удаляет сессии, неактивные с момента before
func (s *MemoryStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for sessionID, values := range s.sessions {
		var last time.Time
		for _, entry := range values {
			if entry.updatedAt.After(last) {
				last = entry.updatedAt
			}
		}
		if last.Before(before) {
			deleted += int64(len(values))
			delete(s.sessions, sessionID)
		}
	}
	return deleted, nil
}
