package bot

import "sync"

// Sessions tracks each user's most recent photo and audio upload. The two
// tracks are independent; a new upload silently replaces the previous
// identifier, with no history retained. Nothing is persisted; state lives
// for the lifetime of the process.
type Sessions struct {
	mu        sync.RWMutex
	lastPhoto map[int64]string
	lastAudio map[int64]string
}

func NewSessions() *Sessions {
	return &Sessions{
		lastPhoto: map[int64]string{},
		lastAudio: map[int64]string{},
	}
}

func (s *Sessions) SetPhoto(userID int64, uploadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPhoto[userID] = uploadID
}

func (s *Sessions) Photo(userID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.lastPhoto[userID]
	return id, ok
}

func (s *Sessions) SetAudio(userID int64, uploadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAudio[userID] = uploadID
}

func (s *Sessions) Audio(userID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.lastAudio[userID]
	return id, ok
}
