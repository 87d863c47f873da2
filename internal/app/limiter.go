package app

import "sync"

// ChatLimiter сериализует обработку событий одного чата: переходы сценария
// в чате строго последовательны, разные чаты идут параллельно.
type ChatLimiter struct {
	mu   sync.Mutex
	byID map[int64]*sync.Mutex
}

func NewChatLimiter() *ChatLimiter {
	return &ChatLimiter{byID: make(map[int64]*sync.Mutex)}
}

// Lock берёт мьютекс чата и возвращает функцию освобождения.
func (l *ChatLimiter) Lock(chatID int64) func() {
	l.mu.Lock()
	m, ok := l.byID[chatID]
	if !ok {
		m = &sync.Mutex{}
		l.byID[chatID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() { m.Unlock() }
}
