package app

import (
	"sync"
	"time"

	"radar/api/internal/util"
)

// Variant distinguishes normal outcomes from failures in the toast feed.
type Variant string

const (
	VariantNormal      Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is one user-visible, non-blocking outcome message.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier receives operation outcome notifications.
type Notifier interface {
	Notify(title, description string, variant Variant)
}

// Hub is the in-memory notification feed the UI polls. It keeps the most
// recent entries, newest first.
type Hub struct {
	mu      sync.Mutex
	entries []Notification
	limit   int
}

// NewHub creates a hub retaining up to limit notifications.
func NewHub(limit int) *Hub {
	if limit <= 0 {
		limit = 50
	}
	return &Hub{limit: limit}
}

func (h *Hub) Notify(title, description string, variant Variant) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry := Notification{
		ID:          util.NewID("ntf"),
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   time.Now(),
	}
	h.entries = append([]Notification{entry}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// Recent returns the retained notifications, newest first.
func (h *Hub) Recent() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, len(h.entries))
	copy(out, h.entries)
	return out
}
