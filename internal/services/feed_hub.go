package services

import (
	"encoding/json"
	"sync"
	"time"

	"blog-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	FeedBlogCreated = "blog_created"
	FeedBlogEdited  = "blog_edited"
	FeedBlogDeleted = "blog_deleted"

	feedBufferSize = 16
)

// FeedMessage is pushed to every live feed subscriber
type FeedMessage struct {
	Type      string       `json:"type"`
	Timestamp int64        `json:"timestamp"`
	BlogID    string       `json:"blog_id"`
	Blog      *models.Blog `json:"blog,omitempty"`
}

// EventPublisher receives blog mutations after they are stored
type EventPublisher interface {
	Publish(eventType string, blog *models.Blog)
}

// FeedHub fans blog mutations out to connected subscribers
type FeedHub struct {
	mu          sync.RWMutex
	subscribers map[string]chan []byte
	now         func() time.Time
}

// NewFeedHub creates a new feed hub
func NewFeedHub() *FeedHub {
	return &FeedHub{
		subscribers: make(map[string]chan []byte),
		now:         time.Now,
	}
}

// Subscribe registers a subscriber and returns its id and message channel.
// The channel is closed on Unsubscribe or when the subscriber falls behind.
func (h *FeedHub) Subscribe() (string, <-chan []byte) {
	id := uuid.New().String()
	ch := make(chan []byte, feedBufferSize)

	h.mu.Lock()
	h.subscribers[id] = ch
	n := len(h.subscribers)
	h.mu.Unlock()

	setFeedSubscribers(n)
	log.Debug().Str("subscriber_id", id).Msg("Feed subscriber registered")
	return id, ch
}

// Unsubscribe removes a subscriber. Calling it twice is harmless.
func (h *FeedHub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, exists := h.subscribers[id]
	if exists {
		delete(h.subscribers, id)
		close(ch)
	}
	n := len(h.subscribers)
	h.mu.Unlock()

	if exists {
		setFeedSubscribers(n)
		log.Debug().Str("subscriber_id", id).Msg("Feed subscriber unregistered")
	}
}

// SubscriberCount returns the number of connected subscribers
func (h *FeedHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Publish sends a message to every subscriber without blocking. Subscribers
// whose buffer is full are dropped.
func (h *FeedHub) Publish(eventType string, blog *models.Blog) {
	message := FeedMessage{
		Type:      eventType,
		Timestamp: h.now().UnixMilli(),
		BlogID:    blog.ID,
	}
	if eventType != FeedBlogDeleted {
		message.Blog = blog
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to marshal feed message")
		return
	}

	var slow []string
	h.mu.RLock()
	for id, ch := range h.subscribers {
		select {
		case ch <- data:
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		log.Warn().Str("subscriber_id", id).Msg("Dropping slow feed subscriber")
		h.Unsubscribe(id)
	}
}
