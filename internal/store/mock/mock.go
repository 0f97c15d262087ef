// Package mock provides in-memory store implementations for tests.
package mock

import (
	"sort"
	"strings"
	"sync"

	"github.com/devlinkr/devlinkr-be/internal/models"
	"github.com/devlinkr/devlinkr-be/internal/store"
)

// UserStore is an in-memory store.UserStore.
type UserStore struct {
	mutex sync.RWMutex
	users map[string]*models.User
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

func (m *UserStore) FindUserByID(id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *UserStore) FindUserByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *UserStore) InsertUser(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	copied := *user
	m.users[user.ID] = &copied
	return nil
}

// PostStore is an in-memory store.PostStore.
type PostStore struct {
	mutex sync.RWMutex
	posts map[string]*models.Post
}

// NewPostStore creates an empty in-memory post store.
func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[string]*models.Post)}
}

func (m *PostStore) FindPostByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := clonePost(post)
	return &copied, nil
}

func (m *PostStore) InsertPost(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	copied := clonePost(post)
	m.posts[post.ID] = &copied
	return nil
}

func (m *PostStore) SavePost(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return store.ErrNotFound
	}
	copied := clonePost(post)
	m.posts[post.ID] = &copied
	return nil
}

func (m *PostStore) DeletePost(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return store.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostStore) FindAllPostsByDateDesc() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := []*models.Post{}
	for _, post := range m.posts {
		copied := clonePost(post)
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// clonePost deep-copies a post so callers cannot mutate stored state, the
// same isolation a real round-trip through the store provides.
func clonePost(post *models.Post) models.Post {
	copied := *post
	copied.Likes = append([]models.Like{}, post.Likes...)
	copied.Comments = append([]models.Comment{}, post.Comments...)
	return copied
}

// EventStore is an in-memory store.EventStore.
type EventStore struct {
	mutex  sync.RWMutex
	events []*models.Event
}

// NewEventStore creates an empty in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{}
}

func (m *EventStore) InsertEvent(event *models.Event) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	copied := *event
	m.events = append(m.events, &copied)
	return nil
}

func (m *EventStore) FindRecentEvents(limit int) ([]*models.Event, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	events := make([]*models.Event, len(m.events))
	copy(events, m.events)
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
