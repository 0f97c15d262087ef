package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/devlinkr/devlinkr-be/internal/models"
	"github.com/devlinkr/devlinkr-be/internal/store"
	ws "github.com/devlinkr/devlinkr-be/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrPostNotFound is returned when no post document matches the ID.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when no comment matches the ID.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNotAuthorized is returned when the requester does not own the
	// post or comment being deleted.
	ErrNotAuthorized = errors.New("user not authorized")
	// ErrAlreadyLiked is returned when a user likes a post twice.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked is returned when a user unlikes a post they never liked.
	ErrNotLiked = errors.New("post not liked")
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(userID, text string) (*models.Post, error)
	GetAllPosts() ([]*models.Post, error)
	GetPostByID(id string) (*models.Post, error)
	DeletePost(id, userID string) error
	LikePost(id, userID string) ([]models.Like, error)
	UnlikePost(id, userID string) ([]models.Like, error)
	CommentOnPost(id, userID, text string) ([]models.Comment, error)
	DeleteComment(postID, commentID, userID string) ([]models.Comment, error)
}

// PostService provides business logic for the posts feed. Mutations are
// serialized per post ID so the read-modify-write sequences on a post's
// like and comment lists cannot interleave.
type PostService struct {
	posts  store.PostStore
	users  store.UserStore
	events EventServiceProvider
	hub    *ws.Hub

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPostService creates a new PostService. The hub may be nil when no
// realtime fanout is wanted.
func NewPostService(posts store.PostStore, users store.UserStore, events EventServiceProvider, hub *ws.Hub) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		events: events,
		hub:    hub,
		locks:  make(map[string]*sync.Mutex),
	}
}

// postLock returns the mutex serializing mutations for one post ID.
// Entries are retained for the life of the service.
func (s *PostService) postLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// CreatePost creates a post authored by the given user, snapshotting the
// author's current name and avatar into the document.
func (s *PostService) CreatePost(userID, text string) (*models.Post, error) {
	user, err := s.users.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	post := &models.Post{
		ID:       uuid.New().String(),
		UserID:   userID,
		Text:     text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Date:     time.Now(),
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}

	if err := s.posts.InsertPost(post); err != nil {
		return nil, err
	}

	s.recordEvent("post.created", fmt.Sprintf("%s published a post", user.Name), post.ID)
	s.broadcast("post.created", post)
	return post, nil
}

// GetAllPosts returns every post, newest first.
func (s *PostService) GetAllPosts() ([]*models.Post, error) {
	return s.posts.FindAllPostsByDateDesc()
}

// GetPostByID returns a single post.
func (s *PostService) GetPostByID(id string) (*models.Post, error) {
	post, err := s.posts.FindPostByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Only the author may delete it; the ownership
// check runs strictly before any deletion.
func (s *PostService) DeletePost(id, userID string) error {
	lock := s.postLock(id)
	lock.Lock()
	defer lock.Unlock()

	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotAuthorized
	}

	if err := s.posts.DeletePost(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	s.recordEvent("post.deleted", fmt.Sprintf("%s removed a post", post.Name), post.ID)
	s.broadcast("post.deleted", map[string]string{"id": id})
	return nil
}

// LikePost records a like by the given user. A user can hold at most one
// like per post.
func (s *PostService) LikePost(id, userID string) ([]models.Like, error) {
	lock := s.postLock(id)
	lock.Lock()
	defer lock.Unlock()

	post, err := s.GetPostByID(id)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(userID) {
		return nil, ErrAlreadyLiked
	}

	post.AddLike(userID)
	if err := s.posts.SavePost(post); err != nil {
		return nil, err
	}

	s.recordEvent("post.liked", "a post was liked", post.ID)
	s.broadcastTo(post.ID, "post.liked", post.Likes)
	return post.Likes, nil
}

// UnlikePost removes the given user's like.
func (s *PostService) UnlikePost(id, userID string) ([]models.Like, error) {
	lock := s.postLock(id)
	lock.Lock()
	defer lock.Unlock()

	post, err := s.GetPostByID(id)
	if err != nil {
		return nil, err
	}
	if !post.RemoveLike(userID) {
		return nil, ErrNotLiked
	}

	if err := s.posts.SavePost(post); err != nil {
		return nil, err
	}

	s.recordEvent("post.unliked", "a like was withdrawn", post.ID)
	s.broadcastTo(post.ID, "post.unliked", post.Likes)
	return post.Likes, nil
}

// CommentOnPost adds a comment with the commenting user's name and avatar
// snapshotted in, newest first.
func (s *PostService) CommentOnPost(id, userID, text string) ([]models.Comment, error) {
	user, err := s.users.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	lock := s.postLock(id)
	lock.Lock()
	defer lock.Unlock()

	post, err := s.GetPostByID(id)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:     uuid.New().String(),
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now(),
	}
	post.AddComment(comment)

	if err := s.posts.SavePost(post); err != nil {
		return nil, err
	}

	s.recordEvent("comment.created", fmt.Sprintf("%s commented on a post", user.Name), post.ID)
	s.broadcastTo(post.ID, "comment.created", post.Comments)
	return post.Comments, nil
}

// DeleteComment removes a comment by its ID. Only the comment's author may
// delete it, and removal targets the validated comment ID, never another
// comment that happens to share the author.
func (s *PostService) DeleteComment(postID, commentID, userID string) ([]models.Comment, error) {
	lock := s.postLock(postID)
	lock.Lock()
	defer lock.Unlock()

	post, err := s.GetPostByID(postID)
	if err != nil {
		return nil, err
	}

	comment, found := post.FindComment(commentID)
	if !found {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrNotAuthorized
	}

	post.RemoveComment(commentID)
	if err := s.posts.SavePost(post); err != nil {
		return nil, err
	}

	s.recordEvent("comment.deleted", "a comment was removed", post.ID)
	s.broadcastTo(post.ID, "comment.deleted", post.Comments)
	return post.Comments, nil
}

// recordEvent appends to the activity log. The log is advisory; failures
// are logged and never fail the request.
func (s *PostService) recordEvent(eventType, message, postID string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, message, &postID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record feed event")
	}
}

func (s *PostService) broadcast(action string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast <- ws.NewMessage(action, payload)
}

func (s *PostService) broadcastTo(postID, action string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastTo(postID, ws.NewMessage(action, payload))
}
