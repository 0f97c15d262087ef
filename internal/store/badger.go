package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/devlinkr/devlinkr-be/internal/models"
	"github.com/dgraph-io/badger/v4"
)

const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "useremail:"
	postKeyPrefix      = "post:"
	eventKeyPrefix     = "event:"
)

// Store persists documents as JSON values in BadgerDB. Users are addressable
// by ID and by a lowercased email index; posts and events by ID.
type Store struct {
	db       *badger.DB
	path     string
	isTempDB bool
}

// Open opens (or creates) the document store at the given path. An empty
// path opens a throwaway store in a temporary directory, removed on Close.
func Open(path string) (*Store, error) {
	isTemp := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "devlinkr_db_")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp dir: %w", err)
		}
		path = tempPath
		isTemp = true
	}

	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, path: path, isTempDB: isTemp}, nil
}

// Close closes the underlying database and removes temporary stores.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	if s.isTempDB {
		return os.RemoveAll(s.path)
	}
	return nil
}

// RunGC reclaims space in the value log until there is nothing left to
// rewrite.
func (s *Store) RunGC() error {
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func userKey(id string) []byte  { return []byte(userKeyPrefix + id) }
func postKey(id string) []byte  { return []byte(postKeyPrefix + id) }
func eventKey(id string) []byte { return []byte(eventKeyPrefix + id) }

func userEmailKey(email string) []byte {
	return []byte(userEmailKeyPrefix + strings.ToLower(email))
}

func (s *Store) getJSON(key []byte, out interface{}) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

func (s *Store) setJSON(txn *badger.Txn, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// FindUserByID retrieves a user document by ID.
func (s *Store) FindUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.getJSON(userKey(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail retrieves a user document through the email index.
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.FindUserByID(userID)
}

// InsertUser stores a new user document and its email index entry.
func (s *Store) InsertUser(user *models.User) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := s.setJSON(txn, userKey(user.ID), user); err != nil {
			return err
		}
		return txn.Set(userEmailKey(user.Email), []byte(user.ID))
	})
}

// FindPostByID retrieves a post document by ID. Unknown and malformed IDs
// both report ErrNotFound.
func (s *Store) FindPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := s.getJSON(postKey(id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// InsertPost stores a new post document.
func (s *Store) InsertPost(post *models.Post) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return s.setJSON(txn, postKey(post.ID), post)
	})
}

// SavePost replaces an existing post document.
func (s *Store) SavePost(post *models.Post) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(postKey(post.ID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return s.setJSON(txn, postKey(post.ID), post)
	})
}

// DeletePost removes a post document.
func (s *Store) DeletePost(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(postKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}

// FindAllPostsByDateDesc retrieves every post, newest first.
func (s *Store) FindAllPostsByDateDesc() ([]*models.Post, error) {
	posts := []*models.Post{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(postKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &post)
			})
			if err != nil {
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// InsertEvent stores an activity log entry.
func (s *Store) InsertEvent(event *models.Event) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return s.setJSON(txn, eventKey(event.ID), event)
	})
}

// FindRecentEvents retrieves up to limit activity entries, newest first.
func (s *Store) FindRecentEvents(limit int) ([]*models.Event, error) {
	events := []*models.Event{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(eventKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var event models.Event
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if err != nil {
				return err
			}
			events = append(events, &event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
