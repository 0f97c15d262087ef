package store

import (
	"testing"
	"time"

	"github.com/devlinkr/devlinkr-be/internal/models"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserRoundTrip(t *testing.T) {
	s := openTestStore(t)

	user := &models.User{
		ID:     "u1",
		Name:   "Ada",
		Email:  "Ada@Example.com",
		Avatar: "https://example.com/a.png",
		Date:   time.Now(),
	}
	require.NoError(t, s.InsertUser(user))

	got, err := s.FindUserByID("u1")
	require.NoError(t, err)
	require.Equal(t, "Ada", got.Name)

	// Email lookup is case-insensitive via the lowercased index
	got, err = s.FindUserByEmail("ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)

	_, err = s.FindUserByID("missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindUserByEmail("nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostCRUD(t *testing.T) {
	s := openTestStore(t)

	post := &models.Post{
		ID:       "p1",
		UserID:   "u1",
		Text:     "hello",
		Date:     time.Now(),
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	require.NoError(t, s.InsertPost(post))

	got, err := s.FindPostByID("p1")
	require.NoError(t, err)
	require.Equal(t, "hello", got.Text)

	got.AddLike("u2")
	require.NoError(t, s.SavePost(got))

	got, err = s.FindPostByID("p1")
	require.NoError(t, err)
	require.Len(t, got.Likes, 1)

	require.NoError(t, s.DeletePost("p1"))
	_, err = s.FindPostByID("p1")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.DeletePost("p1"), ErrNotFound)
	require.ErrorIs(t, s.SavePost(post), ErrNotFound)
}

func TestFindPostMalformedID(t *testing.T) {
	s := openTestStore(t)

	// Any shape of ID that misses every key reports not-found
	_, err := s.FindPostByID("not a uuid at all!")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindAllPostsByDateDesc(t *testing.T) {
	s := openTestStore(t)

	base := time.Now()
	for i, id := range []string{"p1", "p2", "p3"} {
		post := &models.Post{
			ID:     id,
			UserID: "u1",
			Text:   id,
			Date:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.InsertPost(post))
	}

	posts, err := s.FindAllPostsByDateDesc()
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "p3", posts[0].ID)
	require.Equal(t, "p2", posts[1].ID)
	require.Equal(t, "p1", posts[2].ID)

	for i := 1; i < len(posts); i++ {
		require.False(t, posts[i].Date.After(posts[i-1].Date))
	}
}

func TestRecentEvents(t *testing.T) {
	s := openTestStore(t)

	base := time.Now()
	for i, id := range []string{"e1", "e2", "e3"} {
		event := &models.Event{
			ID:      id,
			Type:    "post.created",
			Message: id,
			Date:    base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.InsertEvent(event))
	}

	events, err := s.FindRecentEvents(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "e3", events[0].ID)
	require.Equal(t, "e2", events[1].ID)
}
