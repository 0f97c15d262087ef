package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostLikes(t *testing.T) {
	post := &Post{Likes: []Like{}}

	assert.False(t, post.LikedBy("u1"))

	post.AddLike("u1")
	post.AddLike("u2")

	assert.True(t, post.LikedBy("u1"))
	assert.True(t, post.LikedBy("u2"))
	// Newest like first
	assert.Equal(t, "u2", post.Likes[0].UserID)

	assert.True(t, post.RemoveLike("u1"))
	assert.False(t, post.LikedBy("u1"))
	assert.Len(t, post.Likes, 1)

	assert.False(t, post.RemoveLike("u1"))
}

func TestPostComments(t *testing.T) {
	post := &Post{Comments: []Comment{}}

	post.AddComment(Comment{ID: "c1", UserID: "u1", Text: "first"})
	post.AddComment(Comment{ID: "c2", UserID: "u1", Text: "second"})

	// Newest comment first
	assert.Equal(t, "c2", post.Comments[0].ID)

	comment, found := post.FindComment("c1")
	assert.True(t, found)
	assert.Equal(t, "first", comment.Text)

	_, found = post.FindComment("missing")
	assert.False(t, found)

	// Removal targets the comment ID, not the author
	assert.True(t, post.RemoveComment("c1"))
	assert.Len(t, post.Comments, 1)
	assert.Equal(t, "c2", post.Comments[0].ID)

	assert.False(t, post.RemoveComment("c1"))
}
