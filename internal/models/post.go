package models

import "time"

// Post is a feed post document. Likes and comments are embedded in the
// document, newest first. UserID is the author and is immutable after
// creation; Name and Avatar are a snapshot of the author taken when the
// post was created.
type Post struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Date     time.Time `json:"date"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Like records that a user liked a post. At most one per user per post.
type Like struct {
	UserID string `json:"user"`
}

// Comment is a comment embedded in a post, with the author snapshot taken
// at creation time.
type Comment struct {
	ID     string    `json:"id"`
	UserID string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// LikedBy reports whether the given user already has a like on the post.
func (p *Post) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// AddLike prepends a like for the given user so the newest like comes first.
func (p *Post) AddLike(userID string) {
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
}

// RemoveLike removes the first like belonging to the given user.
func (p *Post) RemoveLike(userID string) bool {
	for i, like := range p.Likes {
		if like.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return true
		}
	}
	return false
}

// AddComment prepends a comment so the newest comment comes first.
func (p *Post) AddComment(comment Comment) {
	p.Comments = append([]Comment{comment}, p.Comments...)
}

// FindComment returns the comment with the given ID.
func (p *Post) FindComment(commentID string) (Comment, bool) {
	for _, comment := range p.Comments {
		if comment.ID == commentID {
			return comment, true
		}
	}
	return Comment{}, false
}

// RemoveComment removes the comment with the given ID.
func (p *Post) RemoveComment(commentID string) bool {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}
