package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devlinkr/devlinkr-be/internal/auth"
	"github.com/devlinkr/devlinkr-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PostHandler handles HTTP requests for the posts feed.
type PostHandler struct {
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider) *PostHandler {
	return &PostHandler{service: service}
}

// PostPayload defines the structure for post and comment bodies.
type PostPayload struct {
	Text string `json:"text" validate:"required"`
}

var postMessages = map[string]string{
	"text": "Text is required",
}

func requesterID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondServerError(w)
		return "", false
	}
	return claims.UserID, true
}

// Create handles the request to publish a new post.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var payload PostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondErrors(w, []errorItem{{Msg: "Invalid request body", Location: "body"}})
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondErrors(w, validationErrors(err, postMessages))
		return
	}

	post, err := h.service.CreatePost(userID, payload.Text)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create post")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// GetAll handles the request to list the whole feed, newest first.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.GetAllPosts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

// Get handles the request to fetch a single post by its ID.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			respondMsg(w, http.StatusNotFound, "Post not found for the ID.")
			return
		}
		log.Error().Err(err).Str("post_id", id).Msg("Failed to get post")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// Delete handles the request to remove a post. Author only.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeletePost(id, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			respondMsg(w, http.StatusNotFound, "Post not found for the ID.")
		case errors.Is(err, services.ErrNotAuthorized):
			respondMsg(w, http.StatusUnauthorized, "User not authorized")
		default:
			log.Error().Err(err).Str("post_id", id).Msg("Failed to delete post")
			respondServerError(w)
		}
		return
	}

	respondMsg(w, http.StatusOK, "Post successfully removed")
}

// Like handles the request to like a post.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	likes, err := h.service.LikePost(id, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyLiked):
			respondMsg(w, http.StatusBadRequest, "Post already liked")
		case errors.Is(err, services.ErrPostNotFound):
			respondMsg(w, http.StatusNotFound, "Post not found for the ID.")
		default:
			log.Error().Err(err).Str("post_id", id).Msg("Failed to like post")
			respondServerError(w)
		}
		return
	}

	respondJSON(w, http.StatusOK, likes)
}

// Unlike handles the request to withdraw a like.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	likes, err := h.service.UnlikePost(id, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotLiked):
			respondMsg(w, http.StatusBadRequest, "Post not already liked")
		case errors.Is(err, services.ErrPostNotFound):
			respondMsg(w, http.StatusNotFound, "Post not found for the ID.")
		default:
			log.Error().Err(err).Str("post_id", id).Msg("Failed to unlike post")
			respondServerError(w)
		}
		return
	}

	respondJSON(w, http.StatusOK, likes)
}

// Comment handles the request to comment on a post.
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var payload PostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondErrors(w, []errorItem{{Msg: "Invalid request body", Location: "body"}})
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondErrors(w, validationErrors(err, postMessages))
		return
	}

	id := chi.URLParam(r, "id")
	comments, err := h.service.CommentOnPost(id, userID, payload.Text)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			respondMsg(w, http.StatusNotFound, "Post not found for the ID.")
			return
		}
		log.Error().Err(err).Str("post_id", id).Msg("Failed to comment on post")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

// DeleteComment handles the request to remove a comment. Comment author
// only.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	postID := chi.URLParam(r, "id")
	commentID := chi.URLParam(r, "commentId")
	comments, err := h.service.DeleteComment(postID, commentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			respondMsg(w, http.StatusNotFound, "Post not found for the ID.")
		case errors.Is(err, services.ErrCommentNotFound):
			respondMsg(w, http.StatusNotFound, "Comment not found for the ID.")
		case errors.Is(err, services.ErrNotAuthorized):
			respondMsg(w, http.StatusUnauthorized, "User not authorized to delete the comment")
		default:
			log.Error().Err(err).Str("post_id", postID).Str("comment_id", commentID).Msg("Failed to delete comment")
			respondServerError(w)
		}
		return
	}

	respondJSON(w, http.StatusOK, comments)
}
