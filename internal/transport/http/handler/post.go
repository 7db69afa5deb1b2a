package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/app"
	"devconnector/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
	logger      *slog.Logger
}

type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewPostHandler(postService *app.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{postService: postService, logger: logger}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TextRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		writeError(c, h.logger, "create post", err)
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postService.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list posts", err)
		return
	}
	response.OK(c, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "get post", err)
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, h.logger, "delete post", err)
		return
	}
	response.Msg(c, http.StatusOK, "Post removed")
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TextRequest
	if !bindJSON(c, &req) {
		return
	}

	comments, err := h.postService.AddComment(c.Request.Context(), userID, c.Param("post_id"), req.Text)
	if err != nil {
		writeError(c, h.logger, "add comment", err)
		return
	}
	response.OK(c, comments)
}

func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	comments, err := h.postService.RemoveComment(c.Request.Context(), userID, c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		writeError(c, h.logger, "remove comment", err)
		return
	}
	response.OK(c, comments)
}
