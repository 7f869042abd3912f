package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/application"
	"github.com/communehq/commune/pkg/response"
)

// UserHandler exposes the caller's own record, the verified profile,
// and the bookmark directory. Everything here requires a session.
type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.Users.Me(c.Request.Context(), credFrom(c))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, userView(user), "", nil)
	c.JSON(resp.Status, resp)
}

type createProfileRequest struct {
	Name        string `json:"name" binding:"required,slug"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=64"`
	ChallengeID string `json:"challenge_id" binding:"required,entityid"`
	Answer      string `json:"answer" binding:"required,shortsecret"`
}

// CreateProfile POST /api/users/me/profile
func (h *UserHandler) CreateProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	profile, err := h.Users.CreateProfile(c.Request.Context(), credFrom(c), req.Name, req.DisplayName, req.ChallengeID, req.Answer)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, profileView(profile), "profile created", nil)
	c.JSON(resp.Status, resp)
}

type extendProfileRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required,entityid"`
	Answer      string `json:"answer" binding:"required,shortsecret"`
}

// ExtendProfile POST /api/users/me/profile/extend
func (h *UserHandler) ExtendProfile(c *gin.Context) {
	var req extendProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	profile, err := h.Users.ExtendProfile(c.Request.Context(), credFrom(c), req.ChallengeID, req.Answer)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, profileView(profile), "profile extended", nil)
	c.JSON(resp.Status, resp)
}

// Profile GET /api/users/me/profile
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.Users.Profile(c.Request.Context(), credFrom(c))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, profileView(profile), "", nil)
	c.JSON(resp.Status, resp)
}

// Bookmarks GET /api/users/me/bookmarks
func (h *UserHandler) Bookmarks(c *gin.Context) {
	directory, err := h.Users.ListBookmarks(c.Request.Context(), credFrom(c))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, bookmarkViews(directory), "", nil)
	c.JSON(resp.Status, resp)
}

type bookmarkRequest struct {
	ItemID string `json:"item_id" binding:"required,entityid"`
	Tag    string `json:"tag" binding:"required,slug"`
}

// AddBookmark PUT /api/users/me/bookmarks
func (h *UserHandler) AddBookmark(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	directory, err := h.Users.AddBookmark(c.Request.Context(), credFrom(c), req.ItemID, req.Tag)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, bookmarkViews(directory), "bookmark added", nil)
	c.JSON(resp.Status, resp)
}

// RemoveBookmark DELETE /api/users/me/bookmarks
func (h *UserHandler) RemoveBookmark(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	directory, err := h.Users.RemoveBookmark(c.Request.Context(), credFrom(c), req.ItemID, req.Tag)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, bookmarkViews(directory), "bookmark removed", nil)
	c.JSON(resp.Status, resp)
}
