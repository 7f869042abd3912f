package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/application"
	"github.com/communehq/commune/pkg/response"
)

// GroupHandler exposes the group lifecycle. Reads are public; every
// write requires a session, and the domain decides who may do what.
type GroupHandler struct {
	Groups *application.GroupService
	Logger *logrus.Logger
}

func NewGroupHandler(groups *application.GroupService, logger *logrus.Logger) *GroupHandler {
	return &GroupHandler{Groups: groups, Logger: logger}
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type createGroupRequest struct {
	Name        string `json:"name" binding:"required,slug"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=64"`
}

// Create POST /api/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Groups.Create(c.Request.Context(), credFrom(c), req.Name, req.DisplayName)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, view, "group created", nil)
	c.JSON(resp.Status, resp)
}

// List GET /api/groups
func (h *GroupHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	views, err := h.Groups.List(c.Request.Context(), limit, offset)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, views, "", gin.H{"limit": limit, "offset": offset})
	c.JSON(resp.Status, resp)
}

// Get GET /api/groups/:groupID
func (h *GroupHandler) Get(c *gin.Context) {
	view, err := h.Groups.Get(c.Request.Context(), c.Param("groupID"))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, view, "", nil)
	c.JSON(resp.Status, resp)
}

// Members GET /api/groups/:groupID/members
func (h *GroupHandler) Members(c *gin.Context) {
	members, err := h.Groups.MemberList(c.Request.Context(), c.Param("groupID"))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, memberViews(members), "", nil)
	c.JSON(resp.Status, resp)
}

type joinRequest struct {
	InvitationSecret string `json:"invitation_secret" binding:"required,shortsecret"`
}

// Join POST /api/groups/:groupID/members
func (h *GroupHandler) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Groups.Join(c.Request.Context(), credFrom(c), c.Param("groupID"), req.InvitationSecret); err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "joined", nil)
	c.JSON(resp.Status, resp)
}

// Leave DELETE /api/groups/:groupID/members/me
func (h *GroupHandler) Leave(c *gin.Context) {
	if err := h.Groups.Leave(c.Request.Context(), credFrom(c), c.Param("groupID")); err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "left group", nil)
	c.JSON(resp.Status, resp)
}

// RemoveMember DELETE /api/groups/:groupID/members/:userID
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	if err := h.Groups.RemoveMember(c.Request.Context(), credFrom(c), c.Param("groupID"), c.Param("userID")); err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "member removed", nil)
	c.JSON(resp.Status, resp)
}

// RotateSecret POST /api/groups/:groupID/invitation-secret
// Returns the fresh secret; it is shown only to the admin who rotated
// it.
func (h *GroupHandler) RotateSecret(c *gin.Context) {
	secret, err := h.Groups.RotateInvitationSecret(c.Request.Context(), credFrom(c), c.Param("groupID"))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"invitation_secret": secret}, "invitation secret rotated", nil)
	c.JSON(resp.Status, resp)
}

type setGroupProfileRequest struct {
	Name        string `json:"name" binding:"required,slug"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=64"`
}

// SetProfile PUT /api/groups/:groupID/profile
func (h *GroupHandler) SetProfile(c *gin.Context) {
	var req setGroupProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Groups.SetProfile(c.Request.Context(), credFrom(c), c.Param("groupID"), req.Name, req.DisplayName)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, view, "profile updated", nil)
	c.JSON(resp.Status, resp)
}

type setPermissionsRequest struct {
	RoleInInstance  string   `json:"role_in_instance" binding:"required,oneof=admin moderator default"`
	AllowedToModify []string `json:"allowed_to_modify" binding:"dive,entityid"`
}

// SetPermissions PUT /api/groups/:groupID/permissions
// Instance-admin group members only.
func (h *GroupHandler) SetPermissions(c *gin.Context) {
	var req setPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	directory, err := h.Groups.SetPermissions(c.Request.Context(), credFrom(c), c.Param("groupID"), req.RoleInInstance, req.AllowedToModify)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, permissionView(directory), "permissions updated", nil)
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/groups/:groupID
func (h *GroupHandler) Delete(c *gin.Context) {
	if err := h.Groups.Delete(c.Request.Context(), credFrom(c), c.Param("groupID")); err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "group deleted", nil)
	c.JSON(resp.Status, resp)
}
