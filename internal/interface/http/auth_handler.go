package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/application"
	"github.com/communehq/commune/pkg/helpers"
	"github.com/communehq/commune/pkg/response"
	"github.com/communehq/commune/pkg/validation"
)

// AuthHandler exposes signup, the challenge-based login flow, email
// changes, and logout.
type AuthHandler struct {
	Accounts *application.AccountService
	Cookies  *helpers.CookieManager
	Logger   *logrus.Logger
}

func NewAuthHandler(accounts *application.AccountService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Cookies: cookies, Logger: logger}
}

func credFrom(c *gin.Context) application.Credential {
	return application.Credential{
		UserID:      c.GetString("userID"),
		TokenSecret: c.GetString("tokenSecret"),
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func badRequest(c *gin.Context, err error) {
	resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
	c.JSON(resp.Status, resp)
}

func domainError(c *gin.Context, err error) {
	resp := response.FromDomainError(c, err)
	c.JSON(resp.Status, resp)
}

type signupRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Signup POST /api/auth/signup
// Registers the address and emails a login code. Known addresses get a
// plain login code, so the response never reveals registration status.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ref, err := h.Accounts.Signup(c.Request.Context(), req.Email)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, ref, "verification code sent", nil)
	c.JSON(resp.Status, resp)
}

// LoginInit POST /api/auth/login/init
func (h *AuthHandler) LoginInit(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ref, err := h.Accounts.RequestLoginChallenge(c.Request.Context(), req.Email)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, ref, "verification code sent", nil)
	c.JSON(resp.Status, resp)
}

type loginRequest struct {
	UserID      string `json:"user_id" binding:"required,entityid"`
	ChallengeID string `json:"challenge_id" binding:"required,entityid"`
	Answer      string `json:"answer" binding:"required,shortsecret"`
}

// Login POST /api/auth/login
// Answers the challenge, mints an authentication token, and sets the
// session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.Accounts.Login(c.Request.Context(), req.UserID, req.ChallengeID, req.Answer, clientIP(c), c.GetHeader("User-Agent"))
	if err != nil {
		domainError(c, err)
		return
	}
	h.Cookies.SetSession(c, result.Session, result.ExpiresAt)
	resp := response.Success(c, http.StatusOK, result, "logged in", nil)
	c.JSON(resp.Status, resp)
}

type challengeRequest struct {
	Purpose string `json:"purpose" binding:"required,oneof=create-auth-token create-profile"`
}

// Challenge POST /api/auth/challenge (auth required)
// Opens a challenge against the caller's current email, e.g. before
// creating or extending a profile.
func (h *AuthHandler) Challenge(c *gin.Context) {
	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ref, err := h.Accounts.RequestChallenge(c.Request.Context(), credFrom(c), entityPurpose(req.Purpose))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, ref, "verification code sent", nil)
	c.JSON(resp.Status, resp)
}

type emailInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailInit POST /api/auth/email/init (auth required)
// Opens a set-email challenge against the NEW address.
func (h *AuthHandler) EmailInit(c *gin.Context) {
	var req emailInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ref, err := h.Accounts.RequestEmailChangeChallenge(c.Request.Context(), credFrom(c), req.Email)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, ref, "verification code sent", nil)
	c.JSON(resp.Status, resp)
}

type emailConfirmRequest struct {
	Email       string `json:"email" binding:"required,email"`
	ChallengeID string `json:"challenge_id" binding:"required,entityid"`
	Answer      string `json:"answer" binding:"required,shortsecret"`
}

// EmailConfirm POST /api/auth/email/confirm (auth required)
func (h *AuthHandler) EmailConfirm(c *gin.Context) {
	var req emailConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.Accounts.SetEmail(c.Request.Context(), credFrom(c), req.Email, req.ChallengeID, req.Answer)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, userView(user), "email changed", nil)
	c.JSON(resp.Status, resp)
}

// Logout POST /api/auth/logout (auth required)
// Deletes the token behind the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Accounts.Logout(c.Request.Context(), credFrom(c), c.GetString("tokenID")); err != nil {
		domainError(c, err)
		return
	}
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, nil, "logged out", nil)
	c.JSON(resp.Status, resp)
}

type revokeRequest struct {
	TokenID string `json:"token_id" binding:"required,entityid"`
}

// Revoke POST /api/auth/revoke (auth required)
// Deletes one authentication token, e.g. another device's session.
func (h *AuthHandler) Revoke(c *gin.Context) {
	var req revokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Accounts.Logout(c.Request.Context(), credFrom(c), req.TokenID); err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "token revoked", nil)
	c.JSON(resp.Status, resp)
}

// LogoutAll POST /api/auth/logout/all (auth required)
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.Accounts.LogoutEverywhere(c.Request.Context(), credFrom(c)); err != nil {
		domainError(c, err)
		return
	}
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, nil, "logged out everywhere", nil)
	c.JSON(resp.Status, resp)
}
