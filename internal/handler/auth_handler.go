package handler

import (
	"net/http"

	"hospital-website-backend/internal/config"
	"hospital-website-backend/internal/middleware"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const csrfCookieName = "csrftoken"

type AuthHandler struct {
	authService *service.AuthService
	session     config.SessionConfig
	csrf        *utils.CSRFSigner
}

func NewAuthHandler(authService *service.AuthService, session config.SessionConfig, csrf *utils.CSRFSigner) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		session:     session,
		csrf:        csrf,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"omitempty,email,max=254"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type CreateAdminRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type ProfileRequest struct {
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "User registered successfully",
		"user":    newUserResponse(user),
	})
}

// Login handles user authentication and opens a session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)

	utils.SuccessResponse(c, gin.H{
		"message": "Login successful",
		"user":    newUserResponse(result.User),
	})
}

// Logout revokes the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.session.CookieName)
	if err := h.authService.Logout(c.Request.Context(), token, middleware.CurrentUser(c), c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}

	// Clear the cookie
	utils.ClearCookie(c, h.session.CookieName, h.session.Secure)

	utils.MessageResponse(c, "Logout successful")
}

// User returns the signed-in user
func (h *AuthHandler) User(c *gin.Context) {
	utils.SuccessResponse(c, newUserResponse(middleware.CurrentUser(c)))
}

// UpdateProfile changes the signed-in user's own details
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), service.ProfileInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newUserResponse(user))
}

// ChangePassword replaces the signed-in user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Both old_password and new_password are required")
		return
	}

	var sessionID uint
	if session := middleware.CurrentSession(c); session != nil {
		sessionID = session.ID
	}

	err := h.authService.ChangePassword(c.Request.Context(), middleware.CurrentUser(c), sessionID, req.OldPassword, req.NewPassword, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Password changed successfully")
}

// CreateAdmin bootstraps the first superuser
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields, ok := utils.ValidationFields(err); ok && fields["email"] != "" && req.Email != "" {
			utils.ValidationErrorResponse(c, fields)
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "Username, email, and password are required")
		return
	}

	user, err := h.authService.CreateAdmin(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Admin user created successfully",
		"user":    newUserResponse(user),
	})
}

// CSRF issues a signed csrftoken cookie
func (h *AuthHandler) CSRF(c *gin.Context) {
	token, err := h.csrf.Generate()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SetCookie(c, csrfCookieName, token, int(h.csrf.Expiry().Seconds()), false, h.session.Secure)
	utils.MessageResponse(c, "CSRF cookie set")
}

// Check reports whether the request carries a valid session
func (h *AuthHandler) Check(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.SuccessResponse(c, gin.H{"authenticated": false})
		return
	}
	utils.SuccessResponse(c, gin.H{
		"authenticated": true,
		"user":          newUserResponse(user),
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.session.Age.Seconds())
	if h.session.ExpireAtBrowserClose {
		maxAge = 0
	}
	utils.SetCookie(c, h.session.CookieName, token, maxAge, true, h.session.Secure)
}
