// internal/handlers/auth_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/mamacare-api/internal/middleware"
	"github.com/harentsoaR/mamacare-api/internal/models"
	"github.com/harentsoaR/mamacare-api/internal/services"
	"github.com/harentsoaR/mamacare-api/internal/utils"
)

const refreshCookie = "refresh_token"

type SignupUserRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	DeliveryStatus string `json:"deliveryStatus" binding:"omitempty,oneof=postpartum preconception pregnancy"`
}

type SignupDoctorRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	MedicalID       string `json:"medicalID" binding:"required"`
	WorkExperience  string `json:"workExperience" binding:"required"`
	ClinicName      string `json:"clinicName" binding:"required"`
	MotherhoodStage string `json:"motherhoodStage" binding:"omitempty,oneof=postpartum preconception pregnancy"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// signupResponse flattens the account next to the access token.
type signupResponse struct {
	*models.Account
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        *models.Account `json:"user"`
}

// passwordFits rejects passwords longer than bcrypt accepts. The binding
// max counts characters, so multibyte input needs a byte check.
func passwordFits(c *gin.Context, password string) bool {
	if len(password) > utils.MaxPasswordBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at most 72 bytes"})
		return false
	}
	return true
}

func (h *Handler) SignupUser(c *gin.Context) {
	var req SignupUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !passwordFits(c, req.Password) {
		return
	}

	res, err := h.Auth.SignupUser(c.Request.Context(), services.UserSignup{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Phone:          req.Phone,
		DeliveryStatus: req.DeliveryStatus,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusCreated, signupResponse{Account: res.Account, AccessToken: res.AccessToken, TokenType: "bearer"})
}

func (h *Handler) SignupDoctor(c *gin.Context) {
	var req SignupDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !passwordFits(c, req.Password) {
		return
	}

	res, err := h.Auth.SignupDoctor(c.Request.Context(), services.DoctorSignup{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Phone:           req.Phone,
		MedicalID:       req.MedicalID,
		WorkExperience:  req.WorkExperience,
		ClinicName:      req.ClinicName,
		MotherhoodStage: req.MotherhoodStage,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusCreated, signupResponse{Account: res.Account, AccessToken: res.AccessToken, TokenType: "bearer"})
}

func (h *Handler) LoginUser(c *gin.Context) {
	h.login(c, h.Auth.LoginUser)
}

func (h *Handler) LoginDoctor(c *gin.Context) {
	h.login(c, h.Auth.LoginDoctor)
}

func (h *Handler) login(c *gin.Context, login func(ctx context.Context, email, password string) (*services.AuthResult, error)) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusOK, loginResponse{AccessToken: res.AccessToken, TokenType: "bearer", User: res.Account})
}

// GetCurrentUser returns the profile of the authenticated caller.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	accountID, role := middleware.Caller(c)
	account, err := h.Auth.Profile(c.Request.Context(), accountID, role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// Refresh issues a new access token from the refresh_token cookie, or from
// the request body when no cookie is sent.
func (h *Handler) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token missing"})
		return
	}

	access, err := h.Auth.Refresh(token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "token_type": "bearer"})
}

// Logout clears the refresh cookie. Issued access tokens stay valid until
// they expire.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, "", -1, "/auth", "", h.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, token, int(h.RefreshTTL.Seconds()), "/auth", "", h.CookieSecure, true)
}
