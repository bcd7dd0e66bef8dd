package handlers

import (
	"net/http"

	"github.com/DDismyname28/home-portal/middleware"
	"github.com/DDismyname28/home-portal/services/user"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves account signup, signin and profile endpoints.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(us user.UserService) *AuthHandler {
	return &AuthHandler{Users: us}
}

// SignupHandler handles POST /api/auth/signup.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		Username       string `json:"username"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		MembershipType string `json:"membership_type"`
		CompanyName    string `json:"company_name"`
		StreetAddress  string `json:"street_address"`
		ZipCode        string `json:"zip_code"`
		City           string `json:"city"`
		State          string `json:"state"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid signup payload")
		return
	}

	created, err := h.Users.Register(user.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MembershipType: req.MembershipType,
		CompanyName:    req.CompanyName,
		StreetAddress:  req.StreetAddress,
		ZipCode:        req.ZipCode,
		City:           req.City,
		State:          req.State,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account created", zap.String("id", created.ID), zap.String("role", created.Role))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// SigninHandler handles POST /api/auth/signin.
func (h *AuthHandler) SigninHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	auth, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": auth})
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	u, err := h.Users.GetByID(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

// UpdateProfileHandler handles POST /api/profile.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	var req struct {
		Name     *string `json:"name"`
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Street   *string `json:"street"`
		ZipCode  *string `json:"zip_code"`
		City     *string `json:"city"`
		State    *string `json:"state"`
		Avatar   *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload")
		return
	}

	updated, err := h.Users.UpdateProfile(middleware.CallerID(c), user.ProfileInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Street:   req.Street,
		ZipCode:  req.ZipCode,
		City:     req.City,
		State:    req.State,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}
