package http

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/basit438/popacart-backend/configs"
	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserHandler struct {
	cfg   configs.Config
	users usecase.UserRepo
}

func NewUserHandler(cfg configs.Config, users usecase.UserRepo) *UserHandler {
	return &UserHandler{cfg: cfg, users: users}
}

type registerReq struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Role        string `json:"role"`
}

// Register handles POST /user/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "full name, email, password, and phone number are required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRe.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid email format"})
		return
	}

	role := entity.Role(req.Role)
	switch role {
	case entity.RoleUser, entity.RoleSeller, entity.RoleAdmin:
	case "":
		role = entity.RoleUser
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unknown role"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, err)
		return
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.users.Create(ctx, u); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "user registered successfully",
		"user": gin.H{
			"id":          u.ID,
			"fullName":    u.FullName,
			"email":       u.Email,
			"phoneNumber": u.PhoneNumber,
			"role":        u.Role,
		},
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /user/login and issues the bearer token every protected
// route expects.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "all fields are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		writeError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "incorrect password"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   h.cfg.Security.Issuer,
		"aud":   h.cfg.Security.Audience,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(h.cfg.Security.TTL).Unix(),
		"uid":   u.ID,
		"email": u.Email,
		"role":  string(u.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "user logged in successfully",
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int64(h.cfg.Security.TTL.Seconds()),
		"user": gin.H{
			"id":       u.ID,
			"fullName": u.FullName,
			"email":    u.Email,
			"role":     u.Role,
		},
	})
}
