package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"campusbus/internal/http/middleware"
	"campusbus/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	FullName string `json:"fullName"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	profile, created, err := profileService(c).EnsureProfile(req.Email, string(hash), req.FullName)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !created {
		RespondError(c, http.StatusBadRequest, "email already registered", nil)
		return
	}

	token, err := signToken(profile.ID, profile.Role, profile.IsAdmin)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not create token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": profile})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.ProfileRepository{DB: db()}
	profile, hash, err := repo.GetCredentials(req.Email)
	if err == sql.ErrNoRows {
		RespondError(c, http.StatusUnauthorized, "email or password is incorrect", nil)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not load account", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "email or password is incorrect", nil)
		return
	}

	token, err := signToken(profile.ID, profile.Role, profile.IsAdmin)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not create token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": profile})
}

func signToken(userID int64, role string, isAdmin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"role":     role,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(middleware.JWTSecret())
}
