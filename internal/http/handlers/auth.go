package handlers

import (
	"net/http"
	"strings"
	"time"

	"safarpay/internal/domain"
	"safarpay/internal/domain/models"
	"safarpay/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	login := strings.TrimSpace(req.Login)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}

	user, hash, err := repositories.UserRepository{}.GetByLogin(login)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "wrong login or password")
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong login or password")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		RespondError(c, http.StatusBadRequest, "name, email and phone are required")
		return
	}
	if len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	role := strings.TrimSpace(strings.ToLower(req.Role))
	if role == "" {
		role = domain.RoleRider
	}
	// admin accounts are provisioned out of band
	if role != domain.RoleRider && role != domain.RoleOwner {
		RespondError(c, http.StatusBadRequest, "role must be rider or owner")
		return
	}

	repo := repositories.UserRepository{}
	exists, err := repo.Exists(req.Email, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondError(c, http.StatusBadRequest, "email or phone already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not hash password")
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, Phone: req.Phone, Role: role, Status: "active"}
	id, err := repo.Create(user, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	user.ID = id

	token, err := issueToken(user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func issueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(JWTSecret())
}
