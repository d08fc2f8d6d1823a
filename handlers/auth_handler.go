// handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/middleware"
	"github.com/rriehl64/collibra-app-sub009/models"
	"github.com/rriehl64/collibra-app-sub009/store"
	"github.com/rriehl64/collibra-app-sub009/utils"
)

// dummyHash keeps unknown-email logins as slow as wrong-password ones.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3Zq0mGQwz3Q3n1y8S1JQ0eW"

type AuthHandler struct {
	users  store.Repository[models.User]
	tokens *utils.TokenIssuer
	logger *zap.Logger
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthHandler(users store.Repository[models.User], tokens *utils.TokenIssuer, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.ParseJSON(r, &creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide an email and password")
		return
	}

	user, err := h.users.FindOne(r.Context(), bson.M{"email": creds.Email})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = utils.CheckPasswordHash(creds.Password, dummyHash)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login lookup failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Authentication service unavailable")
		return
	}
	if !utils.CheckPasswordHash(creds.Password, user.Password) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

// Register creates a plain user account and signs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		Department string `json:"department"`
		JobTitle   string `json:"jobTitle"`
	}
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(in.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	user := &models.User{
		ID:              primitive.NewObjectID(),
		Name:            strings.TrimSpace(in.Name),
		Email:           in.Email,
		Password:        in.Password,
		Role:            models.RoleUser,
		Department:      in.Department,
		JobTitle:        in.JobTitle,
		AssignedDomains: []string{},
	}
	user.Touch(time.Now().UTC())
	if err := user.BeforeSave(); err != nil {
		h.logger.Error("register failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	if err := user.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		code, msg := errorStatus(err)
		if code == http.StatusInternalServerError {
			h.logger.Error("register failed", zap.Error(err))
			msg = "Failed to register user"
		}
		utils.RespondWithError(w, code, msg)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	id, err := store.ParseID(claims.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}
		h.logger.Error("load current user failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	user.Sanitize()
	utils.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, code int, user *models.User) {
	token, err := h.tokens.GenerateJWT(user.ID.Hex(), user.Name, user.Email, user.Role)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Token generation failed")
		return
	}
	user.Sanitize()
	utils.RespondWithJSON(w, code, authResponse{Token: token, User: user})
}
