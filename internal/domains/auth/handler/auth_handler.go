package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/shared/response"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

// TokenRequest - POST /v1/auth/token
type TokenRequest struct {
	Key       string `json:"key"`
	Librarian string `json:"librarian"`
}

func (r TokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Key, validation.Required.Error("key is required")),
		validation.Field(&r.Librarian, validation.Length(0, 64)),
	)
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthHandler exchanges the shared librarian key for a bearer token.
type AuthHandler struct {
	jwt     *jwt.Manager
	keyHash []byte
}

// NewAuthHandler takes the bcrypt hash of the librarian key. An empty
// hash disables token issuance.
func NewAuthHandler(manager *jwt.Manager, keyHash string) *AuthHandler {
	return &AuthHandler{
		jwt:     manager,
		keyHash: []byte(keyHash),
	}
}

// ════════════════════════════════════════════════════════════════
// ISSUE TOKEN: POST /v1/auth/token
// ════════════════════════════════════════════════════════════════

func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid token request", err)
		return
	}

	if len(h.keyHash) == 0 {
		response.Forbidden(c, "token issuance is disabled")
		return
	}
	if err := bcrypt.CompareHashAndPassword(h.keyHash, []byte(req.Key)); err != nil {
		logger.Warn("librarian key rejected", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		response.Unauthorized(c, "invalid librarian key")
		return
	}

	subject := req.Librarian
	if subject == "" {
		subject = "librarian"
	}
	token, expiresAt, err := h.jwt.GenerateLibrarianToken(subject)
	if err != nil {
		logger.Error("failed to issue librarian token", err)
		response.InternalServerError(c, "failed to issue token")
		return
	}

	response.Success(c, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
