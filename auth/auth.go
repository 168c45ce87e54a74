package auth

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"tourdesk/globals"
	"tourdesk/middleware"
	"tourdesk/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the admin credentials configured in the environment
// (ADMIN_USER, ADMIN_PASSWORD_HASH as a bcrypt hash) and issues a session
// token. The gateway has no user database of its own.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	adminUser := os.Getenv("ADMIN_USER")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUser == "" || passwordHash == "" {
		utils.RespondWithError(w, http.StatusInternalServerError, "Admin login is not configured")
		return
	}

	if input.Username != adminUser {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	claims := &middleware.Claims{
		Username: input.Username,
		UserID:   input.Username,
		Role:     []string{"admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": tokenString})
}
