package globals

import (
	"context"
	"log"
	"os"
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const UsernameKey ContextKey = "username"

var Ctx = context.Background()

// JwtSecret signs admin session tokens. Loaded from the environment; a
// missing secret is a startup error, not a silent hardcoded default.
var JwtSecret []byte

func LoadSecrets() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	JwtSecret = []byte(secret)
}
