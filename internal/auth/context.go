package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by FirebaseAuthMiddleware for the admin handlers.
const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// ActorUID returns the authenticated admin's Firebase UID, or "" when the
// route runs without authentication.
func ActorUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// ActorEmail returns the email claim of the authenticated admin, if the
// token carried one.
func ActorEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}
