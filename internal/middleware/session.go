package middleware

import (
	"net/http" // Cookie options

	"tabungan/internal/domain" // Session principal
	"tabungan/internal/utils"  // Session codec

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// SessionCookie is the name of the cookie carrying the sealed principal
const SessionCookie = "tsa_session"

const principalKey = "principal"

// SessionMiddleware decodes the session cookie, if any, and stores the principal in
// the context. Missing, tampered and expired cookies all leave the request anonymous.
func SessionMiddleware(codec *utils.SessionCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(SessionCookie) // Read the session cookie
		if err != nil || value == "" {
			c.Next() // Anonymous request
			return
		}
		principal, err := codec.Decode(value) // Open and verify the cookie
		if err != nil {
			logrus.WithError(err).Debug("Ignoring invalid session cookie")
			c.Next()
			return
		}
		c.Set(principalKey, principal) // Store principal in context
		c.Next()
	}
}

// CurrentPrincipal returns the principal attached by SessionMiddleware
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// SetSessionCookie writes the session cookie with an absolute max age
func SetSessionCookie(c *gin.Context, codec *utils.SessionCodec, value string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, value, int(codec.TTL().Seconds()), "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie immediately
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
