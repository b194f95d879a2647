package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourhome-ai/yourhome/internal/auth"
	"github.com/yourhome-ai/yourhome/internal/domain"
)

// ContextKeyAccount is the gin context key holding the authenticated account.
const ContextKeyAccount = "account"

// SessionCookie is the login session cookie name.
const SessionCookie = "yourhome_session"

// SessionToken extracts the login token from the cookie or Authorization
// header.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireSession blocks requests without a valid login session and attaches
// the account to the request context.
func RequireSession(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}

		account, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}

		c.Set(ContextKeyAccount, account)
		c.Next()
	}
}

// RequireSubscription blocks premium actions for unsubscribed accounts. The
// flag is re-read on every gated request; the unlock decision is never
// cached. Must run after RequireSession.
func RequireSubscription(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := AccountFrom(c)
		if account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}

		subscribed, err := authService.IsSubscribed(c.Request.Context(), account.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if !subscribed {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":       domain.ErrSubscriptionRequired.Error(),
				"payment_url": authService.PaymentURL(account.Email),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AccountFrom returns the authenticated account attached by RequireSession.
func AccountFrom(c *gin.Context) *domain.Account {
	v, ok := c.Get(ContextKeyAccount)
	if !ok {
		return nil
	}
	account, _ := v.(*domain.Account)
	return account
}
