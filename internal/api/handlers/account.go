package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourhome-ai/yourhome/internal/api/middleware"
	"github.com/yourhome-ai/yourhome/internal/auth"
	"github.com/yourhome-ai/yourhome/internal/domain"
)

// AccountHandler handles registration, login, and subscription status.
type AccountHandler struct {
	auth *auth.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(authService *auth.Service) *AccountHandler {
	return &AccountHandler{auth: authService}
}

// RegisterPublicRoutes registers the unauthenticated account routes.
func (h *AccountHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

// RegisterSessionRoutes registers the routes requiring a login session.
func (h *AccountHandler) RegisterSessionRoutes(r *gin.RouterGroup) {
	r.POST("/logout", h.Logout)
	r.GET("/subscription", h.Subscription)
	r.POST("/subscription/activate", h.ActivateSubscription)
}

// Register creates a new account
func (h *AccountHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// Login authenticates and sets the session cookie
func (h *AccountHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"account": account, "token": token})
}

// Logout destroys the login session, whether it arrived as a cookie or a
// bearer token
func (h *AccountHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		h.auth.Logout(token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Subscription reports the subscription state and, when inactive, the payment
// flow entry point.
func (h *AccountHandler) Subscription(c *gin.Context) {
	account := middleware.AccountFrom(c)
	subscribed, err := h.auth.IsSubscribed(c.Request.Context(), account.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"subscribed": subscribed}
	if !subscribed {
		resp["payment_url"] = h.auth.PaymentURL(account.Email)
	}
	c.JSON(http.StatusOK, resp)
}

// ActivateSubscription marks the account subscribed after the payment flow
// completes.
func (h *AccountHandler) ActivateSubscription(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if err := h.auth.Subscribe(c.Request.Context(), account.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": true})
}
