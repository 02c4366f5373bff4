package api

import (
	"net/http" // HTTP status codes

	"tabungan/internal/auth"       // Credential checks
	"tabungan/internal/domain"     // Importing domain models
	"tabungan/internal/ledger"     // Ledger rules
	"tabungan/internal/middleware" // Session helpers
	"tabungan/internal/store"      // Persistence layer
	"tabungan/internal/utils"      // Session codec

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginRequest is accepted as JSON or form data
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"` // Username must be provided
	Password string `json:"password" form:"password" binding:"required"` // Password must be provided
}

// LoginResponse describes the new session
type LoginResponse struct {
	Principal domain.Principal `json:"principal"` // Authenticated identity
	Redirect  string           `json:"redirect"`  // Landing page for the role
}

// landingPath is where a principal belongs after login
func landingPath(p domain.Principal) string {
	if p.IsAdmin() {
		return "/admin"
	}
	return "/me"
}

// RootHandler sends each visitor to their landing page
func RootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			c.Redirect(http.StatusFound, middleware.LoginPath)
			return
		}
		c.Redirect(http.StatusFound, landingPath(principal))
	}
}

// LoginHandler verifies credentials and issues the session cookie
func LoginHandler(svc *auth.Service, codec *utils.SessionCodec, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON or form request to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required", "code": "invalid_input"})
			return
		}
		principal, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err) // No cookie is written on failure
			return
		}
		value, err := codec.Encode(principal) // Seal the principal
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.SetSessionCookie(c, codec, value, secure)
		c.JSON(http.StatusOK, LoginResponse{Principal: principal, Redirect: landingPath(principal)})
	}
}

// LogoutHandler clears the session cookie; calling it without a session is fine
func LogoutHandler(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearSessionCookie(c, secure)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": middleware.LoginPath})
	}
}

// MeHandler returns the linked student's balance and full history
func MeHandler(st *store.Store, l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := middleware.CurrentPrincipal(c) // Gate guarantees a principal
		if principal.IsAdmin() {
			c.Redirect(http.StatusFound, "/admin")
			return
		}
		ctx := c.Request.Context()
		student, err := st.GetLinkedStudent(ctx, principal.UserID) // Current link, not the one in the cookie
		if err != nil {
			respondError(c, err)
			return
		}
		balance, err := l.BalanceOf(ctx, student.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		transactions, err := l.ListTransactions(ctx, domain.TransactionFilter{StudentID: &student.ID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"student":      student,      // Linked student
			"balance":      balance,      // Derived balance
			"transactions": transactions, // Newest first
		})
	}
}
