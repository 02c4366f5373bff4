package api

import (
	"time" // Timezone for date filters

	"tabungan/internal/auth"       // Credential checks
	"tabungan/internal/domain"     // Roles
	"tabungan/internal/ledger"     // Ledger rules
	"tabungan/internal/middleware" // Session and role gates
	"tabungan/internal/store"      // Persistence layer
	"tabungan/internal/utils"      // Sessions and cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators the handlers need
type Deps struct {
	Store         *store.Store        // Persistence layer
	Ledger        *ledger.Ledger      // Balance and transaction rules
	Auth          *auth.Service       // Login and account creation
	Sessions      *utils.SessionCodec // Session cookie codec
	Cache         *utils.Cache        // Redis cache, may be disabled
	Location      *time.Location      // Timezone for date filters and "today"
	SecureCookies bool                // Send cookies over HTTPS only
	AppName       string              // Display name
}

// RegisterRoutes mounts every route on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.SessionMiddleware(d.Sessions)) // Attach the principal to every request

	// Auth routes
	r.GET("/", RootHandler())
	r.POST("/login", LoginHandler(d.Auth, d.Sessions, d.SecureCookies))
	r.POST("/logout", LogoutHandler(d.SecureCookies))

	// Member routes
	r.GET("/me", middleware.RequireAuthenticated(), MeHandler(d.Store, d.Ledger))

	// Admin routes (admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireRole(domain.RoleAdmin))
	adminGroup.GET("", DashboardHandler(d.Ledger, d.Cache, d.Location, d.AppName))
	adminGroup.GET("/students", ListStudentsHandler(d.Store))
	adminGroup.POST("/students", CreateStudentHandler(d.Store, d.Cache))
	adminGroup.GET("/students/:id", GetStudentHandler(d.Ledger))
	adminGroup.DELETE("/students/:id", DeleteStudentHandler(d.Store, d.Cache))
	adminGroup.POST("/students/:id/delete", DeleteStudentHandler(d.Store, d.Cache)) // HTML forms cannot send DELETE
	adminGroup.POST("/students/:id/deposit", DepositHandler(d.Ledger, d.Cache))
	adminGroup.POST("/students/:id/withdraw", WithdrawHandler(d.Ledger, d.Cache))
	adminGroup.GET("/transactions", ListTransactionsHandler(d.Ledger, d.Location))
	adminGroup.GET("/transactions/print", PrintTransactionsHandler(d.Ledger, d.Location))
	adminGroup.POST("/accounts", CreateAccountHandler(d.Auth))
}
