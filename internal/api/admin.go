package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Error wrapping
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Timezone

	"tabungan/internal/auth"   // Account creation
	"tabungan/internal/domain" // Importing domain models
	"tabungan/internal/ledger" // Ledger rules
	"tabungan/internal/store"  // Persistence layer
	"tabungan/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// CreateStudentRequest is accepted as JSON or form data
type CreateStudentRequest struct {
	Name  string `json:"name" form:"name" binding:"required"` // Name must be provided
	Class string `json:"class" form:"class"`                  // Optional class label
	Phone string `json:"phone" form:"phone"`                  // Optional phone
}

// CreateAccountRequest provisions a login
type CreateAccountRequest struct {
	Username  string `json:"username" form:"username" binding:"required"` // Username must be provided
	Password  string `json:"password" form:"password" binding:"required"` // Password must be provided
	Role      string `json:"role" form:"role" binding:"required"`         // admin or member
	StudentID *uint  `json:"student_id" form:"student_id"`                // Required for members
}

// uintParam parses a numeric path parameter
func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%s %q: %w", name, c.Param(name), domain.ErrInvalidInput)
	}
	return uint(v), nil
}

// transactionFilter reads student_id, from and to query parameters
func transactionFilter(c *gin.Context, loc *time.Location) (domain.TransactionFilter, error) {
	var f domain.TransactionFilter
	if raw := c.Query("student_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, fmt.Errorf("student_id %q: %w", raw, domain.ErrInvalidInput)
		}
		id := uint(v)
		f.StudentID = &id // Filter by student
	}
	from, to, err := ledger.ParseDateFilter(c.Query("from"), c.Query("to"), loc)
	if err != nil {
		return f, err
	}
	f.From, f.To = from, to // Inclusive date range
	return f, nil
}

// invalidateStats drops the cached dashboard after a write
func invalidateStats(ctx context.Context, cache *utils.Cache) {
	if err := cache.Delete(ctx, utils.StatsCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate stats cache")
	}
}

// DashboardHandler returns the admin dashboard figures, cached for a minute
func DashboardHandler(l *ledger.Ledger, cache *utils.Cache, loc *time.Location, appName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, cached, err := utils.Remember(c.Request.Context(), cache, utils.StatsCacheKey, utils.StatsCacheTTL,
			func(ctx context.Context) (domain.AdminStats, error) {
				return l.Stats(ctx, loc)
			})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"app_name": appName, // Application name
			"stats":    stats,   // Dashboard figures
			"cached":   cached,  // Served from cache
		})
	}
}

// ListStudentsHandler searches students by name, class or phone
func ListStudentsHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q") // Free-text query, empty lists everyone
		students, err := st.SearchStudents(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"students": students, "q": q})
	}
}

// CreateStudentHandler adds a student record
func CreateStudentHandler(st *store.Store, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateStudentRequest // Bind JSON or form request to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required", "code": "invalid_input"})
			return
		}
		student := &domain.Student{Name: req.Name, Class: req.Class, Phone: req.Phone}
		if err := st.CreateStudent(c.Request.Context(), student); err != nil {
			respondError(c, err)
			return
		}
		invalidateStats(c.Request.Context(), cache)
		logrus.WithFields(logrus.Fields{
			"student_id": student.ID,   // New student
			"name":       student.Name, // Name
		}).Info("Student created")
		c.JSON(http.StatusCreated, gin.H{"student": student})
	}
}

// GetStudentHandler returns a student with its derived balance
func GetStudentHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uintParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		ctx := c.Request.Context()
		student, err := l.GetStudent(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		balance, err := l.BalanceOf(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"student": student, "balance": balance})
	}
}

// DeleteStudentHandler removes a student together with its transactions
func DeleteStudentHandler(st *store.Store, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uintParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		if err := st.DeleteStudent(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		invalidateStats(c.Request.Context(), cache)
		principal, _ := currentAdmin(c)
		logrus.WithFields(logrus.Fields{
			"student_id": id,               // Deleted student
			"admin_id":   principal.UserID, // Acting admin
		}).Info("Student deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
	}
}

// ListTransactionsHandler lists the ledger filtered by student and date range
func ListTransactionsHandler(l *ledger.Ledger, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := transactionFilter(c, loc)
		if err != nil {
			respondError(c, err)
			return
		}
		transactions, err := l.ListTransactions(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"transactions": transactions, // Newest first
			"filter": gin.H{
				"student_id": c.Query("student_id"),
				"from":       c.Query("from"),
				"to":         c.Query("to"),
			},
		})
	}
}

// PrintTransactionsHandler returns the filtered ledger with totals for printing
func PrintTransactionsHandler(l *ledger.Ledger, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := transactionFilter(c, loc)
		if err != nil {
			respondError(c, err)
			return
		}
		report, err := l.Report(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// CreateAccountHandler provisions an admin or member login
func CreateAccountHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAccountRequest // Bind JSON or form request to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username, password and role are required", "code": "invalid_input"})
			return
		}
		user, err := svc.CreateAccount(c.Request.Context(), req.Username, req.Password, req.Role, req.StudentID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}
