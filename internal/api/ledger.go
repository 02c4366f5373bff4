package api

import (
	"context"       // Context for Redis operations
	"encoding/json" // Numeric amounts from JSON or forms
	"fmt"           // Error wrapping
	"net/http"      // HTTP status codes

	"tabungan/internal/domain"     // Importing domain models
	"tabungan/internal/ledger"     // Ledger rules
	"tabungan/internal/middleware" // Session helpers
	"tabungan/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Idempotency key validation
	"github.com/sirupsen/logrus" // Logging
)

// IdempotencyHeader lets clients make a deposit or withdrawal safe to resubmit
const IdempotencyHeader = "Idempotency-Key"

// MoneyRequest is the body of a deposit or withdrawal
type MoneyRequest struct {
	Amount json.Number `json:"amount" form:"amount"` // Positive integer amount
	Note   string      `json:"note" form:"note"`     // Optional note, truncated to 200 characters
}

// recordFunc is Ledger.RecordDeposit or Ledger.RecordWithdrawal
type recordFunc func(ctx context.Context, studentID uint, amount int64, note string, adminID *uint) (*domain.Transaction, error)

// currentAdmin returns the acting admin's principal
func currentAdmin(c *gin.Context) (domain.Principal, bool) {
	return middleware.CurrentPrincipal(c)
}

// DepositHandler records a deposit for the student in the path
func DepositHandler(l *ledger.Ledger, cache *utils.Cache) gin.HandlerFunc {
	return moneyHandler(l, cache, l.RecordDeposit)
}

// WithdrawHandler records a withdrawal for the student in the path
func WithdrawHandler(l *ledger.Ledger, cache *utils.Cache) gin.HandlerFunc {
	return moneyHandler(l, cache, l.RecordWithdrawal)
}

func moneyHandler(l *ledger.Ledger, cache *utils.Cache, record recordFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		studentID, err := uintParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		var req MoneyRequest // Bind JSON or form request to struct
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, fmt.Errorf("%v: %w", err, domain.ErrInvalidAmount)) // Non-numeric amount
			return
		}
		amount, err := ledger.ParseAmount(req.Amount.String())
		if err != nil {
			respondError(c, err)
			return
		}

		// Claim the idempotency key before writing, release it if the write fails
		requestKey := ""
		if key := c.GetHeader(IdempotencyHeader); key != "" {
			id, err := uuid.Parse(key)
			if err != nil {
				respondError(c, fmt.Errorf("idempotency key %q: %w", key, domain.ErrInvalidInput))
				return
			}
			requestKey = utils.RequestKeyPrefix + id.String()
			claimed, err := cache.ClaimKey(ctx, requestKey, utils.RequestKeyTTL)
			if err != nil {
				respondError(c, err)
				return
			}
			if !claimed {
				respondError(c, fmt.Errorf("request %s already processed: %w", id, domain.ErrDuplicate))
				return
			}
		}

		principal, _ := currentAdmin(c) // Acting admin
		tx, err := record(ctx, studentID, amount, req.Note, &principal.UserID)
		if err != nil {
			if requestKey != "" {
				if derr := cache.Delete(ctx, requestKey); derr != nil {
					logrus.WithError(derr).Warn("Failed to release idempotency key")
				}
			}
			respondError(c, err)
			return
		}
		invalidateStats(ctx, cache)

		balance, err := l.BalanceOf(ctx, studentID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"transaction": tx,      // Recorded entry
			"balance":     balance, // Balance after the entry
		})
	}
}
