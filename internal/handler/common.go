package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"btc-backoffice/internal/apperr"
	"btc-backoffice/internal/ledger"
	"btc-backoffice/pkg/database"
)

func ledgerForRequest(c *gin.Context) *ledger.Ledger {
	return ledger.New(database.DB)
}

func parseUintParam(c *gin.Context, name string, out *uint) error {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return err
	}
	*out = uint(v)
	return nil
}

// respondError writes a structured error response so clients can branch on
// kind instead of parsing messages.
func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(apperr.HTTPStatus(err), gin.H{"kind": appErr.Kind, "error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// actorFromContext reads the authenticated identity the middleware stored.
func actorFromContext(c *gin.Context) ledger.Actor {
	return ledger.Actor{
		ID:   c.GetUint("userID"),
		Role: c.GetString("role"),
	}
}
