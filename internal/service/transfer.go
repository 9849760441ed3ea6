// Package service orchestrates multi-product operations against the ledger.
package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"btc-backoffice/internal/apperr"
	"btc-backoffice/internal/ledger"
	"btc-backoffice/internal/models"
)

const (
	DecisionAccept  = "accept"
	DecisionReject  = "reject"
	DecisionApprove = "approve"
)

// ItemResult reports the outcome of one member of a bulk operation.
type ItemResult struct {
	ProductID uint        `json:"id"`
	OK        bool        `json:"ok"`
	Kind      apperr.Kind `json:"kind,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// Transfer runs the bulk assignment and return workflows. Members are
// processed independently: one invalid product fails only its own entry and
// never aborts its siblings.
type Transfer struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewTransfer(db *gorm.DB) *Transfer {
	return &Transfer{db: db, ledger: ledger.New(db)}
}

// Assign moves Available products to PendingAcceptance under salespersonID.
func (t *Transfer) Assign(ctx context.Context, productIDs []uint, salespersonID uint, actor ledger.Actor) ([]ItemResult, error) {
	if len(productIDs) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "product_ids must not be empty")
	}

	var sp models.Salesperson
	if err := t.db.WithContext(ctx).First(&sp, salespersonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "salesperson %d not found", salespersonID)
		}
		return nil, err
	}

	return t.applyEach(ctx, productIDs, ledger.EventAssign, actor, salespersonID), nil
}

// RespondToAssignment resolves pending assignments: accept moves the product
// to InHand, reject returns it to inventory.
func (t *Transfer) RespondToAssignment(ctx context.Context, productIDs []uint, decision string, actor ledger.Actor) ([]ItemResult, error) {
	var ev ledger.Event
	switch decision {
	case DecisionAccept:
		ev = ledger.EventAccept
	case DecisionReject:
		ev = ledger.EventReject
	default:
		return nil, apperr.New(apperr.InvalidInput, "decision must be %q or %q, got %q", DecisionAccept, DecisionReject, decision)
	}
	if len(productIDs) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "product_ids must not be empty")
	}
	return t.applyEach(ctx, productIDs, ev, actor, 0), nil
}

// ApplyReturn requests return approval for InHand products.
func (t *Transfer) ApplyReturn(ctx context.Context, productIDs []uint, actor ledger.Actor) ([]ItemResult, error) {
	if len(productIDs) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "product_ids must not be empty")
	}
	return t.applyEach(ctx, productIDs, ledger.EventApplyReturn, actor, 0), nil
}

// RespondToReturn resolves return requests: approve releases the product back
// to inventory, reject hands it back to the salesperson.
func (t *Transfer) RespondToReturn(ctx context.Context, productIDs []uint, decision string, actor ledger.Actor) ([]ItemResult, error) {
	var ev ledger.Event
	switch decision {
	case DecisionApprove:
		ev = ledger.EventApproveReturn
	case DecisionReject:
		ev = ledger.EventRejectReturn
	default:
		return nil, apperr.New(apperr.InvalidInput, "decision must be %q or %q, got %q", DecisionApprove, DecisionReject, decision)
	}
	if len(productIDs) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "product_ids must not be empty")
	}
	return t.applyEach(ctx, productIDs, ev, actor, 0), nil
}

func (t *Transfer) applyEach(ctx context.Context, productIDs []uint, ev ledger.Event, actor ledger.Actor, assignTo uint) []ItemResult {
	results := make([]ItemResult, 0, len(productIDs))
	for _, id := range productIDs {
		res := ItemResult{ProductID: id, OK: true}
		if err := t.ledger.Apply(ctx, id, ev, actor, assignTo); err != nil {
			res.OK = false
			res.Kind = apperr.KindOf(err)
			res.Reason = err.Error()
			var appErr *apperr.Error
			if errors.As(err, &appErr) {
				res.Reason = appErr.Message
			}
		}
		results = append(results, res)
	}
	return results
}
