// Package ledger owns every product's lifecycle state and the append-only
// trail of transitions. All state writes go through Apply, which pairs the
// guard check with a compare-and-set update so concurrent callers cannot both
// succeed on the same product.
package ledger

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"btc-backoffice/internal/apperr"
	"btc-backoffice/internal/models"
)

type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Apply fires ev on the product. assignTo names the receiving salesperson and
// is only consulted for EventAssign.
//
// Retries of an already-applied transition are treated as no-op successes:
// if the product is found in the event's target state under the expected
// holder, Apply returns nil without writing a new audit entry. EventSell is
// exempt, a sold product can never be sold again.
func (l *Ledger) Apply(ctx context.Context, productID uint, ev Event, actor Actor, assignTo uint) error {
	r, ok := rules[ev]
	if !ok {
		return apperr.New(apperr.InvalidInput, "unknown event %q", ev)
	}

	db := l.db.WithContext(ctx)

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "product %d not found", productID)
		}
		return err
	}

	if l.alreadyApplied(&product, ev, actor, assignTo) {
		return nil
	}
	if err := Check(product.State, ev, actor, product.SalespersonID); err != nil {
		return err
	}

	updates := map[string]interface{}{"state": r.To}
	switch {
	case ev == EventAssign:
		updates["salesperson_id"] = assignTo
	case r.To == models.StateAvailable:
		updates["salesperson_id"] = nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Guard and write as one atomic compare-and-set: the UPDATE is keyed
		// on the state we validated, so a concurrent transition makes it
		// affect zero rows instead of clobbering the winner.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND state = ?", productID, r.From).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current models.Product
			if err := tx.First(&current, productID).Error; err != nil {
				return err
			}
			if l.alreadyApplied(&current, ev, actor, assignTo) {
				return nil
			}
			return apperr.New(apperr.ConflictRetry, "product %d was modified concurrently, retry", productID)
		}

		entry := models.TransitionLog{
			ProductID: productID,
			FromState: r.From,
			ToState:   r.To,
			Event:     string(ev),
			ActorID:   actor.ID,
			ActorRole: actor.Role,
		}
		return tx.Create(&entry).Error
	})
}

// alreadyApplied reports whether the product already sits in ev's target
// state under the holder this call would have produced.
func (l *Ledger) alreadyApplied(p *models.Product, ev Event, actor Actor, assignTo uint) bool {
	r := rules[ev]
	if ev == EventSell || p.State != r.To {
		return false
	}
	switch {
	case ev == EventAssign:
		return p.SalespersonID != nil && *p.SalespersonID == assignTo
	case r.To == models.StateAvailable:
		return p.SalespersonID == nil
	default:
		return p.SalespersonID != nil && *p.SalespersonID == actor.ID
	}
}

// History returns the product's transition trail, oldest first.
func (l *Ledger) History(ctx context.Context, productID uint) ([]models.TransitionLog, error) {
	var entries []models.TransitionLog
	err := l.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&entries).Error
	return entries, err
}

// Collections builds the four derived product views for a salesperson.
func (l *Ledger) Collections(ctx context.Context, salespersonID uint) (models.ProductCollections, error) {
	var cols models.ProductCollections
	db := l.db.WithContext(ctx)

	type bucket struct {
		state models.ProductState
		dst   *[]models.Product
	}
	for _, b := range []bucket{
		{models.StatePendingAcceptance, &cols.Pending},
		{models.StateInHand, &cols.Assigned},
		{models.StateReturnApplied, &cols.ReturnApplied},
		{models.StateSold, &cols.Sold},
	} {
		if err := db.Where("salesperson_id = ? AND state = ?", salespersonID, b.state).
			Order("updated_at desc").
			Find(b.dst).Error; err != nil {
			return models.ProductCollections{}, err
		}
	}
	return cols, nil
}
