package ledger

import (
	"btc-backoffice/internal/apperr"
	"btc-backoffice/internal/models"
)

// Event is a requested lifecycle transition. Each event has exactly one
// source and one target state.
type Event string

const (
	EventAssign        Event = "ASSIGN"
	EventAccept        Event = "ACCEPT"
	EventReject        Event = "REJECT"
	EventApplyReturn   Event = "APPLY_RETURN"
	EventApproveReturn Event = "APPROVE_RETURN"
	EventRejectReturn  Event = "REJECT_RETURN"
	EventSell          Event = "SELL"
)

// Actor is the already-authenticated caller of a transition. Identity comes
// in explicitly with every call; the ledger never reads ambient session state.
type Actor struct {
	ID   uint
	Role string
}

const (
	RoleAdmin       = "admin"
	RoleSalesperson = "salesperson"
)

type rule struct {
	From models.ProductState
	To   models.ProductState
	// holderGated events may only be performed by the salesperson currently
	// holding the product; the rest are admin actions.
	holderGated bool
}

var rules = map[Event]rule{
	EventAssign:        {From: models.StateAvailable, To: models.StatePendingAcceptance},
	EventAccept:        {From: models.StatePendingAcceptance, To: models.StateInHand, holderGated: true},
	EventReject:        {From: models.StatePendingAcceptance, To: models.StateAvailable, holderGated: true},
	EventApplyReturn:   {From: models.StateInHand, To: models.StateReturnApplied, holderGated: true},
	EventSell:          {From: models.StateInHand, To: models.StateSold, holderGated: true},
	EventApproveReturn: {From: models.StateReturnApplied, To: models.StateAvailable},
	EventRejectReturn:  {From: models.StateReturnApplied, To: models.StateInHand},
}

// Rule returns the transition rule for ev.
func Rule(ev Event) (from, to models.ProductState, err error) {
	r, ok := rules[ev]
	if !ok {
		return "", "", apperr.New(apperr.InvalidInput, "unknown event %q", ev)
	}
	return r.From, r.To, nil
}

// Check validates that ev may fire from state under actor, without touching
// storage. holder is the product's current salesperson, nil when unassigned.
func Check(state models.ProductState, ev Event, actor Actor, holder *uint) error {
	r, ok := rules[ev]
	if !ok {
		return apperr.New(apperr.InvalidInput, "unknown event %q", ev)
	}
	if r.holderGated {
		if actor.Role != RoleSalesperson || holder == nil || *holder != actor.ID {
			return apperr.New(apperr.UnauthorizedActor, "caller %d is not the holder of this product", actor.ID)
		}
	} else if actor.Role != RoleAdmin {
		return apperr.New(apperr.UnauthorizedActor, "event %s requires the admin role", ev)
	}
	if state != r.From {
		return apperr.New(apperr.InvalidTransition, "cannot %s a product in state %s", ev, state)
	}
	return nil
}
