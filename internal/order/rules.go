package order

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
)

var (
	// ErrNotPermitted is returned when the acting subject may not perform
	// a mutation on an order.
	ErrNotPermitted = errors.New("order: not permitted")

	// ErrInvalidTransition is returned for a status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("order: invalid status transition")
)

// Actor is the capacity in which a status change is attempted.
type Actor uint8

const (
	ActorOwner Actor = iota
	ActorAdmin
)

func (a Actor) String() string {
	if a == ActorAdmin {
		return "admin"
	}
	return "owner"
}

// Transition checks whether actor may move an order from one status to
// another.
//
//	owner: pending -> canceled
//	admin: any non-terminal status -> any other status
//
// Nothing leaves delivered, canceled or rejected.
func Transition(actor Actor, from, to Status) error {
	if !Known(from) || !Known(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	ok := false
	switch {
	case IsTerminal(from), from == to:
	case actor == ActorOwner:
		ok = from == Pending && to == Canceled
	case actor == ActorAdmin:
		ok = true
	}

	if !ok {
		return fmt.Errorf("%w: %s cannot move %s -> %s", ErrInvalidTransition, actor, from, to)
	}
	return nil
}

// IsOwner reports whether subjectID owns o, whichever shape the owner
// reference arrived in. An empty subject owns nothing.
func IsOwner(o shopsdk.Order, subjectID string) bool {
	return o.User.SameUser(subjectID)
}

// CanModify reports whether subjectID may edit o's delivery details.
func CanModify(o shopsdk.Order, subjectID string) bool {
	return IsOwner(o, subjectID) && o.Status == Pending
}

// CanCancel reports whether subjectID may cancel o.
func CanCancel(o shopsdk.Order, subjectID string) bool {
	return IsOwner(o, subjectID) && o.Status == Pending
}
