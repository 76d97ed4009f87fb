// Package order models the order lifecycle: statuses, who may move an
// order between them, and the service that drives those moves against the
// backend.
package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
)

// Status is an order's lifecycle state.
type Status = shopsdk.OrderStatus

const (
	Pending   = shopsdk.StatusPending
	Shipped   = shopsdk.StatusShipped
	Delivered = shopsdk.StatusDelivered
	Canceled  = shopsdk.StatusCanceled
	Rejected  = shopsdk.StatusRejected
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{Pending, Shipped, Delivered, Canceled, Rejected}

// ErrUnknownStatus is returned by ParseStatus.
var ErrUnknownStatus = errors.New("order: unknown status")

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !Known(st) {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// Known reports whether s is one of Statuses.
func Known(s Status) bool {
	for _, k := range Statuses {
		if s == k {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no actor may move an order out of s.
func IsTerminal(s Status) bool {
	return s == Delivered || s == Canceled || s == Rejected
}

// StatusText is the display label for s. Unknown statuses are returned
// as is.
func StatusText(s Status) string {
	switch s {
	case Pending:
		return "Pending"
	case Shipped:
		return "Shipped"
	case Delivered:
		return "Delivered"
	case Canceled:
		return "Canceled"
	case Rejected:
		return "Rejected"
	default:
		return string(s)
	}
}
