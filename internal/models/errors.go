package models

import (
	"fmt"

	"github.com/miblum/go-fund-notice/internal/common"
)

type EntityKind string

const (
	EntityTransaction EntityKind = "transaction"
	EntityCustomer    EntityKind = "customer"
	EntityFund        EntityKind = "fund"
	EntityBank        EntityKind = "bank"
	EntityAccount     EntityKind = "account"
	EntityClient      EntityKind = "client"
	EntityEmployee    EntityKind = "employee"
	EntityReference   EntityKind = "transaction reference"
)

// EntityError is the single failure shape of every reference resolver.
// It matches common.ErrEntityNotFound and, when set, the cause.
type EntityError struct {
	Entity EntityKind
	ID     string
	Cause  error
}

func NewEntityError(entity EntityKind, id string, cause error) *EntityError {
	return &EntityError{Entity: entity, ID: id, Cause: cause}
}

func (e *EntityError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s %q not found: %v", e.Entity, e.ID, e.Cause)
}

func (e *EntityError) Unwrap() []error {
	if e.Cause == nil {
		return []error{common.ErrEntityNotFound}
	}
	return []error{common.ErrEntityNotFound, e.Cause}
}
