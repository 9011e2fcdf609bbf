package player

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller-recoverable failures that need no payload.
var (
	// ErrNotOwner is returned when an equip target is not in the player's inventory.
	ErrNotOwner = errors.New("item not owned by player")
	// ErrInvalidSlot is returned for a bad armor slot or companion slot number.
	ErrInvalidSlot = errors.New("invalid equipment slot")
	// ErrDuplicateEquip is returned when a companion is already equipped in either slot.
	ErrDuplicateEquip = errors.New("companion already equipped")
	// ErrInvalidAssociation is returned when joining an empty or nonexistent association.
	ErrInvalidAssociation = errors.New("association does not exist")
	// ErrAtCapacity is returned when joining a full association.
	ErrAtCapacity = errors.New("association is at capacity")
	// ErrPlayerNotFound is returned by lookups that miss by identity or sequence number.
	ErrPlayerNotFound = errors.New("player not found")
)

// InvalidInputError reports a rejected field value, such as an over-long name
// or an unknown association rank.
type InvalidInputError struct {
	Field  string
	Reason string
	Limit  int // 0 when no limit applies
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidResourceError reports an unknown resource name.
type InvalidResourceError struct {
	Name string
}

func (e *InvalidResourceError) Error() string {
	return fmt.Sprintf("unknown resource %q", e.Name)
}

// InsufficientResourceError reports a withdrawal that would overdraw a resource.
type InsufficientResourceError struct {
	Resource  Resource
	Requested int
	Shortfall int
	Balance   int
}

func (e *InsufficientResourceError) Error() string {
	return fmt.Sprintf("not enough %s: requested %d, balance %d (short %d)",
		e.Resource, e.Requested, e.Balance, e.Shortfall)
}

// InsufficientFundsError reports a currency withdrawal that would overdraw
// the balance. Gravitas never produces this error; it clamps at zero instead.
type InsufficientFundsError struct {
	Currency  string
	Requested int
	Shortfall int
	Balance   int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough %s: requested %d, balance %d (short %d)",
		e.Currency, e.Requested, e.Balance, e.Shortfall)
}

// InvalidOccupationError reports an occupation name missing from the ruleset.
type InvalidOccupationError struct {
	Name string
}

func (e *InvalidOccupationError) Error() string {
	return fmt.Sprintf("unknown occupation %q", e.Name)
}

// InvalidOriginError reports an origin name missing from the ruleset.
type InvalidOriginError struct {
	Name string
}

func (e *InvalidOriginError) Error() string {
	return fmt.Sprintf("unknown origin %q", e.Name)
}
