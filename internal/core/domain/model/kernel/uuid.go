package kernel

import (
	"fmt"

	"ordersync/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies a conversation with the remote execution system. It is used
// as correlation id on orders, as message id on outgoing commands and as the
// key of audit entries.
type UUID struct {
	id uuid.UUID
}

// NewUUID mints a random (v4) identifier.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical textual form.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromValue wraps an already parsed identifier, typically read from storage.
// The nil identifier yields the zero UUID.
func UUIDFromValue(id uuid.UUID) UUID {
	return UUID{id: id}
}

func (u UUID) String() string {
	return u.id.String()
}

// Value returns the underlying identifier for persistence.
func (u UUID) Value() uuid.UUID {
	return u.id
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// OrNew returns u, or a freshly minted UUID when u is zero.
func (u UUID) OrNew() UUID {
	if u.IsZero() {
		return NewUUID()
	}
	return u
}

func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
