package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Error kinds returned by every store operation. Handlers match them with
// errors.Is / errors.As and own the mapping to transport status codes; no
// gorm error ever crosses the store boundary.
var (
	// ErrNotFound covers true absence and "exists under another tenant".
	// The two cases are deliberately indistinguishable so a caller can never
	// probe for cross-tenant existence.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput marks a missing required field or a semantically
	// invalid value, such as a negative quantity.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateName is a per-tenant name-uniqueness violation.
	ErrDuplicateName = errors.New("name already exists for this tenant")

	// ErrDuplicateKey is an inventory (tenant, product, location) collision.
	ErrDuplicateKey = errors.New("inventory record already exists for this product and location")

	// ErrTenantInactive means the tenant exists but is deactivated.
	ErrTenantInactive = errors.New("tenant is inactive")

	// ErrTransient marks a storage timeout or unavailability. The caller may
	// retry; stores never retry on their own.
	ErrTransient = errors.New("storage temporarily unavailable")
)

// InUseError blocks a delete that would break referential integrity. Count is
// the number of rows still referencing the record, for user-facing messaging.
type InUseError struct {
	Count int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("record is referenced by %d other record(s)", e.Count)
}

func invalidInput(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

// isUniqueViolation reports whether err is the storage-level uniqueness
// constraint firing. The pre-checks in the stores are best effort; this is
// the authoritative guard, so it must be recognized even after a pre-check
// passed. Matches gorm's translated error plus the raw postgres and sqlite
// messages.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || // postgres 23505
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}

// translate maps a gorm error to a store error kind.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrTransient, err)
	default:
		return err
	}
}
