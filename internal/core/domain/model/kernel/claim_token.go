package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrClaimTokenIsNotConstructed is returned when validating a zero-value ClaimToken.
var ErrClaimTokenIsNotConstructed = errs.NewValueIsRequiredError("claim token must be created via NewClaimToken or ClaimTokenFromString")

// ClaimToken marks a courier as reserved by an in-flight dispatch before the order
// it will carry has been created. Tokens are random (UUID v4) so two matchers can
// never produce the same placeholder.
//
// Example:
//
//	token := kernel.NewClaimToken()
//	if err := dispatcher.Dispatch(d, c, token); err != nil {
//	    return err
//	}
//	// create the order, then replace the placeholder with its id
//	err = c.BindOrder(token, o.ID())
type ClaimToken struct {
	id uuid.UUID
}

// NewClaimToken generates a fresh random token.
func NewClaimToken() ClaimToken {
	return ClaimToken{id: uuid.New()}
}

// ClaimTokenFromString parses a token persisted in its string form.
func ClaimTokenFromString(s string) (ClaimToken, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ClaimToken{}, fmt.Errorf("invalid claim token format: %w", err)
	}
	token := ClaimToken{id: id}
	if err = token.Validate(); err != nil {
		return ClaimToken{}, err
	}
	return token, nil
}

func (t ClaimToken) String() string {
	return t.id.String()
}

// IsEqual compares two tokens by value.
func (t ClaimToken) IsEqual(other ClaimToken) bool {
	return t.id == other.id
}

// IsZero is true for the zero value, which never represents a live claim.
func (t ClaimToken) IsZero() bool {
	return t.id == uuid.Nil
}

// Validate returns ErrClaimTokenIsNotConstructed for the zero value.
func (t ClaimToken) Validate() error {
	if t.IsZero() {
		return ErrClaimTokenIsNotConstructed
	}
	return nil
}
