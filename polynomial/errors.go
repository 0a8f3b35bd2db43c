package polynomial

import "github.com/iotaledger/hive.go/ierrors"

var (
	// ErrDomainSizeMismatch is returned when a vector handed to a domain
	// transform does not have exactly the domain's size.
	ErrDomainSizeMismatch = ierrors.New("polynomial: domain size mismatch")
	// ErrInvalidDomainSize is returned when no domain of the requested size
	// exists in the field: the size is not a power of two, does not divide
	// p-1, or the supplied generator has too small an order.
	ErrInvalidDomainSize = ierrors.New("polynomial: invalid domain size")
)
