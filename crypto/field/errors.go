package field

import "github.com/iotaledger/hive.go/ierrors"

var (
	// ErrFieldMismatch is returned (or panicked with) when two operands belong
	// to fields with different moduli.
	ErrFieldMismatch = ierrors.New("field: operands belong to different fields")
	// ErrDivisionByZero is returned when inverting or dividing by zero.
	ErrDivisionByZero = ierrors.New("field: division by zero")
	// ErrInvalidModulus is returned when a modulus is not an odd prime in
	// the supported range.
	ErrInvalidModulus = ierrors.New("field: invalid modulus")
	// ErrInvalidNonResidue is returned when the extension non-residue is a
	// square in the base field.
	ErrInvalidNonResidue = ierrors.New("field: extension element is a quadratic residue")
	// ErrNonCanonical is returned when decoding bytes that are not the
	// canonical encoding of a field element.
	ErrNonCanonical = ierrors.New("field: non-canonical encoding")
)

// mismatch builds the error used for mixed-field operations.
func mismatch(op string, a, b *PrimeField) error {
	return ierrors.Wrapf(ErrFieldMismatch, "%s: %s vs %s", op, a, b)
}
