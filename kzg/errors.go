package kzg

import "github.com/iotaledger/hive.go/ierrors"

var (
	// ErrDegreeTooLarge is returned when a polynomial has more coefficients
	// than the setup has G1 powers.
	ErrDegreeTooLarge = ierrors.New("kzg: polynomial exceeds setup size")
	// ErrInvalidSetup is returned for setups that are too short or contain
	// degenerate points.
	ErrInvalidSetup = ierrors.New("kzg: invalid trusted setup")
	// ErrLengthMismatch is returned when batch inputs differ in length.
	ErrLengthMismatch = ierrors.New("kzg: batch input length mismatch")
	// ErrEngineMismatch is returned when a commitment or proof lives on a
	// different curve than the setup.
	ErrEngineMismatch = ierrors.New("kzg: point belongs to a different engine")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = ierrors.New("kzg: invalid config")
	// ErrUnsupportedEncoding is returned when an operation requires the
	// 48-byte BLS12-381 commitment encoding.
	ErrUnsupportedEncoding = ierrors.New("kzg: unsupported commitment encoding")
)
