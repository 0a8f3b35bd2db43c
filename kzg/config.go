package kzg

import (
	"github.com/iotaledger/hive.go/ierrors"

	"github.com/eth2030/kzg/crypto/bls12381"
	"github.com/eth2030/kzg/log"
	"github.com/eth2030/kzg/metrics"
)

// BlobLength is the number of field elements in an EIP-4844 blob.
const BlobLength = 4096

// Config holds the settings of a Context.
type Config struct {
	// BlobLength is the number of scalar field elements per blob. It must
	// be a power of two dividing r-1 and at most the setup size.
	BlobLength int

	// DomainGenerator generates the multiplicative group from which the
	// blob domain's root of unity is derived. Zero selects the scalar
	// field's smallest quadratic non-residue.
	DomainGenerator uint64

	// Parallelism bounds the goroutines used by multi-scalar
	// multiplications and transforms. Zero means GOMAXPROCS.
	Parallelism int

	// LogLevel is used to build a logger when Logger is nil
	// (debug, info, warn, error).
	LogLevel string

	// Logger receives the context's logs under module "kzg". Nil selects
	// the process default logger.
	Logger *log.Logger

	// Registry receives the KZG metrics. Nil selects
	// metrics.DefaultRegistry.
	Registry *metrics.Registry
}

// DefaultConfig returns the EIP-4844 settings on BLS12-381.
func DefaultConfig() Config {
	return Config{
		BlobLength:      BlobLength,
		DomainGenerator: bls12381.PrimitiveRoot,
		LogLevel:        "info",
	}
}

// Validate checks the config for obviously invalid values. Whether a blob
// domain of the requested length exists is only known once the scalar
// field is, so NewContext checks that.
func (c *Config) Validate() error {
	if c.BlobLength <= 0 || c.BlobLength&(c.BlobLength-1) != 0 {
		return ierrors.Wrapf(ErrInvalidConfig, "blob length %d is not a power of two", c.BlobLength)
	}
	if c.Parallelism < 0 {
		return ierrors.Wrapf(ErrInvalidConfig, "negative parallelism %d", c.Parallelism)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return ierrors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

func (c *Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger.Module("kzg")
	}
	if c.LogLevel != "" {
		level, _ := log.ParseLevel(c.LogLevel)
		return log.New(level).Module("kzg")
	}
	return log.Default().Module("kzg")
}

func (c *Config) metrics() *metrics.KZGMetrics {
	if c.Registry == nil {
		return metrics.KZG
	}
	return metrics.NewKZGMetrics(c.Registry)
}
