package kzg

import (
	"github.com/iotaledger/hive.go/ierrors"

	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/log"
	"github.com/eth2030/kzg/metrics"
	"github.com/eth2030/kzg/polynomial"
)

// Context is the blob-level API: blobs are vectors of BlobLength scalars
// holding the evaluations of the blob polynomial over the domain of
// BlobLength-th roots of unity, in bit-reversed order as in EIP-4844.
// A Context is immutable and safe for concurrent use.
type Context struct {
	setup   *TrustedSetup
	domain  *polynomial.Domain
	config  Config
	log     *log.Logger
	metrics *metrics.KZGMetrics
}

// NewContext binds a setup to a blob domain.
func NewContext(setup *TrustedSetup, cfg Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if setup.Len() < cfg.BlobLength {
		return nil, ierrors.Wrapf(ErrInvalidSetup, "setup has %d G1 powers, blob length is %d", setup.Len(), cfg.BlobLength)
	}

	fr := setup.engine.ScalarField()
	var (
		domain *polynomial.Domain
		err    error
	)
	if cfg.DomainGenerator == 0 {
		domain, err = polynomial.NewDomain(fr, cfg.BlobLength)
	} else {
		domain, err = polynomial.NewDomainWithGenerator(fr.FromUint64(cfg.DomainGenerator), cfg.BlobLength)
	}
	if err != nil {
		return nil, err
	}

	c := &Context{
		setup:   setup,
		domain:  domain.WithParallelism(cfg.Parallelism),
		config:  cfg,
		log:     cfg.logger(),
		metrics: cfg.metrics(),
	}
	c.metrics.SetupSize.Set(int64(setup.Len()))
	c.log.Info("kzg context ready",
		"engine", setup.engine.Name(), "blob_length", cfg.BlobLength, "setup", setup.Len())
	return c, nil
}

// Setup returns the trusted setup.
func (c *Context) Setup() *TrustedSetup { return c.setup }

// Domain returns the blob evaluation domain.
func (c *Context) Domain() *polynomial.Domain { return c.domain }

// Config returns the context's configuration.
func (c *Context) Config() Config { return c.config }

// BlobFromBytes splits a raw blob into canonical big-endian scalars of the
// scalar field's byte width.
func (c *Context) BlobFromBytes(b []byte) ([]field.Element, error) {
	fr := c.setup.engine.ScalarField()
	width := fr.ByteLen()
	if len(b) != c.config.BlobLength*width {
		return nil, ierrors.Wrapf(polynomial.ErrDomainSizeMismatch, "blob has %d bytes, want %d", len(b), c.config.BlobLength*width)
	}
	out := make([]field.Element, c.config.BlobLength)
	for i := range out {
		e, err := fr.FromBytes(b[i*width : (i+1)*width])
		if err != nil {
			return nil, ierrors.Wrapf(err, "blob element %d", i)
		}
		out[i] = e
	}
	return out, nil
}

// BlobToPolynomial interpolates a blob into coefficient form.
func (c *Context) BlobToPolynomial(blob []field.Element) (polynomial.Polynomial, error) {
	natural, err := c.naturalOrder(blob)
	if err != nil {
		return nil, err
	}
	return c.domain.InverseFFT(natural)
}

func (c *Context) naturalOrder(blob []field.Element) ([]field.Element, error) {
	if len(blob) != c.config.BlobLength {
		return nil, ierrors.Wrapf(polynomial.ErrDomainSizeMismatch, "blob has %d elements, want %d", len(blob), c.config.BlobLength)
	}
	out := append([]field.Element(nil), blob...)
	polynomial.BitReverse(out)
	return out, nil
}

// EvaluateBlob returns the blob polynomial's value at z without
// interpolating it.
func (c *Context) EvaluateBlob(blob []field.Element, z field.Element) (field.Element, error) {
	natural, err := c.naturalOrder(blob)
	if err != nil {
		return field.Element{}, err
	}
	return c.domain.EvaluateLagrange(natural, z)
}

// BlobToCommitment commits to the blob polynomial.
func (c *Context) BlobToCommitment(blob []field.Element) (Commitment, error) {
	defer metrics.NewTimer(c.metrics.CommitTime).Stop()

	p, err := c.BlobToPolynomial(blob)
	if err != nil {
		c.log.Debug("blob commitment failed", "err", err)
		return Commitment{}, err
	}
	commitment, err := commit(c.setup, p, c.config.Parallelism)
	if err != nil {
		c.log.Debug("blob commitment failed", "err", err)
		return Commitment{}, err
	}
	c.metrics.Commitments.Inc()
	c.metrics.MSMPoints.Add(int64(len(p)))
	return commitment, nil
}

// ComputeProof opens the blob polynomial at z and returns the proof and
// the value y = p(z).
func (c *Context) ComputeProof(blob []field.Element, z field.Element) (Proof, field.Element, error) {
	defer metrics.NewTimer(c.metrics.CommitTime).Stop()

	p, err := c.BlobToPolynomial(blob)
	if err != nil {
		c.log.Debug("proof computation failed", "err", err)
		return Proof{}, field.Element{}, err
	}
	y, proof, err := open(c.setup, p, z, c.config.Parallelism)
	if err != nil {
		c.log.Debug("proof computation failed", "err", err)
		return Proof{}, field.Element{}, err
	}
	c.metrics.Proofs.Inc()
	c.metrics.MSMPoints.Add(int64(len(p) - 1))
	return proof, y, nil
}

// VerifyProof checks that proof opens commitment to y at z.
func (c *Context) VerifyProof(commitment Commitment, z, y field.Element, proof Proof) (bool, error) {
	defer metrics.NewTimer(c.metrics.VerifyTime).Stop()
	c.metrics.Verifications.Inc()

	ok, err := Verify(c.setup, commitment, z, y, proof)
	if err != nil {
		c.metrics.VerifyFailures.Inc()
		c.log.Debug("malformed opening", "err", err)
		return false, err
	}
	if !ok {
		c.metrics.VerifyFailures.Inc()
		c.log.Debug("opening rejected", "commitment", commitment, "proof", proof)
	}
	return ok, nil
}

// VerifyProofBytes is VerifyProof on encoded inputs: compressed points and
// canonical big-endian scalars.
func (c *Context) VerifyProofBytes(commitment, z, y, proof []byte) (bool, error) {
	fr := c.setup.engine.ScalarField()
	cm, err := c.setup.CommitmentFromBytes(commitment)
	if err != nil {
		return false, err
	}
	pi, err := c.setup.ProofFromBytes(proof)
	if err != nil {
		return false, err
	}
	ze, err := fr.FromBytes(z)
	if err != nil {
		return false, ierrors.Wrap(err, "evaluation point")
	}
	ye, err := fr.FromBytes(y)
	if err != nil {
		return false, ierrors.Wrap(err, "claimed value")
	}
	return c.VerifyProof(cm, ze, ye, pi)
}

// VerifyBatch checks several openings at once; see BatchVerify.
func (c *Context) VerifyBatch(commitments []Commitment, zs, ys []field.Element, proofs []Proof) (bool, error) {
	defer metrics.NewTimer(c.metrics.VerifyTime).Stop()
	c.metrics.BatchVerifications.Inc()

	ok, err := batchVerify(c.setup, commitments, zs, ys, proofs, c.config.Parallelism)
	if err != nil {
		c.log.Debug("malformed batch", "size", len(commitments), "err", err)
		return false, err
	}
	if !ok {
		c.metrics.VerifyFailures.Inc()
		c.log.Debug("batch rejected", "size", len(commitments))
	}
	return ok, nil
}
