package metrics

// KZGMetrics groups the metrics recorded by the commitment scheme. A
// process normally uses the instance bound to DefaultRegistry; tests and
// embedders that need isolation build their own with NewKZGMetrics.
type KZGMetrics struct {
	// Commitments counts blob or polynomial commitments produced.
	Commitments *Counter
	// Proofs counts opening proofs produced.
	Proofs *Counter
	// Verifications counts single-proof verifications attempted.
	Verifications *Counter
	// VerifyFailures counts verifications that returned false or failed
	// on malformed input.
	VerifyFailures *Counter
	// BatchVerifications counts batch verification calls.
	BatchVerifications *Counter
	// MSMPoints counts points fed into multi-scalar multiplications.
	MSMPoints *Counter
	// SetupSize tracks the number of G1 powers of the active setup.
	SetupSize *Gauge
	// CommitTime records commitment and proof latency in milliseconds.
	CommitTime *Histogram
	// VerifyTime records verification latency in milliseconds.
	VerifyTime *Histogram
}

// NewKZGMetrics returns the KZG metric set registered in r.
func NewKZGMetrics(r *Registry) *KZGMetrics {
	return &KZGMetrics{
		Commitments:        r.Counter("kzg.commitments"),
		Proofs:             r.Counter("kzg.proofs"),
		Verifications:      r.Counter("kzg.verifications"),
		VerifyFailures:     r.Counter("kzg.verify_failures"),
		BatchVerifications: r.Counter("kzg.batch_verifications"),
		MSMPoints:          r.Counter("kzg.msm_points"),
		SetupSize:          r.Gauge("kzg.setup_size"),
		CommitTime:         r.Histogram("kzg.commit_ms"),
		VerifyTime:         r.Histogram("kzg.verify_ms"),
	}
}

// KZG is the process-wide KZG metric set in DefaultRegistry.
var KZG = NewKZGMetrics(DefaultRegistry)
