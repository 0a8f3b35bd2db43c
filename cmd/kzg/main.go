// Command kzg commits to, opens and verifies EIP-4844 style blobs on
// BLS12-381 using a setup derived from a known secret. It is a development
// tool: anyone who knows the secret can forge proofs.
//
// Usage:
//
//	kzg [flags] commit <blobfile>
//	kzg [flags] prove  <blobfile> <z>
//	kzg [flags] verify <commitment> <z> <y> <proof>
//
// Blob files hold 0x-prefixed hex of blob-length 32-byte big-endian
// scalars in bit-reversed evaluation order. Points and scalars on the
// command line are 0x-prefixed hex. Results are printed as JSON.
//
// Flags:
//
//	--secret       setup secret (default: 1337)
//	--bloblength   scalars per blob (default: 4096)
//	--generator    multiplicative generator for the blob domain (default: 7)
//	--parallelism  goroutine bound, 0 for GOMAXPROCS (default: 0)
//	--loglevel     debug, info, warn or error (default: info)
//	--metrics      print the KZG metrics as JSON to stderr on exit
//	--version      print version and exit
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iotaledger/hive.go/ierrors"

	"github.com/eth2030/kzg/crypto/bls12381"
	"github.com/eth2030/kzg/crypto/field"
	"github.com/eth2030/kzg/kzg"
	"github.com/eth2030/kzg/metrics"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

// errUsage marks malformed command lines.
var errUsage = ierrors.New("usage")

type options struct {
	kzg.Config
	Secret  uint64
	Metrics bool
}

func defaultOptions() options {
	cfg := kzg.DefaultConfig()
	cfg.Registry = metrics.NewRegistry()
	return options{Config: cfg, Secret: 1337}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run is the actual entry point, returning an exit code: 0 on success, 1
// for a rejected proof or a failed operation, 2 for bad usage.
func run(args []string, stdout io.Writer) int {
	opts, rest, exit, code := parseFlags(args)
	if exit {
		return code
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 2
	}

	ctx, err := newContext(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Metrics {
		defer dumpMetrics(opts.Registry)
	}

	result, err := dispatch(ctx, rest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if ierrors.Is(err, errUsage) {
			return 2
		}
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if v, ok := result.(verifyResult); ok && !v.Valid {
		return 1
	}
	return 0
}

// parseFlags parses CLI arguments into options and the remaining command
// words. Returns whether the caller should exit immediately, and the exit
// code.
func parseFlags(args []string) (options, []string, bool, int) {
	opts := defaultOptions()
	fs := newFlagSet(&opts)

	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return opts, nil, true, 2
	}

	if *showVersion {
		fmt.Printf("kzg %s (commit %s)\n", version, commit)
		return opts, nil, true, 0
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing command (commit, prove, verify)")
		return opts, nil, true, 2
	}
	return opts, fs.Args(), false, 0
}

func newFlagSet(opts *options) *flagSet {
	fs := newCustomFlagSet("kzg")
	fs.Uint64Var(&opts.Secret, "secret", opts.Secret, "setup secret")
	fs.IntVar(&opts.BlobLength, "bloblength", opts.BlobLength, "scalars per blob")
	fs.Uint64Var(&opts.DomainGenerator, "generator", opts.DomainGenerator, "multiplicative generator for the blob domain")
	fs.IntVar(&opts.Parallelism, "parallelism", opts.Parallelism, "goroutine bound, 0 for GOMAXPROCS")
	fs.StringVar(&opts.LogLevel, "loglevel", opts.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&opts.Metrics, "metrics", opts.Metrics, "print metrics to stderr on exit")
	return fs
}

func newContext(opts options) (*kzg.Context, error) {
	setup, err := kzg.NewInsecureSetup(bls12381.Default(), bls12381.Fr.FromUint64(opts.Secret), opts.BlobLength)
	if err != nil {
		return nil, err
	}
	return kzg.NewContext(setup, opts.Config)
}

func dumpMetrics(r *metrics.Registry) {
	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

type commitResult struct {
	Commitment    kzg.Commitment `json:"commitment"`
	VersionedHash common.Hash    `json:"versionedHash"`
}

type proveResult struct {
	Commitment kzg.Commitment `json:"commitment"`
	Z          hexutil.Bytes  `json:"z"`
	Y          hexutil.Bytes  `json:"y"`
	Proof      kzg.Proof      `json:"proof"`
}

type verifyResult struct {
	Valid bool `json:"valid"`
}

func dispatch(ctx *kzg.Context, args []string) (any, error) {
	switch cmd, rest := args[0], args[1:]; cmd {
	case "commit":
		if len(rest) != 1 {
			return nil, ierrors.Wrap(errUsage, "commit <blobfile>")
		}
		blob, err := readBlob(ctx, rest[0])
		if err != nil {
			return nil, err
		}
		c, err := ctx.BlobToCommitment(blob)
		if err != nil {
			return nil, err
		}
		h, err := c.VersionedHash()
		if err != nil {
			return nil, err
		}
		return commitResult{Commitment: c, VersionedHash: h}, nil

	case "prove":
		if len(rest) != 2 {
			return nil, ierrors.Wrap(errUsage, "prove <blobfile> <z>")
		}
		blob, err := readBlob(ctx, rest[0])
		if err != nil {
			return nil, err
		}
		z, err := parseScalar(rest[1])
		if err != nil {
			return nil, ierrors.Wrap(err, "z")
		}
		c, err := ctx.BlobToCommitment(blob)
		if err != nil {
			return nil, err
		}
		proof, y, err := ctx.ComputeProof(blob, z)
		if err != nil {
			return nil, err
		}
		return proveResult{Commitment: c, Z: z.Bytes(), Y: y.Bytes(), Proof: proof}, nil

	case "verify":
		if len(rest) != 4 {
			return nil, ierrors.Wrap(errUsage, "verify <commitment> <z> <y> <proof>")
		}
		raw := make([][]byte, len(rest))
		for i, s := range rest {
			b, err := hexutil.Decode(s)
			if err != nil {
				return nil, ierrors.Wrapf(err, "argument %d", i+1)
			}
			raw[i] = b
		}
		ok, err := ctx.VerifyProofBytes(raw[0], raw[1], raw[2], raw[3])
		if err != nil {
			return nil, err
		}
		return verifyResult{Valid: ok}, nil
	}
	return nil, ierrors.Wrapf(errUsage, "unknown command %q", args[0])
}

func readBlob(ctx *kzg.Context, path string) ([]field.Element, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := hexutil.Decode(strings.TrimSpace(string(text)))
	if err != nil {
		return nil, ierrors.Wrapf(err, "blob file %s", path)
	}
	return ctx.BlobFromBytes(b)
}

func parseScalar(s string) (field.Element, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return field.Element{}, err
	}
	return bls12381.Fr.FromBytes(b)
}
