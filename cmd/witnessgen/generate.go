package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tlsn-go/witnessgen/internal/cache"
	"github.com/tlsn-go/witnessgen/internal/config"
	"github.com/tlsn-go/witnessgen/internal/field"
	"github.com/tlsn-go/witnessgen/internal/logger"
	"github.com/tlsn-go/witnessgen/internal/manifest"
	"github.com/tlsn-go/witnessgen/internal/metrics"
	"github.com/tlsn-go/witnessgen/internal/witnesserr"
)

func newGenerateCmd() *cobra.Command {
	var manifestPath, capturePath, digestText string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute the public-input vector for a manifest against a captured ciphertext",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(manifestPath, capturePath, digestText)
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a manifest JSON file (required)")
	cmd.Flags().StringVar(&capturePath, "capture", "", "path to the raw captured ciphertext bytes")
	cmd.Flags().StringVar(&digestText, "digest", "", "base-10 ciphertext digest, if already computed")
	if err := cmd.MarkFlagRequired("manifest"); err != nil {
		panic(err)
	}
	return cmd
}

func runGenerate(manifestPath, capturePath, digestText string) error {
	cfg := config.Load()
	log := logger.New("CLI", cfg.LogLevel)
	m := metrics.New()

	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	decoded, err := manifest.Decode(raw)
	if err != nil {
		m.SchemaRejections.Add(1)
		return explainErr(err)
	}
	m.ManifestsDecoded.Add(1)

	d, err := ciphertextDigest(digestText, capturePath)
	if err != nil {
		return err
	}

	digestCache, err := cache.New(cfg, m, log)
	if err != nil {
		return fmt.Errorf("open digest cache: %w", err)
	}
	defer digestCache.Close() //nolint:errcheck // best-effort on CLI exit

	runID := uuid.NewString()
	log.Infof("generate", "run=%s computing public inputs", runID)

	if out, ok := digestCache.Get(d, decoded, cfg.MaxStackHeight); ok {
		log.Debugf("generate", "run=%s cache hit", runID)
		return printInputs(out)
	}

	out, err := manifest.Digest(decoded, d, cfg.MaxStackHeight)
	if err != nil {
		return explainErr(err)
	}
	m.DigestsComputed.Add(1)
	digestCache.Put(d, decoded, cfg.MaxStackHeight, out)

	return printInputs(out)
}

// ciphertextDigest resolves the public d input to Digest: either the
// caller already has it in base-10 form, or it is derived by folding the raw
// captured bytes through the same polynomial digest the byte machines use.
func ciphertextDigest(digestText, capturePath string) (field.F, error) {
	switch {
	case digestText != "":
		d, err := field.FromText10(digestText)
		if err != nil {
			return field.F{}, fmt.Errorf("parse --digest: %w", err)
		}
		return d, nil
	case capturePath != "":
		raw, err := os.ReadFile(capturePath)
		if err != nil {
			return field.F{}, fmt.Errorf("read capture: %w", err)
		}
		return field.PolynomialDigest(raw, field.FromUint64(131), 0), nil
	default:
		return field.F{}, fmt.Errorf("one of --digest or --capture is required")
	}
}

func explainErr(err error) error {
	var we *witnesserr.Error
	if errors.As(err, &we) {
		return fmt.Errorf("%s", we.Error())
	}
	return err
}

func printInputs(out manifest.PublicInputs) error {
	strs := make([]string, len(out))
	for i, f := range out {
		strs[i] = field.Text10(f)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(strs)
}
