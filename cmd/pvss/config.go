package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/pvss/bls12381"
	"github.com/f3rmion/pvss/dealersig"
	"github.com/f3rmion/pvss/poly"
	"github.com/f3rmion/pvss/pvss"
)

// env is the per-invocation state shared by every subcommand.
type env struct {
	v       *viper.Viper
	logger  *zap.Logger
	metrics *pvss.Metrics
	stdout  io.Writer
}

// newFlagSet returns a flag set carrying the scheme and logging flags
// common to every subcommand.
func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.String("config", "", "YAML configuration file")
	fs.Int("threshold", 1, "polynomial degree t; t+1 shares reconstruct")
	fs.Int("participants", 3, "number of participants n")
	fs.String("variant", pvss.CommitmentInG1.String(), "group holding the commitment (commitment-in-g1, commitment-in-g2)")
	fs.String("auth", pvss.AuthNone.String(), "contribution authentication (none, pok, signature)")
	fs.Int("fft-threshold", poly.DefaultFFTThreshold, "degree at which polynomial products switch to FFT")
	fs.Int("workers", 0, "worker goroutines (0: GOMAXPROCS)")
	fs.String("seed", pvss.DefaultSeed, "seed the public parameters are hashed from")
	fs.String("log-level", "info", "log level")
	fs.Bool("log-console", false, "log to stderr")
	fs.String("log-file", "", "log file, rotated")
	fs.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	return fs
}

// loadConfig parses args into fs and layers flags over the optional
// configuration file. Explicitly set flags win over file values.
func loadConfig(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	for key, flag := range map[string]string{
		"logging.level":   "log-level",
		"logging.console": "log-console",
		"logging.file":    "log-file",
		"metrics.file":    "metrics-file",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, err
		}
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return v, nil
}

// scheme builds the scheme described by the configuration. When kf is
// given its parameters must agree with the configuration, and its dealer
// keys are registered.
func (e *env) scheme(kf *keysFile) (*pvss.Scheme, error) {
	variant, err := pvss.ParseVariant(e.v.GetString("variant"))
	if err != nil {
		return nil, err
	}
	auth, err := pvss.ParseAuthentication(e.v.GetString("auth"))
	if err != nil {
		return nil, err
	}
	opts := []pvss.Option{
		pvss.WithVariant(variant),
		pvss.WithAuthentication(auth),
		pvss.WithFFTThreshold(e.v.GetInt("fft-threshold")),
		pvss.WithSeed([]byte(e.v.GetString("seed"))),
		pvss.WithLogger(e.logger),
		pvss.WithMetrics(e.metrics),
	}
	var curveOpts []bls12381.Option
	if w := e.v.GetInt("workers"); w > 0 {
		opts = append(opts, pvss.WithWorkers(w))
		curveOpts = append(curveOpts, bls12381.WithMultiExpTasks(w))
	}

	threshold, total := e.v.GetInt("threshold"), e.v.GetInt("participants")
	if kf != nil {
		if kf.Threshold != threshold || kf.Participants != total ||
			kf.Variant != variant.String() || kf.Auth != auth.String() {
			return nil, fmt.Errorf("keys file is for %d-of-%d %s/%s, configuration is %d-of-%d %s/%s",
				kf.Threshold, kf.Participants, kf.Variant, kf.Auth, threshold, total, variant, auth)
		}
		if len(kf.DealerKeys) > 0 {
			keys := make(map[uint32]*dealersig.PublicKey, len(kf.DealerKeys))
			for id, h := range kf.DealerKeys {
				b, err := decodeHex(h)
				if err != nil {
					return nil, fmt.Errorf("dealer key %d: %w", id, err)
				}
				if keys[id], err = dealersig.ParsePublicKey(b); err != nil {
					return nil, fmt.Errorf("dealer key %d: %w", id, err)
				}
			}
			opts = append(opts, pvss.WithDealerKeys(keys))
		}
	}
	return pvss.New(bls12381.New(curveOpts...), threshold, total, opts...)
}
