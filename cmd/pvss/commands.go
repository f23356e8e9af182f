package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/f3rmion/pvss/dealersig"
	"github.com/f3rmion/pvss/pvss"
	"github.com/f3rmion/pvss/session"
)

// errRejected reports that at least one input failed verification.
var errRejected = errors.New("verification failed")

type command struct {
	name  string
	usage string
	flags func(fs *pflag.FlagSet)
	run   func(ctx context.Context, e *env, fs *pflag.FlagSet) error
}

var commands = []command{
	{
		name:  "keygen",
		usage: "generate encryption keypairs for every participant",
		flags: func(fs *pflag.FlagSet) {
			fs.String("out", ".", "output directory")
		},
		run: runKeygen,
	},
	{
		name:  "deal",
		usage: "deal a transcript as one participant",
		flags: func(fs *pflag.FlagSet) {
			fs.String("keys", "keys.json", "public keys file")
			fs.String("participant", "", "participant file of the dealer")
			fs.String("out", "transcript.json", "output transcript file")
		},
		run: runDeal,
	},
	{
		name:  "verify",
		usage: "verify transcript files given as arguments",
		flags: func(fs *pflag.FlagSet) {
			fs.String("keys", "keys.json", "public keys file")
		},
		run: runVerify,
	},
	{
		name:  "aggregate",
		usage: "verify and aggregate transcript files given as arguments",
		flags: func(fs *pflag.FlagSet) {
			fs.String("keys", "keys.json", "public keys file")
			fs.String("out", "aggregate.json", "output transcript file")
		},
		run: runAggregate,
	},
	{
		name:  "decrypt",
		usage: "decrypt a participant's share of a transcript",
		flags: func(fs *pflag.FlagSet) {
			fs.String("keys", "keys.json", "public keys file")
			fs.String("participant", "", "participant file")
			fs.String("transcript", "aggregate.json", "transcript file")
			fs.String("out", "", "output share file (default share-<index>.json)")
		},
		run: runDecrypt,
	},
	{
		name:  "reconstruct",
		usage: "reconstruct the dealt secret key from share files given as arguments",
		flags: func(fs *pflag.FlagSet) {
			fs.String("keys", "keys.json", "public keys file")
			fs.String("out", "", "also write the secret key to this file")
		},
		run: runReconstruct,
	},
}

func runKeygen(_ context.Context, e *env, fs *pflag.FlagSet) error {
	out, _ := fs.GetString("out")
	variant, err := pvss.ParseVariant(e.v.GetString("variant"))
	if err != nil {
		return err
	}
	auth, err := pvss.ParseAuthentication(e.v.GetString("auth"))
	if err != nil {
		return err
	}
	n := e.v.GetInt("participants")
	if n < 1 {
		return fmt.Errorf("participants must be positive, got %d", n)
	}
	kf := &keysFile{
		Threshold:    e.v.GetInt("threshold"),
		Participants: n,
		Variant:      variant.String(),
		Auth:         auth.String(),
	}
	pfs := make([]participantFile, n)
	if auth == pvss.AuthDealerSignature {
		kf.DealerKeys = make(map[uint32]string, n)
		for i := range pfs {
			ikm := make([]byte, dealersig.MinIKMSize)
			if _, err := rand.Read(ikm); err != nil {
				return err
			}
			signer, err := dealersig.GenerateKey(ikm)
			if err != nil {
				return err
			}
			pfs[i].SigningKey = hex.EncodeToString(ikm)
			kf.DealerKeys[uint32(i+1)] = hex.EncodeToString(signer.PublicKey().Bytes())
			signer.Zeroize()
		}
	}

	s, err := e.scheme(kf)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	for i := range pfs {
		dk, ek, err := s.GenerateKeyPair(rand.Reader)
		if err != nil {
			return err
		}
		pfs[i].Index = i + 1
		pfs[i].DecryptKey = hex.EncodeToString(dk.Bytes())
		pfs[i].EncryptKey = hex.EncodeToString(ek.Bytes())
		dk.Zeroize()
		kf.EncryptKeys = append(kf.EncryptKeys, pfs[i].EncryptKey)
		if err := writeJSON(filepath.Join(out, fmt.Sprintf("participant-%d.json", i+1)), pfs[i]); err != nil {
			return err
		}
	}
	if err := writeJSON(filepath.Join(out, "keys.json"), kf); err != nil {
		return err
	}
	e.logger.Info("generated keys", zap.Int("participants", n), zap.String("dir", out))
	fmt.Fprintf(e.stdout, "wrote %d participant files and keys.json to %s\n", n, out)
	return nil
}

func runDeal(ctx context.Context, e *env, fs *pflag.FlagSet) error {
	s, eks, err := e.loadKeys(fs)
	if err != nil {
		return err
	}
	pf, dk, err := loadParticipant(s, fs)
	if err != nil {
		return err
	}
	defer dk.Zeroize()
	var signer *dealersig.Signer
	if pf.SigningKey != "" {
		ikm, err := decodeHex(pf.SigningKey)
		if err != nil {
			return fmt.Errorf("signing key: %w", err)
		}
		if signer, err = dealersig.GenerateKey(ikm); err != nil {
			return err
		}
		defer signer.Zeroize()
	}

	p, err := session.RestoreParticipant(s, pf.Index, rand.Reader, dk, signer)
	if err != nil {
		return err
	}
	tr, err := p.Deal(ctx, eks)
	if err != nil {
		return err
	}
	out, _ := fs.GetString("out")
	if err := writeTranscript(out, s, tr); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "participant %d dealt %s\n", pf.Index, out)
	return nil
}

func runVerify(ctx context.Context, e *env, fs *pflag.FlagSet) error {
	s, eks, err := e.loadKeys(fs)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no transcript files given")
	}
	rejected := 0
	for _, path := range fs.Args() {
		tr, err := readTranscript(path, s)
		if err != nil {
			return err
		}
		err = s.Verify(ctx, tr, eks)
		var verr *pvss.VerificationError
		switch {
		case err == nil:
			fmt.Fprintf(e.stdout, "%s: valid, dealers %v\n", path, tr.Dealers())
		case errors.As(err, &verr):
			rejected++
			if verr.Contribution != nil {
				fmt.Fprintf(e.stdout, "%s: invalid, %v\n", path, verr.Contribution)
			} else {
				fmt.Fprintf(e.stdout, "%s: invalid, failing participants %v\n", path, verr.Failed)
			}
		default:
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d transcripts", errRejected, rejected, fs.NArg())
	}
	return nil
}

func runAggregate(ctx context.Context, e *env, fs *pflag.FlagSet) error {
	s, eks, err := e.loadKeys(fs)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no transcript files given")
	}
	trs := make([]*pvss.Transcript, fs.NArg())
	for i, path := range fs.Args() {
		if trs[i], err = readTranscript(path, s); err != nil {
			return err
		}
	}
	if err := s.BatchVerify(ctx, trs, eks); err != nil {
		if errors.Is(err, pvss.ErrInvalidTranscript) {
			return fmt.Errorf("%w: %v", errRejected, err)
		}
		return err
	}
	agg, err := s.Aggregate(trs...)
	if err != nil {
		return err
	}
	out, _ := fs.GetString("out")
	if err := writeTranscript(out, s, agg); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "aggregated %d transcripts into %s, dealers %v\n", len(trs), out, agg.Dealers())
	return nil
}

func runDecrypt(ctx context.Context, e *env, fs *pflag.FlagSet) error {
	s, eks, err := e.loadKeys(fs)
	if err != nil {
		return err
	}
	pf, dk, err := loadParticipant(s, fs)
	if err != nil {
		return err
	}
	defer dk.Zeroize()
	path, _ := fs.GetString("transcript")
	tr, err := readTranscript(path, s)
	if err != nil {
		return err
	}
	if err := s.Verify(ctx, tr, eks); err != nil {
		if errors.Is(err, pvss.ErrInvalidTranscript) {
			return fmt.Errorf("%w: %s: %v", errRejected, path, err)
		}
		return err
	}
	sh, err := s.DecryptShare(tr, pf.Index, dk)
	if err != nil {
		return err
	}

	out, _ := fs.GetString("out")
	if out == "" {
		out = fmt.Sprintf("share-%d.json", pf.Index)
	}
	if err := writeJSON(out, shareFile{Index: sh.Index, Share: hex.EncodeToString(sh.Value.Bytes())}); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "participant %d share written to %s\n", sh.Index, out)
	return nil
}

func runReconstruct(_ context.Context, e *env, fs *pflag.FlagSet) error {
	s, _, err := e.loadKeys(fs)
	if err != nil {
		return err
	}
	shares := make([]pvss.Share, 0, fs.NArg())
	for _, path := range fs.Args() {
		var sf shareFile
		if err := readJSON(path, &sf); err != nil {
			return err
		}
		b, err := decodeHex(sf.Share)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		sh, err := s.DecodeShare(sf.Index, b)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		shares = append(shares, *sh)
	}
	key, err := s.Reconstruct(shares)
	if err != nil {
		return err
	}

	encoded := hex.EncodeToString(key.Bytes())
	if out, _ := fs.GetString("out"); out != "" {
		if err := writeJSON(out, secretFile{SecretKey: encoded}); err != nil {
			return err
		}
	}
	fmt.Fprintln(e.stdout, encoded)
	return nil
}

// loadKeys reads the --keys file and builds the matching scheme.
func (e *env) loadKeys(fs *pflag.FlagSet) (*pvss.Scheme, []*pvss.EncryptKey, error) {
	path, _ := fs.GetString("keys")
	var kf keysFile
	if err := readJSON(path, &kf); err != nil {
		return nil, nil, err
	}
	s, err := e.scheme(&kf)
	if err != nil {
		return nil, nil, err
	}
	eks := make([]*pvss.EncryptKey, len(kf.EncryptKeys))
	for i, h := range kf.EncryptKeys {
		b, err := decodeHex(h)
		if err != nil {
			return nil, nil, fmt.Errorf("encryption key %d: %w", i+1, err)
		}
		if eks[i], err = s.DecodeEncryptKey(b); err != nil {
			return nil, nil, fmt.Errorf("encryption key %d: %w", i+1, err)
		}
	}
	return s, eks, nil
}

func loadParticipant(s *pvss.Scheme, fs *pflag.FlagSet) (*participantFile, *pvss.DecryptKey, error) {
	path, _ := fs.GetString("participant")
	if path == "" {
		return nil, nil, fmt.Errorf("--participant is required")
	}
	var pf participantFile
	if err := readJSON(path, &pf); err != nil {
		return nil, nil, err
	}
	b, err := decodeHex(pf.DecryptKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: decryption key: %w", path, err)
	}
	dk, err := s.DecodeDecryptKey(b)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return &pf, dk, nil
}

func readTranscript(path string, s *pvss.Scheme) (*pvss.Transcript, error) {
	var tf transcriptFile
	if err := readJSON(path, &tf); err != nil {
		return nil, err
	}
	b, err := decodeHex(tf.Transcript)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tr, err := s.DecodeTranscript(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tr, nil
}

func writeTranscript(path string, s *pvss.Scheme, tr *pvss.Transcript) error {
	b, err := tr.MarshalBinary()
	if err != nil {
		return err
	}
	return writeJSON(path, transcriptFile{
		Threshold:    s.Threshold(),
		Participants: s.Total(),
		Variant:      s.Variant().String(),
		Dealers:      tr.Dealers(),
		Transcript:   hex.EncodeToString(b),
	})
}
