package pvss

import (
	"errors"
	"fmt"

	"github.com/f3rmion/pvss/group"
	"github.com/f3rmion/pvss/lagrange"
)

var (
	// ErrMalformedInput is returned for inputs of the wrong shape: sequences
	// of the wrong length, thresholds not below the participant count,
	// out-of-range indices, missing points.
	ErrMalformedInput = errors.New("pvss: malformed input")

	// ErrInvalidTranscript is returned when a transcript fails verification.
	// It is an expected outcome for a faulty or malicious dealer.
	ErrInvalidTranscript = errors.New("pvss: invalid transcript")

	// ErrDecryptionMismatch is returned when a decrypted share is not
	// consistent with the transcript's commitment.
	ErrDecryptionMismatch = errors.New("pvss: decrypted share does not match commitment")

	// ErrDeserialization is wrapped by all decoding failures.
	ErrDeserialization = group.ErrDeserialization

	// ErrInsufficientShares is returned when fewer than t+1 shares are
	// supplied for reconstruction.
	ErrInsufficientShares = lagrange.ErrInsufficientShares

	// ErrDuplicateIndex is returned when a share index repeats.
	ErrDuplicateIndex = lagrange.ErrDuplicateIndex
)

// VerificationError reports which checks of a transcript failed.
// Failed lists participant indices in 1..n whose encrypted share is
// inconsistent with the commitment; index 0 denotes the dealt public key.
// Contribution is set when dealer authentication failed instead.
type VerificationError struct {
	Failed       []int
	Contribution error
}

func (e *VerificationError) Error() string {
	if e.Contribution != nil {
		return fmt.Sprintf("%v: contribution: %v", ErrInvalidTranscript, e.Contribution)
	}
	if len(e.Failed) == 0 {
		return fmt.Sprintf("%v: batched pairing check failed", ErrInvalidTranscript)
	}
	return fmt.Sprintf("%v: failed checks %v", ErrInvalidTranscript, e.Failed)
}

func (e *VerificationError) Unwrap() []error {
	if e.Contribution != nil {
		return []error{ErrInvalidTranscript, e.Contribution}
	}
	return []error{ErrInvalidTranscript}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
