package poly

import (
	"errors"
	"math/bits"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// DefaultFFTThreshold is the combined degree deg(a)+deg(b) at which
// [Multiplier.Multiply] switches from convolution to FFT multiplication.
//
// Below roughly 64 the cost of building the evaluation domain and running
// three transforms exceeds the n*m multiplications of convolution on
// commodity x86-64 hardware. Tune it per machine with a Multiplier.
const DefaultFFTThreshold = 64

// maxDomainLog is the 2-adicity of the BLS12-381 scalar field: the largest
// k such that a 2^k-th root of unity exists.
const maxDomainLog = 32

// Multiplier multiplies polynomials, choosing between convolution and FFT.
// The zero value uses the FFT path for every product of degree >= 0 and
// runs each transform on a single goroutine.
type Multiplier struct {
	// Threshold is the combined degree deg(a)+deg(b) at or above which the
	// FFT path is taken.
	Threshold int
	// Tasks bounds the goroutines used inside a single FFT. Values <= 1 run
	// the butterflies sequentially; results are identical either way.
	Tasks int

	// maxLog caps the FFT domain at 2^maxLog points; zero means maxDomainLog.
	maxLog int
}

// DefaultMultiplier uses DefaultFFTThreshold and sequential transforms.
var DefaultMultiplier = Multiplier{Threshold: DefaultFFTThreshold, Tasks: 1}

// Multiply returns a * b using DefaultMultiplier.
func Multiply(a, b Polynomial) (Polynomial, error) {
	return DefaultMultiplier.Multiply(a, b)
}

// Multiply returns a * b. Products whose combined degree is below
// m.Threshold, or for which no FFT domain exists, are computed by
// convolution.
func (m Multiplier) Multiply(a, b Polynomial) (Polynomial, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyPolynomial
	}
	if a.Degree()+b.Degree() < m.Threshold {
		return MultiplyNaive(a, b)
	}
	out, err := m.MultiplyFFT(a, b)
	if errors.Is(err, ErrUnsupportedSize) {
		return MultiplyNaive(a, b)
	}
	return out, err
}

// MultiplyNaive returns a * b by direct convolution in O(len(a)*len(b)).
func MultiplyNaive(a, b Polynomial) (Polynomial, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyPolynomial
	}
	out := make(Polynomial, len(a)+len(b)-1)
	var term fr.Element
	for i := range a {
		if a[i].IsZero() {
			continue
		}
		for j := range b {
			term.Mul(&a[i], &b[j])
			out[i+j].Add(&out[i+j], &term)
		}
	}
	return out, nil
}

// MultiplyFFT returns a * b by evaluating both operands on a power-of-two
// domain of roots of unity, multiplying pointwise and interpolating.
// It returns ErrUnsupportedSize when the domain would exceed 2^32 points,
// the largest power-of-two subgroup of the scalar field.
func (m Multiplier) MultiplyFFT(a, b Polynomial) (Polynomial, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyPolynomial
	}
	size := len(a) + len(b) - 1
	if size == 1 {
		return MultiplyNaive(a, b)
	}
	domain, err := domainFor(uint64(size), m.maxLog)
	if err != nil {
		return nil, err
	}

	var opts []fft.Option
	if m.Tasks > 1 {
		opts = append(opts, fft.WithNbTasks(m.Tasks))
	}

	n := int(domain.Cardinality)
	ea := make([]fr.Element, n)
	eb := make([]fr.Element, n)
	copy(ea, a)
	copy(eb, b)

	// DIF leaves the evaluations in bit-reversed order; the DIT inverse
	// consumes bit-reversed input and restores natural order.
	domain.FFT(ea, fft.DIF, opts...)
	domain.FFT(eb, fft.DIF, opts...)
	for i := range ea {
		ea[i].Mul(&ea[i], &eb[i])
	}
	domain.FFTInverse(ea, fft.DIT, opts...)

	return Polynomial(ea[:size]), nil
}

// domains caches evaluation domains by cardinality. Domains are immutable
// once built and safe to share between goroutines.
var domains sync.Map

func domainFor(size uint64, maxLog int) (*fft.Domain, error) {
	if maxLog <= 0 || maxLog > maxDomainLog {
		maxLog = maxDomainLog
	}
	logN := bits.Len64(size - 1)
	if logN > maxLog {
		return nil, ErrUnsupportedSize
	}
	n := uint64(1) << logN
	if d, ok := domains.Load(n); ok {
		return d.(*fft.Domain), nil
	}
	d, _ := domains.LoadOrStore(n, fft.NewDomain(n))
	return d.(*fft.Domain), nil
}
