package poly

import (
	"errors"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/f3rmion/pvss/group"
)

var (
	// ErrEmptyPolynomial is returned when an operation receives a
	// polynomial with no coefficients.
	ErrEmptyPolynomial = errors.New("poly: empty polynomial")

	// ErrUnsupportedSize is returned by the FFT path when the scalar field
	// has no root of unity of the required order.
	ErrUnsupportedSize = errors.New("poly: evaluation domain too large for field")

	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("poly: division by zero polynomial")
)

// Polynomial is a dense polynomial over the scalar field with coefficients
// ordered from low to high degree.
type Polynomial []fr.Element

// New returns the polynomial with the given coefficients, low degree first.
func New(coeffs ...fr.Element) Polynomial {
	p := make(Polynomial, len(coeffs))
	copy(p, coeffs)
	return p
}

// Random returns a polynomial of the given degree whose degree+1
// coefficients are independent uniformly random scalars read from r.
func Random(r io.Reader, degree int) (Polynomial, error) {
	if degree < 0 {
		return nil, errors.New("poly: negative degree")
	}
	p := make(Polynomial, degree+1)
	for i := range p {
		c, err := group.RandomScalar(r)
		if err != nil {
			return nil, err
		}
		p[i] = c
	}
	return p, nil
}

// Degree returns len(p)-1, or -1 for an empty polynomial. Trailing zero
// coefficients are counted; call Trim first for the true degree.
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// Trim returns p without trailing zero coefficients. The zero polynomial
// trims to a single zero coefficient. The result shares storage with p.
func (p Polynomial) Trim() Polynomial {
	n := len(p)
	for n > 1 && p[n-1].IsZero() {
		n--
	}
	return p[:n]
}

// IsZero reports whether every coefficient of p is zero.
func (p Polynomial) IsZero() bool {
	for i := range p {
		if !p[i].IsZero() {
			return false
		}
	}
	return true
}

// Clone returns a copy of p that shares no storage with it.
func (p Polynomial) Clone() Polynomial {
	return New(p...)
}

// Equal reports whether p and q represent the same polynomial, ignoring
// trailing zero coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	a, b := p.Trim(), q.Trim()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// Zeroize overwrites every coefficient with zero.
func (p Polynomial) Zeroize() {
	for i := range p {
		p[i].SetZero()
	}
}

// Evaluate returns p(x) using Horner's rule.
func Evaluate(p Polynomial, x *fr.Element) (fr.Element, error) {
	if len(p) == 0 {
		return fr.Element{}, ErrEmptyPolynomial
	}
	return horner(p, x), nil
}

func horner(p Polynomial, x *fr.Element) fr.Element {
	result := p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		result.Mul(&result, x)
		result.Add(&result, &p[i])
	}
	return result
}

// Add returns a + b.
func Add(a, b Polynomial) Polynomial {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := a.Clone()
	for i := range b {
		out[i].Add(&out[i], &b[i])
	}
	return out
}

// Sub returns a - b.
func Sub(a, b Polynomial) Polynomial {
	n := max(len(a), len(b))
	out := make(Polynomial, n)
	copy(out, a)
	for i := range b {
		out[i].Sub(&out[i], &b[i])
	}
	return out
}

// Scale returns c * p.
func Scale(p Polynomial, c *fr.Element) Polynomial {
	out := make(Polynomial, len(p))
	for i := range p {
		out[i].Mul(&p[i], c)
	}
	return out
}

// Derivative returns the formal derivative of p.
func Derivative(p Polynomial) Polynomial {
	if len(p) <= 1 {
		return Polynomial{fr.Element{}}
	}
	out := make(Polynomial, len(p)-1)
	var k fr.Element
	for i := 1; i < len(p); i++ {
		k.SetUint64(uint64(i))
		out[i-1].Mul(&p[i], &k)
	}
	return out
}

// truncate returns p mod X^n as a fresh slice of exactly n coefficients.
func truncate(p Polynomial, n int) Polynomial {
	out := make(Polynomial, n)
	copy(out, p)
	return out
}

// reverse returns the coefficients of p in reverse order.
func reverse(p Polynomial) Polynomial {
	out := make(Polynomial, len(p))
	for i := range p {
		out[len(p)-1-i] = p[i]
	}
	return out
}
