package poly

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Divide returns the quotient and remainder of p divided by d using
// schoolbook long division, so that p = q*d + r with deg(r) < deg(d).
func Divide(p, d Polynomial) (q, r Polynomial, err error) {
	if len(p) == 0 || len(d) == 0 {
		return nil, nil, ErrEmptyPolynomial
	}
	d = d.Trim()
	if d.IsZero() {
		return nil, nil, ErrDivisionByZero
	}
	p = p.Trim()
	k := d.Degree()
	if p.Degree() < k {
		return Polynomial{fr.Element{}}, p.Clone(), nil
	}

	var leadInv fr.Element
	leadInv.Inverse(&d[k])

	rem := p.Clone()
	q = make(Polynomial, p.Degree()-k+1)
	var term fr.Element
	for i := len(q) - 1; i >= 0; i-- {
		q[i].Mul(&rem[i+k], &leadInv)
		if q[i].IsZero() {
			continue
		}
		for j := 0; j <= k; j++ {
			term.Mul(&q[i], &d[j])
			rem[i+j].Sub(&rem[i+j], &term)
		}
	}
	if k == 0 {
		return q, Polynomial{fr.Element{}}, nil
	}
	return q, rem[:k].Trim(), nil
}

// DivideFast returns the quotient and remainder of p divided by d.
//
// When the quotient has at least m.Threshold coefficients the quotient is
// computed as rev(q) = rev(p) * rev(d)^-1 mod X^(deg p - deg d + 1), with the
// power-series inverse obtained by Newton iteration over FFT products.
// Smaller divisions use Divide. Both paths return identical results.
func (m Multiplier) DivideFast(p, d Polynomial) (q, r Polynomial, err error) {
	if len(p) == 0 || len(d) == 0 {
		return nil, nil, ErrEmptyPolynomial
	}
	d = d.Trim()
	if d.IsZero() {
		return nil, nil, ErrDivisionByZero
	}
	p = p.Trim()
	n, k := p.Degree(), d.Degree()
	if n < k || n-k+1 < m.Threshold || k == 0 {
		return Divide(p, d)
	}

	qLen := n - k + 1
	inv, err := m.inverseSeries(reverse(d), qLen)
	if err != nil {
		return nil, nil, err
	}
	revQ, err := m.Multiply(truncate(reverse(p), qLen), inv)
	if err != nil {
		return nil, nil, err
	}
	q = reverse(truncate(revQ, qLen))

	qd, err := m.Multiply(q, d)
	if err != nil {
		return nil, nil, err
	}
	r = truncate(Sub(p, qd), k).Trim()
	return q, r, nil
}

// inverseSeries returns g with f*g = 1 mod X^n. f[0] must be non-zero.
// Each Newton step doubles the precision: g <- g*(2 - f*g) mod X^2k.
func (m Multiplier) inverseSeries(f Polynomial, n int) (Polynomial, error) {
	g := make(Polynomial, 1, n)
	g[0].Inverse(&f[0])

	var two fr.Element
	two.SetUint64(2)
	for prec := 1; prec < n; {
		prec = min(2*prec, n)
		fg, err := m.Multiply(truncate(f, prec), g)
		if err != nil {
			return nil, err
		}
		e := truncate(fg, prec)
		for i := range e {
			e[i].Neg(&e[i])
		}
		e[0].Add(&e[0], &two)
		next, err := m.Multiply(g, e)
		if err != nil {
			return nil, err
		}
		g = truncate(next, prec)
	}
	return g, nil
}
