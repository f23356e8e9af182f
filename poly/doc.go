// Package poly implements dense univariate polynomials over the BLS12-381
// scalar field.
//
// A [Polynomial] is a slice of coefficients ordered from the constant term
// upwards, so p[i] is the coefficient of X^i. Trailing zero coefficients are
// kept as produced and only trimmed where the degree matters (see
// [Polynomial.Trim]).
//
// # Multiplication
//
// Products are computed either by direct convolution, O(n*m), or by
// evaluating both operands on a power-of-two FFT domain, multiplying
// pointwise and interpolating back, O(N log N). The [Multiplier] chooses
// between the two using its Threshold on deg(a)+deg(b); the default
// crossover is [DefaultFFTThreshold]. Both paths produce identical
// coefficients, so the threshold is a pure performance knob.
//
// The FFT path needs a 2^k-th root of unity for 2^k > deg(a)+deg(b). The
// BLS12-381 scalar field has 2-adicity 32; larger products make
// [Multiplier.MultiplyFFT] return [ErrUnsupportedSize], and
// [Multiplier.Multiply] silently falls back to convolution.
//
// # Accumulators and division
//
// [Multiplier.BuildAccumulator] computes prod(X - r_i) with a balanced
// product tree so that the largest multiplication dominates. Division is
// available as schoolbook long division ([Divide]) and as a Newton-iteration
// reciprocal that reuses FFT multiplication ([Multiplier.DivideFast]). The
// subproduct tree and fast division together give multipoint evaluation
// ([Multiplier.EvaluateMany]), which the lagrange package uses to weight many
// interpolation points at once.
package poly
