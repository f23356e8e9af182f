// Package pvss implements publicly verifiable secret sharing over a
// pairing-friendly curve, and the transcript aggregation that turns it
// into a distributed key generation protocol.
//
// A dealer shares a secret s among n participants with a random degree-t
// polynomial f, f(0) = s. The public [Transcript] carries
//
//   - a commitment g^{c_j} to every coefficient of f,
//   - for each participant i an encrypted share ek_i^{f(i)}, where
//     ek_i = h^{1/dk_i} is the participant's encryption key,
//   - the dealt public key u^{s},
//   - one authenticated contribution record per dealer.
//
// Anyone can check a transcript against the encryption keys with
// [Scheme.Verify], without learning anything about s. Participant i
// decrypts its share as (ek_i^{f(i)})^{dk_i} = h^{f(i)}; any t+1 such shares
// interpolate the dealt secret key h^{s} ([Scheme.Reconstruct]).
//
// # Distributed key generation
//
// Each participant deals a transcript; every verified transcript is then
// combined with [Scheme.Aggregate]. The aggregate shares the sum of all
// dealt secrets, which no single dealer knows, and verifies like a single
// transcript. To stop the last dealer from choosing its secret after seeing
// the others, contributions can be authenticated (see [Authentication]):
// either with a proof of knowledge of the dealer's secret, or with a
// signature under a dealer key registered at setup.
//
// # Groups
//
// The commitment lives in one source group of the pairing and the shares,
// keys and dealt public key in the other; [Variant] picks which. The choice
// is fixed per [Scheme].
//
// # Concurrency
//
// A [Scheme] is immutable and safe for concurrent use. Per-participant work
// in [Scheme.Deal] and [Scheme.Verify] runs on a bounded worker pool
// (see [WithWorkers]); results never depend on scheduling.
//
// # Security Considerations
//
//   - [Dealing] holds the secret polynomial. Call [Dealing.Destroy] once the
//     transcript is published; it is never serialized or printed.
//   - Transcripts decoded with [Scheme.DecodeTranscript] have every point
//     checked for subgroup membership. Transcripts built in memory from
//     untrusted sources must go through the decoder.
//   - Aggregate does not verify its inputs.
//   - Use a cryptographically secure source of randomness (crypto/rand.Reader).
package pvss
