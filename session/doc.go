// Package session provides a high-level API for distributed key generation
// ceremonies built on publicly verifiable secret sharing. It wraps the
// [pvss] package with a simpler interface that handles the ceremony steps
// and prevents common mistakes like dealing twice.
//
// The session package is designed for application developers who want a
// DKG without handling transcripts by hand. For full control over the
// protocol, use the [pvss] package directly.
//
// # DKG Ceremony
//
// Every participant runs the same code independently:
//
//	// Create participant state and publish its encryption key
//	p, err := session.NewParticipant(scheme, myID, rand.Reader)
//	if err != nil {
//		return err
//	}
//	publish(p.EncryptKey())
//
//	// Once every key is known, deal and broadcast the transcript
//	tr, err := p.Deal(ctx, allKeys)
//	if err != nil {
//		return err
//	}
//
//	// After receiving the transcripts of all dealers:
//	result, err := p.Finalize(ctx, receivedTranscripts, allKeys)
//
//	// Store result.Share securely
//
// Unlike an interactive DKG there are no private messages: every
// transcript is public and anyone, participant or not, can check it.
// Participants must finalize over the same transcripts to agree on the key.
//
// A Participant deals at most once. Calling Deal a second time returns
// [ErrAlreadyDealt].
//
// # Transport Agnostic
//
// This package does not handle network communication. You are responsible
// for distributing keys and transcripts between participants using your
// preferred transport. Transcripts travel as [pvss.Transcript.MarshalBinary]
// bytes and are parsed with [pvss.Scheme.DecodeTranscript].
package session
