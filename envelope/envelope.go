// Package envelope composes the signed outer message the Ledger expects
// for every submitted transaction: a frozen body plus an ordered list of
// signature pairs. The Signer abstraction accepts a frozen body and
// returns a signature, so the same envelope code works regardless of
// which typed transaction body is inside it.
package envelope

import (
	"github.com/distledger/ledger-go/wire"
)

// SignaturePair is a (public_key_prefix, signature) pair. Multiple pairs
// are permitted (multi-sig); insertion order is preserved on the wire.
type SignaturePair struct {
	PublicKeyPrefix [32]byte
	Signature       [64]byte
}

// Signer produces a signature over an already-frozen body. Implementations
// must not mutate the body and must return a signature that verifies
// against the exact bytes they were given — the key-material and
// signature-scheme itself are external collaborators (see package docs in
// the module root DESIGN.md).
type Signer interface {
	PublicKeyPrefix() [32]byte
	Sign(body []byte) ([64]byte, error)
}

// Envelope accumulates signature pairs over a frozen transaction body.
// Freeze must be called exactly once before Sign; signing an unfrozen
// envelope returns ErrNotFrozen.
type Envelope struct {
	body    []byte
	frozen  bool
	sigs    []SignaturePair
}

// New returns an empty, unfrozen envelope.
func New() *Envelope {
	return &Envelope{}
}

// Freeze sets the transaction body. body is not copied; the caller must
// not mutate it afterward. Calling Freeze more than once is a no-op on the
// body already set — the invariant the spec requires is "no mutation after
// freeze", not "freeze is idempotent", so a second Freeze with different
// bytes is rejected.
func (e *Envelope) Freeze(body []byte) error {
	if e.frozen && !bytesEqual(e.body, body) {
		return ErrAlreadyFrozen
	}
	e.body = body
	e.frozen = true
	return nil
}

// IsFrozen reports whether Freeze has been called.
func (e *Envelope) IsFrozen() bool {
	return e.frozen
}

// Body returns the frozen body bytes. Returns nil if not yet frozen.
func (e *Envelope) Body() []byte {
	return e.body
}

// Sign appends a signature pair produced by signing the frozen body.
// Returns ErrNotFrozen if called before Freeze.
func (e *Envelope) Sign(signer Signer) error {
	if !e.frozen {
		return ErrNotFrozen
	}
	sig, err := signer.Sign(e.body)
	if err != nil {
		return err
	}
	e.sigs = append(e.sigs, SignaturePair{
		PublicKeyPrefix: signer.PublicKeyPrefix(),
		Signature:       sig,
	})
	return nil
}

// AddSignature appends a pre-computed signature pair directly, for callers
// that sign offline and hand back raw bytes instead of implementing
// Signer. Returns ErrNotFrozen if called before Freeze.
func (e *Envelope) AddSignature(pair SignaturePair) error {
	if !e.frozen {
		return ErrNotFrozen
	}
	e.sigs = append(e.sigs, pair)
	return nil
}

// SignaturePairs returns the signature pairs in insertion order. The
// returned slice is owned by the caller.
func (e *Envelope) SignaturePairs() []SignaturePair {
	out := make([]SignaturePair, len(e.sigs))
	copy(out, e.sigs)
	return out
}

// Bytes wire-encodes the outer message:
//
//	outer: field 1 = signed_transaction_bytes (length-delimited)
//	signed_transaction:
//	  field 1 = body_bytes
//	  field 2 = signature_map_bytes
//	signature_map:
//	  repeated field 1 = signature_pair_bytes
//	signature_pair:
//	  field 1 = public_key_prefix (32 bytes)
//	  field 3 = signature (64 bytes)
//
// Returns ErrNotFrozen if called before Freeze.
func (e *Envelope) Bytes() ([]byte, error) {
	if !e.frozen {
		return nil, ErrNotFrozen
	}

	w := wire.NewWriter()
	w.WriteMessage(1, func(signedTx *wire.Writer) {
		signedTx.WriteBytes(1, e.body)
		signedTx.WriteMessage(2, func(sigMap *wire.Writer) {
			for _, pair := range e.sigs {
				sigMap.WriteMessage(1, func(sigPair *wire.Writer) {
					sigPair.WriteBytes(1, pair.PublicKeyPrefix[:])
					sigPair.WriteBytes(3, pair.Signature[:])
				})
			}
		})
	})
	return w.Bytes(), nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
