package selector

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Separator joins the base name and the searched suffix.
const Separator = "_"

var ErrMissingArgs = errors.New("signature must contain an argument list")

// Result is a scored signature. It is never mutated after scoring.
type Result struct {
	Signature string `json:"signature" yaml:"signature"`
	Selector  uint32 `json:"selector" yaml:"selector"`
	Zeros     int    `json:"zeros" yaml:"zeros"`
	Leading   int    `json:"leading" yaml:"leading"`
}

func (r Result) Acceptable(difficulty int) bool {
	return r.Zeros >= difficulty
}

// Perfect reports a zero selector, which cannot be improved on.
func (r Result) Perfect() bool {
	return r.Selector == 0
}

func (r Result) Hex() string {
	return fmt.Sprintf("%08x", r.Selector)
}

// New builds a result for sig with the given selector.
func New(sig string, sel uint32) Result {
	zeros, leading := CountZeros(sel)
	return Result{Signature: sig, Selector: sel, Zeros: zeros, Leading: leading}
}

// FromDigest takes the selector from the first four bytes of a hash digest.
func FromDigest(sig string, digest []byte) Result {
	return New(sig, binary.BigEndian.Uint32(digest[:4]))
}

// CountZeros counts the zero bytes of a selector, and how many of them lead.
func CountZeros(sel uint32) (zeros, leading int) {
	lead := true
	for shift := 24; shift >= 0; shift -= 8 {
		if byte(sel>>shift) == 0 {
			zeros++
			if lead {
				leading++
			}
		} else {
			lead = false
		}
	}
	return
}

// Score hashes a signature once. Workers use a Scorer instead.
func Score(sig string) Result {
	return FromDigest(sig, crypto.Keccak256([]byte(sig)))
}

// Scorer owns a Keccak state that is reset before every candidate,
// so no state carries over between signatures. Not safe for concurrent use.
type Scorer struct {
	h   crypto.KeccakState
	out [32]byte
}

func NewScorer() *Scorer {
	return &Scorer{h: crypto.NewKeccakState()}
}

// Selector returns the 4-byte selector of sig.
func (s *Scorer) Selector(sig []byte) uint32 {
	s.h.Reset()
	_, _ = s.h.Write(sig)
	_, _ = s.h.Read(s.out[:4])
	return binary.BigEndian.Uint32(s.out[:4])
}

// Signature is a function signature split around its argument list.
type Signature struct {
	Name string // e.g. "deposit"
	Args string // e.g. "(uint256)"
}

func ParseSignature(s string) (Signature, error) {
	i := strings.IndexByte(s, '(')
	if i < 0 {
		return Signature{}, fmt.Errorf("%w: %q", ErrMissingArgs, s)
	}
	if i == 0 {
		return Signature{}, fmt.Errorf("signature %q has an empty name", s)
	}
	return Signature{Name: s[:i], Args: s[i:]}, nil
}

func (s Signature) String() string {
	return s.Name + s.Args
}

// Prefix is the fixed part written before every suffix.
func (s Signature) Prefix() string {
	return s.Name + Separator
}
