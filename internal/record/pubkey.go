package record

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

const PubkeySize = 32

// Pubkey is a 32-byte account identity.
type Pubkey [PubkeySize]byte

// String returns the base58 form.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubkey decodes a base58 identity of exactly 32 bytes.
func ParsePubkey(raw string) (Pubkey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Pubkey{}, fmt.Errorf("%w: empty", ErrInvalidPubkey)
	}
	buf, err := base58.Decode(raw)
	if err != nil {
		return Pubkey{}, fmt.Errorf("%w: %v", ErrInvalidPubkey, err)
	}
	if len(buf) != PubkeySize {
		return Pubkey{}, fmt.Errorf("%w: decoded %d bytes, want %d", ErrInvalidPubkey, len(buf), PubkeySize)
	}
	var p Pubkey
	copy(p[:], buf)
	return p, nil
}
