package script

import "encoding/hex"

// Hex keeps script bytes together with their hex rendering so the encoding is done once.
type Hex struct {
	bytes []byte
	hex   string
}

func ToHex(b []byte) Hex {
	return Hex{
		bytes: b,
		hex:   hex.EncodeToString(b),
	}
}

func (h Hex) String() string {
	return h.hex
}

func (h Hex) Bytes() []byte {
	return h.bytes
}

func (h Hex) MarshalText() ([]byte, error) {
	return []byte(h.hex), nil
}

func (h *Hex) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*h = Hex{bytes: b, hex: hex.EncodeToString(b)}
	return nil
}
