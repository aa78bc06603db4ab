// Package cipher is a toy XOR stream cipher keyed by a generator seed.
//
// It is a one-time-pad construction whose strength is exactly the quality of
// the keystream, which is weak. Do not use it to protect data.
package cipher

import (
	"github.com/san-kum/collatzrng/internal/encoding"
	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/rng"
)

// Sealed is the output of Encrypt. Both fields use the nibble hex packing of
// the encoding package.
type Sealed struct {
	CiphertextHex string `json:"ciphertext_hex"`
	KeystreamHex  string `json:"keystream_hex"`
}

// Keystream returns n balanced bits from a fresh generator.
func Keystream(seed int64, n int, opts ...generator.Option) (rng.Bits, error) {
	g, err := generator.New(seed, opts...)
	if err != nil {
		return nil, err
	}
	return g.BalancedBits(n)
}

// Encrypt XORs the UTF-8 bits of message with the keystream for seed.
func Encrypt(message string, seed int64, opts ...generator.Option) (Sealed, error) {
	msg := encoding.TextToBits(message)
	key, err := Keystream(seed, len(msg), opts...)
	if err != nil {
		return Sealed{}, err
	}
	return Sealed{
		CiphertextHex: encoding.BitsToHex(msg.Xor(key)),
		KeystreamHex:  encoding.BitsToHex(key),
	}, nil
}

// Decrypt regenerates the keystream for seed and XORs it back out. Bytes
// that are not valid UTF-8 decode to U+FFFD.
func Decrypt(ciphertextHex string, seed int64, opts ...generator.Option) (string, error) {
	ct, err := encoding.HexToBits(ciphertextHex)
	if err != nil {
		return "", err
	}
	key, err := Keystream(seed, len(ct), opts...)
	if err != nil {
		return "", err
	}
	return encoding.BitsToText(ct.Xor(key)), nil
}
