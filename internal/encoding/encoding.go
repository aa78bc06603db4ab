// Package encoding converts between text, bytes, hex and bit sequences.
//
// Bit order is load-bearing for keystream compatibility: bytes unpack LSB
// first, and hex digits hold four bits LSB first within the nibble.
package encoding

import (
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/san-kum/collatzrng/internal/rng"
)

const hexDigits = "0123456789abcdef"

// BytesToBits unpacks each byte LSB first, in byte order.
func BytesToBits(data []byte) rng.Bits {
	out := make(rng.Bits, 0, len(data)*8)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			out = append(out, (b>>uint(i))&1)
		}
	}
	return out
}

// BitsToBytes packs groups of 8 bits, first bit in the LSB. A trailing
// partial group is dropped.
func BitsToBytes(bits rng.Bits) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b |= rng.Bit(bits[i*8+j]) << uint(j)
		}
		out[i] = b
	}
	return out
}

// TextToBits encodes s as UTF-8 and unpacks it.
func TextToBits(s string) rng.Bits {
	return BytesToBits([]byte(s))
}

// BitsToText packs bits into bytes and decodes them as UTF-8, replacing
// invalid sequences with U+FFFD.
func BitsToText(bits rng.Bits) string {
	return DecodeUTF8(BitsToBytes(bits))
}

// DecodeUTF8 never fails; undecodable bytes become U+FFFD.
func DecodeUTF8(data []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(out)
}

// BitsToHex packs groups of 4 bits into lowercase hex digits, first bit in
// the nibble's LSB. A trailing partial nibble is dropped.
func BitsToHex(bits rng.Bits) string {
	var sb strings.Builder
	sb.Grow(len(bits) / 4)
	for i := 0; i+4 <= len(bits); i += 4 {
		v := rng.Bit(bits[i]) | rng.Bit(bits[i+1])<<1 | rng.Bit(bits[i+2])<<2 | rng.Bit(bits[i+3])<<3
		sb.WriteByte(hexDigits[v])
	}
	return sb.String()
}

// HexToBits expands each hex digit (either case) into 4 bits, LSB first.
func HexToBits(s string) (rng.Bits, error) {
	out := make(rng.Bits, 0, len(s)*4)
	for i := 0; i < len(s); i++ {
		v, ok := hexValue(s[i])
		if !ok {
			return nil, &HexError{Offset: i, Char: s[i]}
		}
		for j := 0; j < 4; j++ {
			out = append(out, (v>>uint(j))&1)
		}
	}
	return out, nil
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
