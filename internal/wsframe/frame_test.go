// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package wsframe

import (
	"bytes"
	"strings"
	"testing"
)

// unmaskFrame rewrites the masked (client-to-server) frame at the head of
// framed into the unmasked form a server sends, the only form Decode
// accepts.
func unmaskFrame(framed []byte) []byte {
	offset := 2
	switch framed[1] & 0x7F {
	case 126:
		offset += 2
	case 127:
		offset += 8
	}
	key := framed[offset : offset+4]
	out := append([]byte{framed[0], framed[1] & 0x7F}, framed[2:offset]...)
	for i, b := range framed[offset+4:] {
		out = append(out, b^key[i%4])
	}
	return out
}

func TestEncodeLengthBoundaries(t *testing.T) {
	cases := []struct {
		name       string
		size       int
		wantHeader int // header bytes before the mask key
	}{
		{"short-125", 125, 2},
		{"medium-126", 126, 4},
		{"medium-65535", 65535, 4},
		{"long-65536", 65536, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := bytes.Repeat([]byte{'a'}, tc.size)
			framed := Encode(payload)

			if framed[0] != 0x81 {
				t.Fatalf("expected FIN|text byte0, got %#x", framed[0])
			}

			headerLen := tc.wantHeader + 4 // + masking key
			if len(framed) != headerLen+tc.size {
				t.Fatalf("unexpected frame length: got %d want %d", len(framed), headerLen+tc.size)
			}

			decoded, rest, err := Decode(unmaskFrame(framed))
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if len(rest) != 0 {
				t.Fatalf("expected no remainder, got %d bytes", len(rest))
			}
			if !bytes.Equal(decoded.Payload, payload) {
				t.Fatalf("round-trip payload mismatch")
			}
		})
	}
}

func TestEncodeRoundTripIdempotent(t *testing.T) {
	payload := []byte(`{"id":1,"method":"Debugger.enable"}`)
	first := Encode(payload)
	decoded, _, err := Decode(unmaskFrame(first))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	second := Encode(decoded.Payload)
	if !bytes.Equal(first, second) {
		t.Fatalf("encode(decode(encode(p))) != encode(p)")
	}
}

func TestDecodeIncomplete(t *testing.T) {
	t.Run("single byte", func(t *testing.T) {
		frame, rest, err := Decode([]byte{0x81})
		if frame != nil || err != nil {
			t.Fatalf("expected incomplete sentinel, got frame=%v err=%v", frame, err)
		}
		if len(rest) != 1 {
			t.Fatalf("expected buffer preserved, got %d bytes", len(rest))
		}
	})

	t.Run("long length half read", func(t *testing.T) {
		buf := []byte{0x81, 0x7F, 0x00, 0x00, 0x00, 0x01}
		frame, rest, err := Decode(buf)
		if frame != nil || err != nil {
			t.Fatalf("expected incomplete sentinel, got frame=%v err=%v", frame, err)
		}
		if !bytes.Equal(rest, buf) {
			t.Fatalf("buffer should be unchanged while incomplete")
		}
	})

	t.Run("zero payload frame", func(t *testing.T) {
		framed := Encode(nil)
		frame, rest, err := Decode(unmaskFrame(framed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(frame.Payload) != 0 {
			t.Fatalf("expected empty payload, got %d bytes", len(frame.Payload))
		}
		if len(rest) != 0 {
			t.Fatalf("expected no remainder")
		}
	})
}

func TestDecodeRejectsViolations(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
	}{
		{"rsv1 set", []byte{0x81 | 0x40, 0x80, 0, 0, 0, 0}},
		{"fin unset", []byte{0x01, 0x00}},
		{"masked server frame", []byte{0x81, 0x80, 0, 0, 0, 0}},
		{"binary opcode", []byte{0x82, 0x00}},
		{"continuation opcode", []byte{0x80, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decode(tc.buf)
			if err != ErrProtocol {
				t.Fatalf("expected ErrProtocol, got %v", err)
			}
		})
	}
}

func TestDecodeClose(t *testing.T) {
	framed := []byte{0x88, 0x00}
	frame, rest, err := Decode(framed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frame.Closed {
		t.Fatalf("expected Closed=true for close opcode")
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder")
	}
}

func TestEncodeRandomMaskRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("x", 32))
	a, err := EncodeRandomMask(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := EncodeRandomMask(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Mask key bytes are unspecified; tests must not assume a pattern,
	// only that the encoder succeeds and decodes back to the payload.
	decoded, _, err := Decode(unmaskFrame(a))
	if err != nil || !bytes.Equal(decoded.Payload, payload) {
		t.Fatalf("round trip via random mask failed: %v", err)
	}
	_ = b
}
