package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/swap/errors"
)

func TestBech32EncodeDecode(t *testing.T) {
	// bech32  -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" {
		t.Fatalf("unexpected hrp: %q", hrp)
	}

	if !bytes.Equal(want, payload) {
		t.Logf("want %d", want)
		t.Logf("got  %d", payload)
		t.Fatal("invalid decode")
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}

	if raw != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestBech32DecodeFixed(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 32)
	enc, err := Encode("swap", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}

	if _, got, err := DecodeFixed(enc, 32); err != nil {
		t.Fatalf("cannot decode: %+v", err)
	} else if !bytes.Equal(payload, got) {
		t.Fatalf("invalid decode: %x", got)
	}

	if _, _, err := DecodeFixed(enc, 20); !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}

	if _, _, err := Decode("swap1invalid"); !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}
}
