package filters

import (
	"bytes"
	"compress/zlib"
	"errors"
	"testing"

	"github.com/tsawler/xrefix/core"
)

// zlibCompress compresses data for testing
func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// TestFlateDecodeBasic tests basic zlib decompression
func TestFlateDecodeBasic(t *testing.T) {
	original := []byte("Hello, World! This is test data for FlateDecode.")

	decoded, err := FlateDecode(zlibCompress(original))
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original\ngot:  %s\nwant: %s", decoded, original)
	}
}

// TestFlateDecodeTrailingEOL tests that bytes after the zlib stream are ignored
func TestFlateDecodeTrailingEOL(t *testing.T) {
	original := []byte{1, 0, 9, 0, 1, 0, 40, 0}
	payload := append(zlibCompress(original), '\r')

	decoded, err := FlateDecode(payload)
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("got %v, want %v", decoded, original)
	}
}

// TestFlateDecodeInvalidZlib tests rejection of non-zlib data
func TestFlateDecodeInvalidZlib(t *testing.T) {
	_, err := FlateDecode([]byte("not compressed"))
	if err == nil {
		t.Fatal("expected error for invalid zlib data")
	}
	if !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

// TestFlateEncodeRoundTrip tests that encoded data decodes back
func TestFlateEncodeRoundTrip(t *testing.T) {
	levels := []int{zlib.NoCompression, zlib.BestSpeed, zlib.DefaultCompression, zlib.BestCompression}
	original := bytes.Repeat([]byte{2, 0, 0, 1, 0}, 200)

	for _, level := range levels {
		encoded, err := FlateEncode(original, level)
		if err != nil {
			t.Fatalf("level %d: FlateEncode failed: %v", level, err)
		}
		decoded, err := FlateDecode(encoded)
		if err != nil {
			t.Fatalf("level %d: FlateDecode failed: %v", level, err)
		}
		if !bytes.Equal(decoded, original) {
			t.Errorf("level %d: round trip mismatch", level)
		}
	}
}

// TestFlateEncodeBadLevel tests rejection of an invalid compression level
func TestFlateEncodeBadLevel(t *testing.T) {
	if _, err := FlateEncode([]byte("x"), 42); !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

// TestDecodeChain tests named filter chains
func TestDecodeChain(t *testing.T) {
	original := []byte("chain")
	hexOfZlib := []byte{}
	for _, b := range zlibCompress(original) {
		hexOfZlib = append(hexOfZlib, "0123456789abcdef"[b>>4], "0123456789abcdef"[b&15])
	}
	hexOfZlib = append(hexOfZlib, '>')

	decoded, err := Decode(hexOfZlib, []string{"AHx", "FlateDecode"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("got %q, want %q", decoded, original)
	}

	same, err := Decode(original, nil)
	if err != nil || !bytes.Equal(same, original) {
		t.Errorf("empty chain should be identity, got %q, %v", same, err)
	}
}

// TestDecodeUnknownFilter tests rejection of unsupported filters
func TestDecodeUnknownFilter(t *testing.T) {
	for _, name := range []string{"LZWDecode", "RunLengthDecode", "CCITTFaxDecode", "DCTDecode"} {
		if _, err := Decode([]byte{0}, []string{name}); !errors.Is(err, core.ErrUnsupported) {
			t.Errorf("%s: expected ErrUnsupported, got %v", name, err)
		}
	}
}
