package laju

import (
	"bytes"
	"testing"
)

// TestLineTerminator tests that lineTerminator has the correct value.
func TestLineTerminator(t *testing.T) {
	expected := []byte{0x0d, 0x0a} // "\r\n"

	if !bytes.Equal(lineTerminator, expected) {
		t.Errorf("lineTerminator = %v, want %v", lineTerminator, expected)
	}

	stringRepresentation := []byte("\r\n")
	if !bytes.Equal(lineTerminator, stringRepresentation) {
		t.Errorf("lineTerminator = %v, want %v", lineTerminator, stringRepresentation)
	}
}

// TestHeaderTerminator tests that headerTerminator has the correct value.
func TestHeaderTerminator(t *testing.T) {
	expected := []byte{0x0d, 0x0a, 0x0d, 0x0a} // "\r\n\r\n"

	if !bytes.Equal(headerTerminator, expected) {
		t.Errorf("headerTerminator = %v, want %v", headerTerminator, expected)
	}

	stringRepresentation := []byte("\r\n\r\n")
	if !bytes.Equal(headerTerminator, stringRepresentation) {
		t.Errorf("headerTerminator = %v, want %v", headerTerminator, stringRepresentation)
	}
}

// TestTerminatorsUsage exercises the terminators the way the parser does.
func TestTerminatorsUsage(t *testing.T) {
	headers := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	if !bytes.HasSuffix(headers, headerTerminator) {
		t.Errorf("headerTerminator doesn't match the end of a header block")
	}

	chunkSizeLine := []byte("1a\r\n")
	if !bytes.HasSuffix(chunkSizeLine, lineTerminator) {
		t.Errorf("lineTerminator doesn't match the end of a chunk size line")
	}
}
