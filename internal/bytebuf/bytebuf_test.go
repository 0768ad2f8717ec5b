package bytebuf

import (
	"bytes"
	"testing"
)

func TestBufferAppendAndData(t *testing.T) {
	b := New(16)
	b.Append([]byte("hello"))
	b.Append([]byte(" world"))

	if !bytes.Equal(b.Data(), []byte("hello world")) {
		t.Errorf("Data() = %q, want %q", b.Data(), "hello world")
	}
	if b.Len() != len("hello world") {
		t.Errorf("Len() = %d, want %d", b.Len(), len("hello world"))
	}
}

func TestBufferReset(t *testing.T) {
	b := New(8)
	b.Append([]byte("abc"))
	b.Reset()

	if b.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", b.Len())
	}
}

func TestBufferDiscard(t *testing.T) {
	b := New(8)
	b.Append([]byte("abcdefgh"))

	b.Discard(3)
	if !bytes.Equal(b.Data(), []byte("defgh")) {
		t.Errorf("Data() after Discard(3) = %q, want %q", b.Data(), "defgh")
	}

	b.Discard(100)
	if b.Len() != 0 {
		t.Errorf("Len() after over-discarding = %d, want 0", b.Len())
	}
}

func TestBufferDestroy(t *testing.T) {
	b := New(8)
	b.Append([]byte("xyz"))
	b.Destroy()
	// Destroy should not panic when called a second time.
	b.Destroy()
}
