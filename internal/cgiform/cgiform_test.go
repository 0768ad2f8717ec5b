package cgiform

import (
	"reflect"
	"testing"
)

func TestStrReturnsFirstValue(t *testing.T) {
	d := New("name=alice&name=bob&empty=")

	if got := d.Str("name", "default"); got != "alice" {
		t.Errorf("Str(name) = %q, want %q", got, "alice")
	}
	if got := d.Str("empty", "default"); got != "default" {
		t.Errorf("Str(empty) = %q, want default for an empty value", got)
	}
	if got := d.Str("missing", "default"); got != "default" {
		t.Errorf("Str(missing) = %q, want %q", got, "default")
	}
}

func TestStrsReturnsAllValues(t *testing.T) {
	d := New("tag=go&tag=http")

	got := d.Strs("tag")
	want := []string{"go", "http"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Strs(tag) = %v, want %v", got, want)
	}

	if got := d.Strs("missing"); got != nil {
		t.Errorf("Strs(missing) = %v, want nil", got)
	}
}

func TestNilDecoderIsSafe(t *testing.T) {
	var d *Decoder
	if got := d.Str("x", "fallback"); got != "fallback" {
		t.Errorf("Str on nil decoder = %q, want %q", got, "fallback")
	}
	if got := d.Strs("x"); got != nil {
		t.Errorf("Strs on nil decoder = %v, want nil", got)
	}
}
