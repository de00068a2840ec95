package kfmt

import (
	"bytes"
	"testing"
)

func TestFprintf(t *testing.T) {
	specs := []struct {
		fn        func(w *bytes.Buffer)
		expOutput string
	}{
		{
			func(w *bytes.Buffer) { Fprintf(w, "no args") },
			"no args",
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "%s arg", "STRING") },
			"STRING arg",
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "%s arg", []byte("BYTE SLICE")) },
			"BYTE SLICE arg",
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "0x%x", uint32(0xbadf00d)) },
			"0xbadf00d",
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "%x", uint8(0)) },
			"0",
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "uintptr 0x%x", uintptr(0xb8000)) },
			"uintptr 0xb8000",
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "%s@%x:%x:%x:%x", "DEV0", uint16(1), uint8(0x40), uint8(0x1f), uint8(3)) },
			"DEV0@1:40:1f:3",
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "%%%s", "foo") },
			`%foo`,
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "more args", "foo", "bar") },
			`more args%!(EXTRA)%!(EXTRA)`,
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "missing args %s") },
			`missing args (MISSING)`,
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "bad verb %d") },
			`bad verb %!(NOVERB)`,
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "not a string %s", 123) },
			`not a string %!(WRONGTYPE)`,
		},
		{
			func(w *bytes.Buffer) { Fprintf(w, "not an int %x", "foo") },
			`not an int %!(WRONGTYPE)`,
		},
	}

	for specIndex, spec := range specs {
		var buf bytes.Buffer
		spec.fn(&buf)

		if got := buf.String(); got != spec.expOutput {
			t.Errorf("[spec %d] expected to get\n%q\ngot:\n%q", specIndex, spec.expOutput, got)
		}
	}
}

func TestFprintfNilWriterIsSilent(t *testing.T) {
	// Backings pass their trace sink through unchecked, so a nil sink
	// must not panic.
	Fprintf(nil, "%s", "discarded")
}
