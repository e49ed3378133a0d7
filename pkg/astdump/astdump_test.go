package astdump

import (
	"bytes"
	"strings"
	"testing"

	"minicc/pkg/compiler"
)

func parse(t *testing.T, src string) *compiler.Node {
	t.Helper()
	res, err := compiler.Compile(src, compiler.Options{})
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", src, err)
	}
	return res.Root
}

func TestParseFormat(t *testing.T) {
	for _, name := range Names() {
		f, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
		}
		if f.String() != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, f)
		}
	}
	if f, err := ParseFormat(" SPEW "); err != nil || f != FormatSpew {
		t.Errorf("ParseFormat is not case/space tolerant: %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded, want error")
	}
}

func TestDump(t *testing.T) {
	root := parse(t, "a = b = 7")

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatTree, []string{"=\n  a\n  =\n    b\n    7\n"}},
		{FormatSpew, []string{"Kind", "Text", `"a"`, `"b"`, `"7"`}},
		{FormatLitter, []string{"compiler.Node", `Text: "a"`, `Text: "7"`}},
		{FormatPP, []string{"compiler.Node", `"a"`, `"7"`}},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		if err := Dump(&buf, root, tc.format); err != nil {
			t.Fatalf("Dump(%s) failed: %v", tc.format, err)
		}
		out := buf.String()
		for _, w := range tc.want {
			if !strings.Contains(out, w) {
				t.Errorf("Dump(%s) output does not contain %q:\n%s", tc.format, w, out)
			}
		}
	}

	if err := Dump(&bytes.Buffer{}, root, Format(99)); err == nil {
		t.Error("Dump with unknown format succeeded")
	}
}
