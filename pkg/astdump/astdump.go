// Package astdump writes an expression tree in one of several debug formats.
package astdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/k0kubun/pp/v3"
	"github.com/sanity-io/litter"

	"minicc/pkg/compiler"
)

// Format selects a dump style.
type Format int

const (
	FormatTree   Format = iota // indented node text, one line per node
	FormatSpew                 // go-spew struct dump
	FormatLitter               // litter Go-literal dump
	FormatPP                   // pp pretty print, colours off
)

var formatNames = map[string]Format{
	"tree":   FormatTree,
	"spew":   FormatSpew,
	"litter": FormatLitter,
	"pp":     FormatPP,
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Names lists the accepted format names.
func Names() []string {
	return []string{"tree", "spew", "litter", "pp"}
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown dump format %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

var litterConfig = litter.Options{
	HidePrivateFields: true,
	Compact:           false,
}

// Dump writes root to w in format f.
func Dump(w io.Writer, root *compiler.Node, f Format) error {
	switch f {
	case FormatTree:
		return compiler.PrintTree(w, root)
	case FormatSpew:
		spewConfig.Fdump(w, root)
		return nil
	case FormatLitter:
		_, err := io.WriteString(w, litterConfig.Sdump(root)+"\n")
		return err
	case FormatPP:
		printer := pp.New()
		printer.SetColoringEnabled(false)
		_, err := printer.Fprintln(w, root)
		return err
	}
	return fmt.Errorf("unknown dump format %d", int(f))
}
