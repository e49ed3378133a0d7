package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"minicc/pkg/astdump"
	"minicc/pkg/compiler"
	"minicc/pkg/cpu"
	"minicc/pkg/treeimg"
	"minicc/pkg/utils"
)

const defaultInput = "input.txt"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole program. Nothing is written to stdout unless every stage
// succeeds.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ccompiler", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showTokens := fs.Bool("tokens", false, "print the token stream before the tree")
	dumpName := fs.String("dump", "tree", "tree dump format: "+strings.Join(astdump.Names(), ", "))
	pngPath := fs.String("png", "", "also render the tree to this PNG file")
	reload := fs.Bool("reload", false, "reload nested assignment targets with LOAD before the outer MOV")
	maxTokenLen := fs.Int("max-token-len", 0, "reject identifiers/numbers longer than this many characters (0 = no limit)")
	maxSource := fs.Int64("max-source", utils.DefaultMaxSourceBytes, "reject input files larger than this many bytes (0 = no limit)")
	showSymbols := fs.Bool("symbols", false, "print the symbol summary after the listing")
	execute := fs.Bool("run", false, "execute the listing on the accumulator machine and print the final state")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ccompiler [flags] [file] (default file %q)\n", defaultInput)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	format, err := astdump.ParseFormat(*dumpName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	path := defaultInput
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	src, err := utils.ReadSource(path, *maxSource)
	if err != nil {
		fmt.Fprintf(stderr, "failed to open file %q: %v\n", path, err)
		return 1
	}

	res, err := compiler.Compile(src, compiler.Options{
		MaxTokenLen:        *maxTokenLen,
		ReloadChainTargets: *reload,
	})
	if err != nil {
		fmt.Fprintln(stderr, "compile error:", err)
		return 1
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(stderr, "warning:", w)
	}

	var out bytes.Buffer
	if *showTokens {
		for _, tok := range res.Tokens {
			fmt.Fprintln(&out, tok)
		}
	}
	if err := astdump.Dump(&out, res.Root, format); err != nil {
		fmt.Fprintln(stderr, "dump error:", err)
		return 1
	}
	out.WriteString(res.Assembly)
	if *showSymbols {
		out.WriteString(res.Symbols.String())
	}

	if *execute {
		vm := cpu.NewCPU()
		vm.Load(res.Program)
		if err := vm.Run(); err != nil {
			fmt.Fprintln(stderr, "run error:", err)
			return 1
		}
		fmt.Fprintln(&out, vm)
	}

	if *pngPath != "" {
		if err := writePNG(*pngPath, res.Root); err != nil {
			fmt.Fprintf(stderr, "failed to write image %q: %v\n", *pngPath, err)
			return 1
		}
	}

	if _, err := stdout.Write(out.Bytes()); err != nil {
		fmt.Fprintln(stderr, "write error:", err)
		return 1
	}
	return 0
}

// writePNG encodes in memory first so an oversized tree leaves no file behind.
func writePNG(path string, root *compiler.Node) error {
	var buf bytes.Buffer
	if err := treeimg.WritePNG(&buf, root); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
