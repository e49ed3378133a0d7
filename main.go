package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"minicc/pkg/asm"
	"minicc/pkg/compiler"
	"minicc/pkg/cpu"
	"minicc/pkg/utils"
)

// varFlags collects repeated -set name=value flags.
type varFlags map[string]*big.Int

func (v varFlags) String() string { return fmt.Sprint(map[string]*big.Int(v)) }

func (v varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("want name=value, got %q", s)
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return fmt.Errorf("invalid integer %q for %s", value, name)
	}
	v[name] = n
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("minicc: ")

	inPath := flag.String("in", "", "input file: a .asm listing, or source to compile")
	reload := flag.Bool("reload", false, "reload nested assignment targets with LOAD before the outer MOV")
	trace := flag.Bool("trace", false, "print every executed instruction")
	maxSource := flag.Int64("max-source", utils.DefaultMaxSourceBytes, "reject input files larger than this many bytes (0 = no limit)")
	inputs := varFlags{}
	flag.Var(inputs, "set", "preset a variable before running, e.g. -set b=3 (repeatable)")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in <file>")
		flag.Usage()
		os.Exit(2)
	}

	fullPath, _, err := utils.GetPathInfo(*inPath)
	if err != nil {
		log.Fatalf("failed to resolve %q: %v", *inPath, err)
	}

	source, err := utils.ReadSource(fullPath, *maxSource)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", *inPath, err)
		os.Exit(1)
	}

	program, err := load(fullPath, source, *reload)
	if err != nil {
		log.Fatal(err)
	}

	vm := cpu.NewCPU()
	for name, v := range inputs {
		vm.Set(name, v)
	}
	if *trace {
		vm.Trace = os.Stdout
	}
	vm.Load(program)
	if err := vm.Run(); err != nil {
		log.Fatalf("run failed for %q: %v", *inPath, err)
	}

	fmt.Printf("run complete (%s): steps=%d %s\n", *inPath, vm.Steps, vm)
}

// load assembles a .asm listing, or compiles anything else.
func load(path, source string, reload bool) ([]cpu.Instruction, error) {
	if strings.EqualFold(filepath.Ext(path), ".asm") {
		program, _, err := asm.Assemble(source)
		if err != nil {
			return nil, fmt.Errorf("assembly failed: %w", err)
		}
		return program, nil
	}

	res, err := compiler.Compile(source, compiler.Options{ReloadChainTargets: reload})
	if err != nil {
		return nil, fmt.Errorf("compilation failed: %w", err)
	}
	for _, w := range res.Warnings {
		log.Printf("warning: %v", w)
	}
	return res.Program, nil
}
