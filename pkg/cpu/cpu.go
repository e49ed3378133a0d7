// Package cpu implements the accumulator machine targeted by the compiler:
// one accumulator register and a flat map of named variables.
package cpu

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strings"
)

// Op is an instruction opcode.
type Op uint8

const (
	OpLOADI Op = iota // ACC = immediate
	OpLOAD            // ACC = variable
	OpMOV             // variable = ACC
)

var opNames = [...]string{
	OpLOADI: "LOADI",
	OpLOAD:  "LOAD",
	OpMOV:   "MOV",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Instruction is one decoded machine instruction. Name is used by LOAD and
// MOV, Imm by LOADI.
type Instruction struct {
	Op   Op
	Name string
	Imm  *big.Int
}

// String renders the instruction in listing syntax.
func (in Instruction) String() string {
	switch in.Op {
	case OpLOADI:
		if in.Imm == nil {
			return "LOADI <nil>"
		}
		return "LOADI " + in.Imm.String()
	case OpLOAD:
		return "LOAD " + in.Name
	case OpMOV:
		return "MOV " + in.Name + ", ACC"
	}
	return in.Op.String()
}

var (
	ErrUndefinedVariable  = errors.New("undefined variable")
	ErrEmptyAccumulator   = errors.New("accumulator is empty")
	ErrIllegalInstruction = errors.New("illegal instruction")
)

// CPU executes a loaded program from PC 0 until it runs off the end.
type CPU struct {
	ACC *big.Int // nil until the first load
	PC  int

	Program []Instruction
	Halted  bool
	Steps   int

	// Trace, when set, receives one line per executed instruction.
	Trace io.Writer

	vars map[string]*big.Int
}

func NewCPU() *CPU {
	return &CPU{vars: make(map[string]*big.Int)}
}

// Load replaces the program and resets PC and the halt flag. Variables and
// ACC are kept so a caller can preset inputs with Set.
func (c *CPU) Load(prog []Instruction) {
	c.Program = prog
	c.PC = 0
	c.Halted = len(prog) == 0
}

// Set presets a variable.
func (c *CPU) Set(name string, v *big.Int) {
	c.vars[name] = new(big.Int).Set(v)
}

// Get returns a copy of a variable's value.
func (c *CPU) Get(name string) (*big.Int, bool) {
	v, ok := c.vars[name]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Vars returns a copy of every variable.
func (c *CPU) Vars() map[string]*big.Int {
	out := make(map[string]*big.Int, len(c.vars))
	for k, v := range c.vars {
		out[k] = new(big.Int).Set(v)
	}
	return out
}

// Step executes the instruction at PC.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}
	if c.PC < 0 || c.PC >= len(c.Program) {
		c.Halted = true
		return nil
	}
	in := c.Program[c.PC]

	switch in.Op {
	case OpLOADI:
		if in.Imm == nil {
			return fmt.Errorf("pc %d: %w: LOADI without operand", c.PC, ErrIllegalInstruction)
		}
		c.ACC = new(big.Int).Set(in.Imm)
	case OpLOAD:
		v, ok := c.vars[in.Name]
		if !ok {
			return fmt.Errorf("pc %d: %w %q", c.PC, ErrUndefinedVariable, in.Name)
		}
		c.ACC = new(big.Int).Set(v)
	case OpMOV:
		if c.ACC == nil {
			return fmt.Errorf("pc %d: %w: MOV %s", c.PC, ErrEmptyAccumulator, in.Name)
		}
		c.vars[in.Name] = new(big.Int).Set(c.ACC)
	default:
		return fmt.Errorf("pc %d: %w: %s", c.PC, ErrIllegalInstruction, in.Op)
	}

	if c.Trace != nil {
		fmt.Fprintf(c.Trace, "%04d  %-20s ACC=%s\n", c.PC, in, c.accString())
	}

	c.PC++
	c.Steps++
	if c.PC >= len(c.Program) {
		c.Halted = true
	}
	return nil
}

// Run steps until the program ends or an instruction fails.
func (c *CPU) Run() error {
	for !c.Halted {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (c *CPU) accString() string {
	if c.ACC == nil {
		return "-"
	}
	return c.ACC.String()
}

// String reports ACC and every variable, sorted by name.
func (c *CPU) String() string {
	names := make([]string, 0, len(c.vars))
	for name := range c.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "ACC=%s", c.accString())
	for _, name := range names {
		fmt.Fprintf(&sb, " %s=%s", name, c.vars[name])
	}
	return sb.String()
}
