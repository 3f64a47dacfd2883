// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// STACK_BASE is the initial value of the stack pointer, which is aligned as it
// would be immediately before a call instruction.
const STACK_BASE int64 = 0x7fff_0000

// MAX_STEPS bounds the number of instructions executed, so that programs which
// fail to terminate are reported rather than hanging a test.
const MAX_STEPS = 10_000_000

// HALT_ADDRESS is the return address pushed before the entry point is called.
// Returning to it stops the machine.
const HALT_ADDRESS int64 = -1

// ENTRY_POINT is the label where execution begins.
const ENTRY_POINT = "main"

// ErrDivideByZero is reported when a program divides by zero, which would
// raise a floating point exception on real hardware.
var ErrDivideByZero = errors.New("divide by zero")

// Machine is an interpreter for the (small) subset of x86-64 assembly in AT&T
// syntax produced by the compiler.  Every register and memory location holds a
// 64-bit word, and memory is only addressed in whole words.
type Machine struct {
	program   []instruction
	labels    map[string]int
	registers map[string]int64
	memory    map[int64]int64
	// Most recent comparison, as (destination, source).
	lhs, rhs int64
	// Number of instructions executed so far.
	steps uint
}

type instruction struct {
	line     int
	mnemonic string
	operands []string
}

// NewMachine parses a given assembly listing into a machine ready to execute
// it.
func NewMachine(asm string) (*Machine, error) {
	m := &Machine{
		labels:    make(map[string]int),
		registers: make(map[string]int64),
		memory:    make(map[int64]int64),
	}
	//
	for i, line := range strings.Split(asm, "\n") {
		line = strings.TrimSpace(line)
		//
		switch {
		case line == "":
			continue
		case strings.HasSuffix(line, ":"):
			name := strings.TrimSuffix(line, ":")
			//
			if _, ok := m.labels[name]; ok {
				return nil, fmt.Errorf("line %d: duplicate label %s", i+1, name)
			}
			//
			m.labels[name] = len(m.program)
		case strings.HasPrefix(line, "."):
			// Directive
			continue
		default:
			mnemonic, operands, _ := strings.Cut(line, " ")
			insn := instruction{i + 1, mnemonic, nil}
			//
			if operands != "" {
				for _, operand := range strings.Split(operands, ",") {
					insn.operands = append(insn.operands, strings.TrimSpace(operand))
				}
			}
			//
			m.program = append(m.program, insn)
		}
	}
	//
	if _, ok := m.labels[ENTRY_POINT]; !ok {
		return nil, fmt.Errorf("missing entry point %s", ENTRY_POINT)
	}
	//
	return m, nil
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() uint {
	return m.steps
}

// Register returns the current contents of a given (64-bit) register.
func (m *Machine) Register(name string) int64 {
	return m.registers[name]
}

// Run the program from its entry point until it returns, producing the value
// left in %rax.  The stack pointer must be restored by the time the program
// returns.
func (m *Machine) Run() (int64, error) {
	m.registers["rsp"] = STACK_BASE
	// Simulate the call to the entry point
	m.push(HALT_ADDRESS)
	//
	for pc := m.labels[ENTRY_POINT]; ; {
		if pc < 0 || pc >= len(m.program) {
			return 0, fmt.Errorf("execution fell off end of program")
		} else if m.steps >= MAX_STEPS {
			return 0, fmt.Errorf("exceeded %d steps", MAX_STEPS)
		}
		//
		var (
			insn = m.program[pc]
			next int
			err  error
		)
		//
		m.steps++
		//
		if insn.mnemonic == "ret" {
			if addr := m.pop(); addr != HALT_ADDRESS {
				return 0, fmt.Errorf("line %d: return to unknown address %d", insn.line, addr)
			} else if m.registers["rsp"] != STACK_BASE {
				return 0, fmt.Errorf("line %d: stack pointer not restored", insn.line)
			}
			//
			return m.registers["rax"], nil
		} else if next, err = m.execute(pc, insn); err != nil {
			return 0, fmt.Errorf("line %d: %s (%w)", insn.line, insn.mnemonic, err)
		}
		//
		pc = next
	}
}

// Execute a single instruction, returning the index of the next instruction.
func (m *Machine) execute(pc int, insn instruction) (int, error) {
	var (
		ops = insn.operands
		err error
	)
	//
	if arity, ok := arities[insn.mnemonic]; !ok {
		return 0, errors.New("unknown instruction")
	} else if len(ops) != arity {
		return 0, fmt.Errorf("expected %d operand(s)", arity)
	}
	//
	switch insn.mnemonic {
	case "mov":
		err = m.binary(ops, func(_, src int64) int64 { return src })
	case "movzb":
		err = m.binary(ops, func(_, src int64) int64 { return src & 0xff })
	case "lea":
		var addr int64
		//
		if addr, err = m.address(ops[0]); err == nil {
			err = m.write(ops[1], addr)
		}
	case "add":
		err = m.binary(ops, func(dst, src int64) int64 { return dst + src })
	case "sub":
		err = m.binary(ops, func(dst, src int64) int64 { return dst - src })
	case "imul":
		err = m.binary(ops, func(dst, src int64) int64 { return dst * src })
	case "neg":
		var val int64
		//
		if val, err = m.read(ops[0]); err == nil {
			err = m.write(ops[0], -val)
		}
	case "cqo":
		m.registers["rdx"] = m.registers["rax"] >> 63
	case "idiv":
		err = m.divide(ops[0])
	case "cmp":
		if m.rhs, err = m.read(ops[0]); err == nil {
			m.lhs, err = m.read(ops[1])
		}
	case "sete", "setne", "setl", "setle", "setg", "setge":
		var flag int64
		//
		if m.condition(strings.TrimPrefix(insn.mnemonic, "set")) {
			flag = 1
		}
		//
		err = m.write(ops[0], flag)
	case "push":
		var val int64
		//
		if val, err = m.read(ops[0]); err == nil {
			m.push(val)
		}
	case "pop":
		err = m.write(ops[0], m.pop())
	case "jmp":
		return m.jump(ops[0])
	case "je":
		if m.condition("e") {
			return m.jump(ops[0])
		}
	}
	//
	return pc + 1, err
}

var arities = map[string]int{
	"mov": 2, "movzb": 2, "lea": 2, "add": 2, "sub": 2, "imul": 2, "neg": 1, "cqo": 0, "idiv": 1, "cmp": 2,
	"sete": 1, "setne": 1, "setl": 1, "setle": 1, "setg": 1, "setge": 1, "push": 1, "pop": 1, "jmp": 1, "je": 1,
}

// Apply a two operand instruction, where the destination is also the first
// argument to the operation.
func (m *Machine) binary(ops []string, fn func(dst, src int64) int64) error {
	src, err := m.read(ops[0])
	if err != nil {
		return err
	}
	//
	dst, err := m.read(ops[1])
	if err != nil {
		return err
	}
	//
	return m.write(ops[1], fn(dst, src))
}

// Signed division of %rdx:%rax, where %rdx is assumed to hold the sign
// extension of %rax.
func (m *Machine) divide(op string) error {
	divisor, err := m.read(op)
	if err != nil {
		return err
	}
	//
	dividend := m.registers["rax"]
	//
	switch {
	case divisor == 0:
		return ErrDivideByZero
	case divisor == -1 && dividend == math.MinInt64:
		return errors.New("quotient overflow")
	case m.registers["rdx"] != dividend>>63:
		return errors.New("high bits of dividend unsupported")
	}
	//
	m.registers["rax"] = dividend / divisor
	m.registers["rdx"] = dividend % divisor
	//
	return nil
}

func (m *Machine) condition(code string) bool {
	switch code {
	case "e":
		return m.lhs == m.rhs
	case "ne":
		return m.lhs != m.rhs
	case "l":
		return m.lhs < m.rhs
	case "le":
		return m.lhs <= m.rhs
	case "g":
		return m.lhs > m.rhs
	case "ge":
		return m.lhs >= m.rhs
	}
	//
	panic("unknown condition code " + code)
}

func (m *Machine) jump(label string) (int, error) {
	if target, ok := m.labels[label]; ok {
		return target, nil
	}
	//
	return 0, fmt.Errorf("unknown label %s", label)
}

func (m *Machine) push(val int64) {
	m.registers["rsp"] -= 8
	m.memory[m.registers["rsp"]] = val
}

func (m *Machine) pop() int64 {
	val := m.memory[m.registers["rsp"]]
	m.registers["rsp"] += 8
	//
	return val
}

// Read the value of an operand, which is either an immediate, a register or a
// memory location.
func (m *Machine) read(op string) (int64, error) {
	switch {
	case strings.HasPrefix(op, "$"):
		return parseImmediate(op[1:])
	case op == "%al":
		return m.registers["rax"] & 0xff, nil
	case strings.HasPrefix(op, "%"):
		return m.registers[op[1:]], nil
	}
	//
	addr, err := m.address(op)
	if err != nil {
		return 0, err
	} else if addr%8 != 0 {
		return 0, fmt.Errorf("misaligned access %s", op)
	}
	//
	return m.memory[addr], nil
}

func (m *Machine) write(op string, val int64) error {
	switch {
	case strings.HasPrefix(op, "$"):
		return fmt.Errorf("cannot write to immediate %s", op)
	case op == "%al":
		m.registers["rax"] = (m.registers["rax"] &^ 0xff) | (val & 0xff)
		return nil
	case strings.HasPrefix(op, "%"):
		m.registers[op[1:]] = val
		return nil
	}
	//
	addr, err := m.address(op)
	if err != nil {
		return err
	} else if addr%8 != 0 {
		return fmt.Errorf("misaligned access %s", op)
	}
	//
	m.memory[addr] = val
	//
	return nil
}

// Determine the address of a memory operand "disp(%reg)", where the
// displacement is optional.
func (m *Machine) address(op string) (int64, error) {
	var displacement int64
	//
	disp, rest, ok := strings.Cut(op, "(")
	if !ok || !strings.HasPrefix(rest, "%") || !strings.HasSuffix(rest, ")") {
		return 0, fmt.Errorf("invalid memory operand %s", op)
	}
	//
	if disp != "" {
		var err error
		//
		if displacement, err = strconv.ParseInt(disp, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid displacement %s", disp)
		}
	}
	//
	return m.registers[rest[1:len(rest)-1]] + displacement, nil
}

// Immediates may be given in either signed or unsigned form, where the latter
// wraps around.
func parseImmediate(text string) (int64, error) {
	if val, err := strconv.ParseInt(text, 10, 64); err == nil {
		return val, nil
	}
	//
	val, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid immediate $%s", text)
	}
	//
	return int64(val), nil
}
