package nes

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Monitor is an interactive machine monitor driven from a raw terminal.
// It owns the CPU for the duration of Run: step the interpreter, inspect
// registers and memory, disassemble around the program counter, or run
// until a target address.
type Monitor struct {
	cpu *Cpu6502
	bus *Bus
}

func NewMonitor(cpu *Cpu6502, bus *Bus) *Monitor {
	return &Monitor{cpu: cpu, bus: bus}
}

// Limit for the 'g' command so a wrong target cannot wedge the terminal in
// raw mode forever.
const monitorRunLimit = 10_000_000

// Run puts stdin into raw mode and enters the command loop. The previous
// terminal state is restored on exit.
func (m *Monitor) Run() error {
	fd := int(os.Stdin.Fd())

	// Raw mode disables OS-level echo and line buffering; the terminal
	// wrapper below handles both itself.
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("monitor: unable to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "> ")

	fmt.Fprintln(t, "machine monitor - 'h' lists commands, 'q' quits")

	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		if args[0] == "q" || args[0] == "quit" {
			return nil
		}

		m.exec(t, args)
	}
}

func (m *Monitor) exec(t *term.Terminal, args []string) {
	switch args[0] {
	case "h", "help":
		fmt.Fprint(t, ""+
			"s [n]       step n instructions (default 1), echoing the trace\n"+
			"r           dump registers\n"+
			"m addr [n]  dump n bytes of memory (default 64)\n"+
			"d [addr]    disassemble from addr (default pc)\n"+
			"g addr      run until pc reaches addr\n"+
			"reset       reset the CPU\n"+
			"q           quit\n")

	case "s", "step":
		n := 1
		if len(args) > 1 {
			if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
				n = v
			}
		}
		for i := 0; i < n; i++ {
			if !m.stepOnce(t) {
				break
			}
		}

	case "r", "regs":
		m.printRegisters(t)

	case "m", "mem":
		if len(args) < 2 {
			fmt.Fprintln(t, "usage: m addr [n]")
			return
		}
		addr, err := parseAddr(args[1])
		if err != nil {
			fmt.Fprintln(t, err)
			return
		}
		n := 64
		if len(args) > 2 {
			if v, err := strconv.Atoi(args[2]); err == nil && v > 0 {
				n = v
			}
		}
		m.dumpMemory(t, addr, n)

	case "d", "dis":
		addr := m.cpu.Pc
		if len(args) > 1 {
			a, err := parseAddr(args[1])
			if err != nil {
				fmt.Fprintln(t, err)
				return
			}
			addr = a
		}
		lines, err := m.cpu.Disassemble(addr, addr+0x1F)
		for _, l := range lines {
			fmt.Fprintln(t, l)
		}
		if err != nil {
			fmt.Fprintln(t, err)
		}

	case "g", "go":
		if len(args) < 2 {
			fmt.Fprintln(t, "usage: g addr")
			return
		}
		target, err := parseAddr(args[1])
		if err != nil {
			fmt.Fprintln(t, err)
			return
		}
		for i := 0; i < monitorRunLimit && m.cpu.Pc != target; i++ {
			if err := m.cpu.Step(); err != nil {
				fmt.Fprintln(t, "halted:", err)
				break
			}
		}
		m.printRegisters(t)

	case "reset":
		if err := m.cpu.Reset(); err != nil {
			fmt.Fprintln(t, "reset failed:", err)
		}

	default:
		fmt.Fprintf(t, "unknown command %q - 'h' lists commands\n", args[0])
	}
}

// stepOnce echoes the trace line for the next instruction and executes it,
// reporting false once the interpreter halts.
func (m *Monitor) stepOnce(t *term.Terminal) bool {
	line, err := m.cpu.TraceLine()
	if err != nil {
		fmt.Fprintln(t, "halted:", err)
		return false
	}
	fmt.Fprintln(t, line)

	if err := m.cpu.Step(); err != nil {
		fmt.Fprintln(t, "halted:", err)
		return false
	}

	return true
}

func (m *Monitor) printRegisters(t *term.Terminal) {
	fmt.Fprintf(t, "PC: $%04X  A: $%02X  X: $%02X  Y: $%02X  SP: $%02X\n",
		m.cpu.Pc, m.cpu.A, m.cpu.X, m.cpu.Y, m.cpu.Sp)
	fmt.Fprintf(t, "Flags: %08b (NV-BDIZC)\n", m.cpu.Status)
	fmt.Fprintf(t, "Cycle Count: %d\n", m.cpu.CycleCount)
}

// dumpMemory prints 16 bytes per line. Reads go through the bus, so a
// trapped region ends the dump.
func (m *Monitor) dumpMemory(t *term.Terminal, addr uint16, n int) {
	for row := 0; row < n; row += 16 {
		fmt.Fprintf(t, "$%04X:", addr+uint16(row))

		for col := 0; col < 16 && row+col < n; col++ {
			b, err := m.bus.ReadByte(addr + uint16(row+col))
			if err != nil {
				fmt.Fprintf(t, "\n%v\n", err)
				return
			}
			fmt.Fprintf(t, " %02x", b)
		}

		fmt.Fprintln(t)
	}
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "$"), "0x")

	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q", s)
	}

	return uint16(v), nil
}
