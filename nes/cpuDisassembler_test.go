package nes

import (
	"strings"
	"testing"
)

func TestTraceLineColumns(t *testing.T) {
	cpu, bus := newTestCpu(t)

	loadProgram(cpu, bus, 0x0200, 0x4C, 0xF5, 0xC5) // JMP $C5F5

	line, err := cpu.TraceLine()
	if err != nil {
		t.Fatalf("trace: %v", err)
	}

	// Fixed columns: 15 for pc/opcode/operands, 31 for the disassembly,
	// 33 for the register suffix.
	if len(line) != 79 {
		t.Fatalf("got %d columns, want 79: %q", len(line), line)
	}

	tests := []struct {
		got  string
		want string
	}{
		{line[:15], "0200  4C F5 C5 "},
		{strings.TrimRight(line[15:46], " "), "JMP $C5F5"},
		{line[46:], "A:00 X:00 Y:00 P:24 SP:FD CYC:  0"},
	}

	for _, test := range tests {
		if test.got != test.want {
			t.Errorf("got %q, want %q\n", test.got, test.want)
		}
	}
}

func TestTraceLineOperandWidths(t *testing.T) {
	cpu, bus := newTestCpu(t)

	// One operand byte.
	cpu.A = 0xAB
	loadProgram(cpu, bus, 0x0200, 0xA9, 0x10) // LDA #$10
	line, err := cpu.TraceLine()
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if line[:15] != "0200  A9 10    " {
		t.Errorf("got prefix %q\n", line[:15])
	}
	if !strings.HasPrefix(line[15:], "LDA #$10") {
		t.Errorf("got disassembly %q\n", line[15:46])
	}
	if !strings.Contains(line, "A:AB") {
		t.Errorf("register suffix missing accumulator: %q\n", line)
	}

	// No operand bytes.
	loadProgram(cpu, bus, 0x0200, 0xEA) // NOP
	line, err = cpu.TraceLine()
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if line[:15] != "0200  EA       " {
		t.Errorf("got prefix %q\n", line[:15])
	}
	if strings.TrimRight(line[15:46], " ") != "NOP" {
		t.Errorf("got disassembly %q\n", line[15:46])
	}
}

func TestTraceLineCycleColumn(t *testing.T) {
	cpu, bus := newTestCpu(t)
	loadProgram(cpu, bus, 0x0200, 0xEA)

	// The cycle column shows (cycles * 3) mod 341, right-justified in
	// three columns.
	tests := []struct {
		cycles uint64
		want   string
	}{
		{0, "CYC:  0"},
		{3, "CYC:  9"},
		{50, "CYC:150"},
		{114, "CYC:  1"}, // 342 wraps
	}

	for _, test := range tests {
		cpu.CycleCount = test.cycles

		line, err := cpu.TraceLine()
		if err != nil {
			t.Fatalf("trace: %v", err)
		}
		if !strings.HasSuffix(line, test.want) {
			t.Errorf("cycles %d: got %q, want suffix %q\n",
				test.cycles, line, test.want)
		}
	}
}

func TestTraceLineBranchTarget(t *testing.T) {
	cpu, bus := newTestCpu(t)

	// Branches disassemble to their resolved target, negative offsets
	// included.
	loadProgram(cpu, bus, 0x0210, 0xD0, 0xFE) // BNE -2

	line, err := cpu.TraceLine()
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if strings.TrimRight(line[15:46], " ") != "BNE $0210" {
		t.Errorf("got disassembly %q\n", line[15:46])
	}
}

func TestDisassembleRange(t *testing.T) {
	cpu, bus := newTestCpu(t)

	loadProgram(cpu, bus, 0x0200,
		0xA9, 0x01, // LDA #$01
		0x85, 0x10, // STA $10
		0xB1, 0x40, // LDA ($40),Y
		0xEA) // NOP

	lines, err := cpu.Disassemble(0x0200, 0x0206)
	if err != nil {
		t.Fatalf("disassemble: %v", err)
	}

	want := []string{
		"$0200: LDA #$01",
		"$0202: STA $10",
		"$0204: LDA ($40),Y",
		"$0206: NOP",
	}

	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("got %q, want %q\n", lines[i], want[i])
		}
	}
}
