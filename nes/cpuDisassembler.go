package nes

import (
	"fmt"
	"strings"
)

// TraceLine renders the instruction at the current program counter in the
// reference trace format: four-hex PC, the opcode and operand bytes, the
// disassembly padded to 31 columns, then the register file and the scaled
// cycle column, all upper-cased.
//
// The operand bytes are read through the bus exactly as execution will
// read them, so a trapped operand fetch surfaces here first.
func (cpu *Cpu6502) TraceLine() (string, error) {
	opcode, err := cpu.read(cpu.Pc)
	if err != nil {
		return "", err
	}

	inst := cpu.instLookup[opcode]

	operands, err := cpu.readOperands(cpu.Pc, inst)
	if err != nil {
		return "", err
	}

	operandCols := make([]string, 0, 2)
	for _, b := range operands {
		operandCols = append(operandCols, fmt.Sprintf("%02X", b))
	}

	line := fmt.Sprintf("%04X  %02X %-6s%-31sA:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%3d",
		cpu.Pc, opcode, strings.Join(operandCols, " "),
		cpu.disassembleInst(inst, operands, cpu.Pc),
		cpu.A, cpu.X, cpu.Y, cpu.Status, cpu.Sp,
		(cpu.CycleCount*3)%341)

	return strings.ToUpper(line), nil
}

// readOperands fetches the instruction's operand bytes (zero, one or two).
func (cpu *Cpu6502) readOperands(pc uint16, inst Instruction) ([]byte, error) {
	size := inst.Size
	if size < 1 {
		size = 1
	}

	operands := make([]byte, 0, 2)
	for i := uint16(1); i < size; i++ {
		b, err := cpu.read(pc + i)
		if err != nil {
			return nil, err
		}
		operands = append(operands, b)
	}

	return operands, nil
}

// disassembleInst renders one instruction's mnemonic and operand in the
// conventional 6502 syntax. pc is the instruction's own address, needed to
// resolve branch targets.
func (cpu *Cpu6502) disassembleInst(inst Instruction, operands []byte, pc uint16) string {
	var lo, hi byte
	if len(operands) > 0 {
		lo = operands[0]
	}
	if len(operands) > 1 {
		hi = operands[1]
	}
	word := (uint16(hi) << 8) | uint16(lo)

	switch inst.Mode {
	case ACC:
		return fmt.Sprintf("%s A", inst.Name)
	case IMM:
		return fmt.Sprintf("%s #$%02X", inst.Name, lo)
	case ZP0:
		return fmt.Sprintf("%s $%02X", inst.Name, lo)
	case ZPX:
		return fmt.Sprintf("%s $%02X,X", inst.Name, lo)
	case ZPY:
		return fmt.Sprintf("%s $%02X,Y", inst.Name, lo)
	case ABS:
		return fmt.Sprintf("%s $%04X", inst.Name, word)
	case ABX:
		return fmt.Sprintf("%s $%04X,X", inst.Name, word)
	case ABY:
		return fmt.Sprintf("%s $%04X,Y", inst.Name, word)
	case IND:
		return fmt.Sprintf("%s ($%04X)", inst.Name, word)
	case IZX:
		return fmt.Sprintf("%s ($%02X,X)", inst.Name, lo)
	case IZY:
		return fmt.Sprintf("%s ($%02X),Y", inst.Name, lo)
	case REL:
		// Branches show the resolved target.
		return fmt.Sprintf("%s $%04X", inst.Name, pc+2+uint16(int8(lo)))
	}

	return inst.Name
}

// Disassemble the region between the two addresses into human-readable CPU
// instructions, one line per instruction. Used by the machine monitor.
func (cpu *Cpu6502) Disassemble(startAddr, endAddr uint16) ([]string, error) {
	lines := make([]string, 0, 16)

	// This needs to be bigger than uint16, to determine when larger than endAddr.
	addr := uint32(startAddr)

	for addr <= uint32(endAddr) {
		lineAddr := uint16(addr)

		opcode, err := cpu.read(lineAddr)
		if err != nil {
			return lines, err
		}

		inst := cpu.instLookup[opcode]

		operands, err := cpu.readOperands(lineAddr, inst)
		if err != nil {
			return lines, err
		}

		lines = append(lines, fmt.Sprintf("$%04X: %s",
			lineAddr, cpu.disassembleInst(inst, operands, lineAddr)))

		size := inst.Size
		if size < 1 {
			size = 1
		}
		addr += uint32(size)
	}

	return lines, nil
}
