package nes

// AddressingMode selects how an instruction's operand bytes become an
// effective address.
type AddressingMode int

const (
	IMP AddressingMode = iota // Implied
	ACC                       // Accumulator
	IMM                       // Immediate
	REL                       // Relative
	ZP0                       // Zero Page
	ZPX                       // Zero Page, X
	ZPY                       // Zero Page, Y
	ABS                       // Absolute
	ABX                       // Absolute, X
	ABY                       // Absolute, Y
	IND                       // Indirect (JMP only, page-wrap bug included)
	IZX                       // Indexed Indirect: ($nn,X)
	IZY                       // Indirect Indexed: ($nn),Y
)

// AddrResolution is produced by addressing-mode decoding and lives for one
// instruction. Addr holds the sentinel 0 for implied/accumulator modes.
type AddrResolution struct {
	Addr        uint16
	Mode        AddressingMode
	PageCrossed bool
}

// A page is a 256-byte aligned region. Indexing "crosses a page" when the
// high byte of the final address differs from the base.
func pageOf(addr uint16) uint16 {
	return addr & 0xFF00
}
