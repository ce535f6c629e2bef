package nes

import "github.com/pkg/errors"

// Mapper000 (NROM) is stateless bank routing. The lower bank window at
// $8000-$BFFF always shows the first PRG bank and the upper window at
// $C000-$FFFF always shows the last; on a one-bank cartridge both windows
// show bank 0. There is no bank switching.
type Mapper000 struct {
	prgRam []byte // $6000-$7FFF window
}

// PRG-RAM comes in 8KB banks.
const prgRamBankSize = 0x2000

func NewMapper000(cart *Cartridge) *Mapper000 {
	return &Mapper000{
		prgRam: make([]byte, cart.PrgRamBanks*prgRamBankSize),
	}
}

func (m *Mapper000) InitialLowerBank(cart *Cartridge) uint16 {
	return 0
}

func (m *Mapper000) InitialUpperBank(cart *Cartridge) uint16 {
	return uint16(len(cart.PrgRom) - 1)
}

func (m *Mapper000) ReadByte(bus *Bus, addr uint16) (byte, error) {
	switch {
	case addr >= 0xC000:
		return bus.Cart.PrgRom[bus.UpperBank][addr-0xC000], nil
	case addr >= 0x8000:
		return bus.Cart.PrgRom[bus.LowerBank][addr-0x8000], nil
	case addr >= 0x6000:
		return m.prgRam[int(addr-0x6000)%len(m.prgRam)], nil
	}

	return 0, errors.Errorf("NROM read outside cartridge space: $%04X", addr)
}

// No bank switching on NROM.
func (m *Mapper000) WriteByte(bus *Bus, addr uint16, value byte) error {
	return nil
}
