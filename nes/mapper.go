package nes

import "github.com/pkg/errors"

// Mapper is the cartridge-side circuit between the bus and the ROM banks.
// It answers the initial bank configuration at power-on, translates CPU
// addresses to bank-relative reads, and consumes bank-switch writes.
type Mapper interface {
	InitialLowerBank(cart *Cartridge) uint16
	InitialUpperBank(cart *Cartridge) uint16
	ReadByte(bus *Bus, addr uint16) (byte, error)
	WriteByte(bus *Bus, addr uint16, value byte) error
}

// NewMapper selects a mapper implementation by the cartridge's mapper id.
func NewMapper(cart *Cartridge) (Mapper, error) {
	switch cart.MapperId {
	case 0:
		return NewMapper000(cart), nil
	}

	return nil, errors.Errorf("unsupported mapper %d", cart.MapperId)
}
