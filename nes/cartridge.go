package nes

import (
	"os"

	"github.com/pkg/errors"
)

// iNES file layout: a 16 byte header, an optional 512 byte trainer, then
// the PRG-ROM banks followed by the CHR-ROM banks.
// Reference: https://www.nesdev.org/wiki/INES
const (
	inesHeaderSize = 16
	trainerSize    = 512

	// PRG banks are 16KB, CHR banks are 8KB.
	PrgBankSize = 0x4000
	ChrBankSize = 0x2000
)

var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Cartridge parsing failures. Both are recoverable by the embedding caller.
var (
	ErrInvalidHeader  = errors.New("invalid iNES header")
	ErrInvalidPayload = errors.New("invalid iNES payload")
)

// Nametable mirroring arrangement, from header flag 6. The CPU core carries
// it for the PPU's benefit but never consults it.
const (
	MirrorHorizontal byte = iota
	MirrorVertical
	MirrorFourScreen
)

// Cartridge is an immutable image of an iNES file. The bus shares read-only
// access to the bank data.
type Cartridge struct {
	PrgRom [][]byte // 16KB PRG-ROM banks, at least one
	ChrRom [][]byte // 8KB CHR-ROM banks

	PrgRamBanks    int
	MapperId       byte
	Mirroring      byte
	BatteryBacked  bool
	TrainerPresent bool
}

// LoadCartridge reads and parses an iNES file from disk.
func LoadCartridge(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %v", path)
	}

	return ParseINES(data)
}

// ParseINES parses a raw iNES image into a Cartridge.
func ParseINES(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSize {
		return nil, errors.Wrapf(ErrInvalidHeader, "image is %d bytes", len(data))
	}

	for i, m := range inesMagic {
		if data[i] != m {
			return nil, errors.Wrapf(ErrInvalidHeader, "bad magic % X", data[:4])
		}
	}

	prgBanks := int(data[4])
	chrBanks := int(data[5])
	flag6 := data[6]
	flag7 := data[7]

	if prgBanks < 1 {
		return nil, errors.Wrap(ErrInvalidHeader, "no PRG-ROM banks")
	}

	cart := &Cartridge{
		// The upper nibbles of flag 7 and flag 6 form the high and low
		// nibbles of the mapper id.
		MapperId:       (flag7 & 0xF0) | (flag6 >> 4),
		BatteryBacked:  flag6&0x02 > 0,
		TrainerPresent: flag6&0x04 > 0,
		PrgRamBanks:    int(data[8]),
	}

	// A header declaring zero PRG-RAM banks still gets one.
	if cart.PrgRamBanks == 0 {
		cart.PrgRamBanks = 1
	}

	// Four-screen mirroring overrides the horizontal/vertical bit.
	switch {
	case flag6&0x08 > 0:
		cart.Mirroring = MirrorFourScreen
	case flag6&0x01 > 0:
		cart.Mirroring = MirrorVertical
	default:
		cart.Mirroring = MirrorHorizontal
	}

	offset := inesHeaderSize
	if cart.TrainerPresent {
		if len(data) < offset+trainerSize {
			return nil, errors.Wrap(ErrInvalidPayload, "truncated trainer")
		}
		offset += trainerSize
	}

	cart.PrgRom = make([][]byte, 0, prgBanks)
	for i := 0; i < prgBanks; i++ {
		if len(data) < offset+PrgBankSize {
			return nil, errors.Wrapf(ErrInvalidPayload,
				"truncated PRG-ROM bank %d of %d", i+1, prgBanks)
		}

		bank := make([]byte, PrgBankSize)
		copy(bank, data[offset:offset+PrgBankSize])
		cart.PrgRom = append(cart.PrgRom, bank)

		offset += PrgBankSize
	}

	cart.ChrRom = make([][]byte, 0, chrBanks)
	for i := 0; i < chrBanks; i++ {
		if len(data) < offset+ChrBankSize {
			return nil, errors.Wrapf(ErrInvalidPayload,
				"truncated CHR-ROM bank %d of %d", i+1, chrBanks)
		}

		bank := make([]byte, ChrBankSize)
		copy(bank, data[offset:offset+ChrBankSize])
		cart.ChrRom = append(cart.ChrRom, bank)

		offset += ChrBankSize
	}

	return cart, nil
}

// Serialize emits a canonical iNES image for the cartridge. Parsing the
// result yields an equal Cartridge. Trainer payloads are not retained by
// the parser, so a set trainer flag serializes as 512 zero bytes.
func (cart *Cartridge) Serialize() []byte {
	size := inesHeaderSize +
		len(cart.PrgRom)*PrgBankSize +
		len(cart.ChrRom)*ChrBankSize
	if cart.TrainerPresent {
		size += trainerSize
	}

	data := make([]byte, 0, size)
	data = append(data, inesMagic...)
	data = append(data, byte(len(cart.PrgRom)), byte(len(cart.ChrRom)))

	var flag6 byte
	flag6 |= (cart.MapperId & 0x0F) << 4
	switch cart.Mirroring {
	case MirrorFourScreen:
		flag6 |= 0x08
	case MirrorVertical:
		flag6 |= 0x01
	}
	if cart.TrainerPresent {
		flag6 |= 0x04
	}
	if cart.BatteryBacked {
		flag6 |= 0x02
	}

	flag7 := cart.MapperId & 0xF0

	data = append(data, flag6, flag7, byte(cart.PrgRamBanks))

	// Bytes 9-15 are reserved.
	data = append(data, make([]byte, 7)...)

	if cart.TrainerPresent {
		data = append(data, make([]byte, trainerSize)...)
	}
	for _, bank := range cart.PrgRom {
		data = append(data, bank...)
	}
	for _, bank := range cart.ChrRom {
		data = append(data, bank...)
	}

	return data
}
