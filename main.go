package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/d-ricketts/nes-core/nes"
	"github.com/d-ricketts/nes-core/statsview"
)

// Command line flags
var (
	flagDebug   bool
	flagTrace   bool
	flagStats   bool
	flagNestest bool
	flagSteps   int
	flagPc      string
)

func main() {
	parseFlags()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] rom.nes\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cart, err := nes.LoadCartridge(flag.Arg(0))
	if err != nil {
		log.Fatalf("Unable to load cartridge:\n%v\n", err)
	}

	bus, err := nes.NewBus(cart)
	if err != nil {
		log.Fatalf("Unable to attach cartridge:\n%v\n", err)
	}

	cpu := nes.NewCpu6502(bus)

	if flagTrace {
		cpu.Logger = log.New(os.Stdout, "", 0)
	}

	if flagStats {
		statsview.Launch(os.Stdout)
	}

	if err := cpu.Reset(); err != nil {
		log.Fatalf("Reset failed:\n%v\n", err)
	}

	switch {
	case flagNestest:
		// The automated nestest entry point, bypassing the ROM's menu.
		cpu.Pc = 0xC000
	case flagPc != "":
		pc, err := strconv.ParseUint(strings.TrimPrefix(flagPc, "$"), 16, 16)
		if err != nil {
			log.Fatalf("Bad program counter %q\n", flagPc)
		}
		cpu.Pc = uint16(pc)
	}

	if flagDebug {
		mon := nes.NewMonitor(cpu, bus)
		if err := mon.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	run(cpu, bus)
}

func run(cpu *nes.Cpu6502, bus *nes.Bus) {
	defer nes.TimeTrack(time.Now())

	for i := 0; flagSteps == 0 || i < flagSteps; i++ {
		if err := cpu.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "halted: %v\n", err)
			fmt.Fprintf(os.Stderr, "PC:%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
				cpu.Pc, cpu.A, cpu.X, cpu.Y, cpu.Status, cpu.Sp, cpu.CycleCount)
			break
		}
	}

	if flagNestest {
		checkNestestResult(bus)
	}
}

// nestest leaves its failure codes in zero page.
func checkNestestResult(bus *nes.Bus) {
	res2, _ := bus.ReadByte(0x0002)
	res3, _ := bus.ReadByte(0x0003)

	if res2 != 0x00 || res3 != 0x00 {
		fmt.Fprintf(os.Stderr, "nestest errors: $02=%02X $03=%02X\n", res2, res3)
		os.Exit(1)
	}

	fmt.Println("nestest passed")
}

func parseFlags() {
	flag.BoolVar(&flagDebug, "d", false, "enter the interactive machine monitor")
	flag.BoolVar(&flagTrace, "t", false, "print a trace line per instruction")
	flag.BoolVar(&flagStats, "stats", false, "launch the runtime statistics server")
	flag.BoolVar(&flagNestest, "nestest", false, "start at $C000 and report the nestest result bytes")
	flag.IntVar(&flagSteps, "n", 0, "stop after this many instructions (0 = run until halt)")
	flag.StringVar(&flagPc, "pc", "", "override the program counter (hex)")

	flag.Parse()
}
