// x86emg project main.go

// Copyright (C) 2021  The x86emg Authors

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/logging"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/arch/x86/x86asm"

	"x86emg/m68k"
	"x86emg/x86"
)

const (
	// Displayable name of the scanner
	appName = "x86emg"
	// appVersion number
	appVersion = "v0.1.0"
	// appReleaseType - Alpha, Beta, Production etc.
	appReleaseType = "Prerelease"
)

var debugLogging = false

// flags
var (
	binFlag     = flag.String("bin", "", "binary `file` to scan")
	modelFlag   = flag.String("model", "8086", "CPU model: 8086, 80186, 80286 or 80386")
	chunkFlag   = flag.Int("chunk", 16, "number of bytes handed to the decoder per call")
	m68kFlag    = flag.Bool("m68k", false, "treat the input as big-endian MC68000 code")
	verboseFlag = flag.Bool("verbose", false, "dump every decoded instruction in full")
	xcheckFlag  = flag.Bool("xcheck", false, "cross-check decodes against the x/arch disassembler")
	debugFlag   = flag.Bool("debuglogs", false, "enable debug logging, dumped to logs/ on exit")
)

func main() {
	flag.Parse()
	log.Printf("INFO: %s %s (%s) starting...\n", appName, appVersion, appReleaseType)

	if *binFlag == "" {
		log.Println("ERROR: No binary file specified")
		flag.Usage()
		os.Exit(1)
	}
	code, err := os.ReadFile(*binFlag)
	if err != nil {
		log.Fatal("ERROR: Could not read binary file: ", err)
	}

	if *debugFlag {
		debugLogging = true
		x86.SetDebugLogging(true)
		defer logging.DebugLogsDump("logs/")
	}

	if *m68kFlag {
		scanM68k(code)
		return
	}

	var model x86.Model
	switch *modelFlag {
	case "8086":
		model = x86.Intel8086
	case "80186", "186":
		model = x86.Intel80186
	case "80286", "286":
		model = x86.Intel80286
	case "80386", "386":
		model = x86.Intel80386
	default:
		log.Fatalf("ERROR: Unknown CPU model %s", *modelFlag)
	}
	if *chunkFlag < 1 {
		log.Fatalf("ERROR: Chunk size must be at least 1, got %d", *chunkFlag)
	}

	scanX86(code, model)
}

// scanX86 walks the byte stream, feeding the decoder chunkFlag bytes at a
// time. A positive count fixes the length of the instruction just decoded;
// anything unread beyond it is offered again for the next one.
func scanX86(code []byte, model x86.Model) {
	d := x86.NewDecoder(model)
	var decoded, unknown int
	start, cursor := 0, 0
	for start < len(code) {
		limit := cursor + *chunkFlag
		if limit > len(code) {
			limit = len(code)
		}
		if cursor >= limit {
			fmt.Printf("%06x: %d byte(s) of trailing partial instruction\n",
				start, len(code)-start)
			break
		}
		count, instr := d.Decode(code[cursor:limit])
		if count <= 0 {
			cursor = limit
			continue
		}
		end := start + count
		if instr.Operation == x86.Undefined {
			fmt.Printf("%06x: %-20s db %#02x\n", start,
				fmt.Sprintf("% x", code[start:end]), code[start])
			unknown++
			if debugLogging {
				logging.DebugPrint(logging.DebugLog,
					"DEBUG: no decode for % x at %#x\n", code[start:end], start)
			}
		} else {
			fmt.Printf("%06x: %-20s %s\n", start,
				fmt.Sprintf("% x", code[start:end]), instructionToString(instr))
			decoded++
			if *xcheckFlag {
				crossCheck(code[start:end], start)
			}
			if *verboseFlag {
				spew.Dump(instr)
			}
		}
		start = end
		cursor = end
	}
	fmt.Printf("%d instructions decoded for the %v, %d unassigned\n",
		decoded, model, unknown)
}

// instructionToString renders one decoded instruction in a loose Intel-ish
// syntax, adequate for eyeballing a scan.
func instructionToString(instr x86.Instruction) string {
	var sb strings.Builder
	if instr.Lock {
		sb.WriteString("LOCK ")
	}
	switch instr.Repetition {
	case x86.RepE:
		sb.WriteString("REP ")
	case x86.RepNE:
		sb.WriteString("REPNE ")
	}
	sb.WriteString(instr.Operation.String())
	dst := operandToString(instr.Destination, instr)
	src := operandToString(instr.Source, instr)
	if dst != "" {
		sb.WriteString(" " + dst)
		if src != "" {
			sb.WriteString("," + src)
		}
	} else if src != "" {
		sb.WriteString(" " + src)
	}
	return sb.String()
}

func operandToString(s x86.Source, instr x86.Instruction) string {
	seg := ""
	if instr.SegmentOverride != x86.None {
		seg = instr.SegmentOverride.String() + ":"
	}
	switch s {
	case x86.None:
		return ""
	case x86.Immediate:
		return fmt.Sprintf("%#x", instr.Operand)
	case x86.DirectAddress:
		// implicit-address forms (moffs, port I/O) carry the address in
		// Operand rather than Displacement
		addr := uint16(instr.Displacement)
		if addr == 0 {
			addr = instr.Operand
		}
		return fmt.Sprintf("%s[%#x]", seg, addr)
	case x86.Indirect:
		if instr.SIB.Index != x86.None {
			return fmt.Sprintf("%s[%v+%v%+d]", seg, instr.SIB.Base, instr.SIB.Index,
				instr.Displacement)
		}
		return fmt.Sprintf("%s[%v%+d]", seg, instr.SIB.Base, instr.Displacement)
	}
	return s.String()
}

// crossCheck puts the same bytes through the x/arch 16-bit disassembler and
// reports its reading alongside. Mnemonic spellings differ, so only the
// instruction length is compared mechanically.
func crossCheck(raw []byte, offset int) {
	ref, err := x86asm.Decode(raw, 16)
	if err != nil {
		fmt.Printf("        xcheck: no reference decode at %#x (%v)\n", offset, err)
		return
	}
	if ref.Len != len(raw) {
		fmt.Printf("        xcheck: LENGTH MISMATCH at %#x: reference took %d of %d bytes\n",
			offset, ref.Len, len(raw))
	}
	fmt.Printf("        xcheck: %s\n", x86asm.IntelSyntax(ref, 0, nil))
}

// scanM68k disassembles the input as a big-endian 68000 word stream.
// Unrecognised words are listed as data and skipped singly.
func scanM68k(code []byte) {
	words := make([]dg.WordT, 0, len(code)/2)
	for i := 0; i+1 < len(code); i += 2 {
		words = append(words, dg.WordT(code[i])<<8|dg.WordT(code[i+1]))
	}
	var decoded, unknown int
	pc := 0
	for pc < len(words) {
		di, ok := m68k.InstructionDecode(words[pc:])
		if !ok {
			fmt.Printf("%06x: DC.W $%04X\n", pc*2, words[pc])
			unknown++
			pc++
			continue
		}
		fmt.Printf("%06x: %s\n", pc*2, di.Disassembly)
		decoded++
		if *verboseFlag {
			spew.Dump(di)
		}
		pc += di.InstrLength
	}
	fmt.Printf("%d instructions decoded, %d data words skipped\n", decoded, unknown)
}
