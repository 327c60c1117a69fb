// instructions.go

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

package m68k

import (
	"math/bits"

	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/memory"
)

// the characteristics of each instruction
type instrChars struct {
	bits      dg.WordT // bit-pattern for opcode
	mask      dg.WordT // mask for unique bits in opcode
	instrLen  int      // minimum # of words in opcode and any following args
	instrFmt  int      // opcode layout
	instrType int      // class of opcode
}

// InstructionSet contains the map of all recognised instructions.
// N.B. Recognised, not implemented necessarily.
type InstructionSet map[string]instrChars

var instructionSet = make(InstructionSet)

const numPosOpcodes = 65536

var opCodeLookup [numPosOpcodes]string

func init() {
	instructionsInit()
	genAllPossOpcodes()
}

func genAllPossOpcodes() {
	for opcode := 0; opcode < numPosOpcodes; opcode++ {
		mnem, found := instructionMatch(dg.WordT(opcode))
		if found {
			opCodeLookup[opcode] = mnem
		} else {
			opCodeLookup[opcode] = ""
		}
	}
}

// instructionLookup returns the mnemonic for an opcode word via the
// precomputed table
func instructionLookup(opcode dg.WordT) (string, bool) {
	if opCodeLookup[opcode] != "" {
		return opCodeLookup[opcode], true
	}
	return "", false
}

// instructionMatch scans the instruction set for the opcode word. Several
// patterns may cover the same word; the one with the most mask bits set is
// the intended encoding, so the scan keeps the most specific valid match
// rather than the first.
func instructionMatch(opcode dg.WordT) (string, bool) {
	var bestMnem string
	bestBits := -1
	for mnem, insChar := range instructionSet {
		if (opcode & insChar.mask) != insChar.bits {
			continue
		}
		// there are some exceptions to the normal decoding...
		switch mnem {
		case "ADDX", "SUBX", "CMPM",
			"ASL", "ASR", "LSL", "LSR", "ROL", "ROR", "ROXL", "ROXR":
			if memory.GetWbits(opcode, 8, 2) == 3 {
				continue // size 0b11 belongs to another encoding
			}
		case "EXG":
			opMode := memory.GetWbits(opcode, 8, 5)
			if opMode != 0x08 && opMode != 0x09 && opMode != 0x11 {
				continue
			}
		}
		if n := bits.OnesCount16(uint16(insChar.mask)); n > bestBits {
			bestBits = n
			bestMnem = mnem
		}
	}
	if bestBits < 0 {
		return "", false
	}
	return bestMnem, true
}
