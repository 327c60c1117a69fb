// decoder.go

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

// Package m68k recognises and disassembles the MC68000 instruction set from
// big-endian word streams. Unlike a byte-serial instruction format, every
// 68000 instruction is a whole number of 16-bit words, so decoding works on
// words and reports its length in words.
package m68k

import (
	"fmt"

	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/memory"
)

// DecodedInstrT defines the internal decode of an opcode and any parameters.
type DecodedInstrT struct {
	Mnemonic    string
	InstrFmt    int
	InstrType   int
	InstrLength int // total length in words, extension words included
	Size        byte
	Mode, Reg   int
	Acs, Acd    int
	Disp8       int8
	Disp16      int16
	BitNum      int
	Vector      int
	ImmWord     dg.WordT
	ImmDword    dg.DwordT
	RegMask     dg.WordT
	Disassembly string
}

var conditions = [...]string{
	"T", "F", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

// wordReader steps through the supplied extension words, remembering if the
// decode ran off the end of what was provided.
type wordReader struct {
	words []dg.WordT
	pos   int
	short bool
}

func (r *wordReader) next() dg.WordT {
	if r.pos >= len(r.words) {
		r.short = true
		return 0
	}
	w := r.words[r.pos]
	r.pos++
	return w
}

func sizeFromBits(ss dg.WordT) byte {
	switch ss {
	case 0:
		return 'B'
	case 1:
		return 'W'
	default:
		return 'L'
	}
}

func sizeToString(size byte) string {
	if size == ' ' || size == 0 {
		return ""
	}
	return "." + string(size)
}

// eaToString renders one effective-address field, consuming any extension
// words it needs.
func eaToString(r *wordReader, mode, reg int, size byte) string {
	switch mode {
	case 0:
		return fmt.Sprintf("D%d", reg)
	case 1:
		return fmt.Sprintf("A%d", reg)
	case 2:
		return fmt.Sprintf("(A%d)", reg)
	case 3:
		return fmt.Sprintf("(A%d)+", reg)
	case 4:
		return fmt.Sprintf("-(A%d)", reg)
	case 5:
		return fmt.Sprintf("%d(A%d)", int16(r.next()), reg)
	case 6:
		return indexedToString(r.next(), fmt.Sprintf("A%d", reg))
	case 7:
		switch reg {
		case 0:
			return fmt.Sprintf("$%04X.W", r.next())
		case 1:
			hi := r.next()
			lo := r.next()
			return fmt.Sprintf("$%08X.L", dg.DwordT(hi)<<16|dg.DwordT(lo))
		case 2:
			return fmt.Sprintf("%d(PC)", int16(r.next()))
		case 3:
			return indexedToString(r.next(), "PC")
		case 4:
			if size == 'L' {
				hi := r.next()
				lo := r.next()
				return fmt.Sprintf("#$%08X", dg.DwordT(hi)<<16|dg.DwordT(lo))
			}
			return fmt.Sprintf("#$%04X", r.next())
		}
	}
	return "???"
}

// indexedToString renders a brief-format extension word: an 8-bit
// displacement plus a data or address index register.
func indexedToString(ext dg.WordT, base string) string {
	idxType := byte('D')
	if memory.TestWbit(ext, 0) {
		idxType = 'A'
	}
	idxReg := int(memory.GetWbits(ext, 1, 3))
	idxSize := byte('W')
	if memory.TestWbit(ext, 4) {
		idxSize = 'L'
	}
	return fmt.Sprintf("%d(%s,%c%d.%c)", int8(ext&0xff), base, idxType, idxReg, idxSize)
}

// InstructionLookup returns the mnemonic for an opcode word, if it has one.
func InstructionLookup(opcode dg.WordT) (string, bool) {
	return instructionLookup(opcode)
}

// InstructionDecode decodes the instruction starting at words[0], reading
// whatever extension words it requires from the rest of the slice.
//
// N.B. For the moment this function both decodes and disassembles the given
// instruction; for performance the two tasks could be separated.
func InstructionDecode(words []dg.WordT) (*DecodedInstrT, bool) {
	var di DecodedInstrT

	di.Disassembly = "; Unknown instruction"
	if len(words) == 0 {
		return &di, false
	}
	opcode := words[0]

	mnem, found := instructionLookup(opcode)
	if !found {
		return &di, false
	}
	di.Mnemonic = mnem
	di.Disassembly = mnem
	di.InstrFmt = instructionSet[mnem].instrFmt
	di.InstrType = instructionSet[mnem].instrType
	di.InstrLength = instructionSet[mnem].instrLen
	di.Size = ' '

	r := &wordReader{words: words, pos: 1}

	switch di.InstrFmt {

	case UNIQUE_1_WORD_FMT:
		// nothing more to do

	case UNIQUE_2_WORD_FMT: // eg. STOP, ANDISR, EORICCR
		di.ImmWord = r.next()
		di.Disassembly += fmt.Sprintf(" #$%04X", di.ImmWord)

	case TRAP_FMT:
		di.Vector = int(opcode & 0x000f)
		di.Disassembly += fmt.Sprintf(" #%d", di.Vector)

	case LINK_FMT:
		di.Reg = int(opcode & 0x0007)
		di.Disp16 = int16(r.next())
		di.Disassembly += fmt.Sprintf(" A%d,#%d", di.Reg, di.Disp16)

	case ONEADDRREG_FMT: // eg. UNLK
		di.Reg = int(opcode & 0x0007)
		di.Disassembly += fmt.Sprintf(" A%d", di.Reg)

	case MOVE_USP_FMT:
		di.Reg = int(opcode & 0x0007)
		if memory.TestWbit(opcode, 12) {
			di.Disassembly = fmt.Sprintf("MOVE USP,A%d", di.Reg)
		} else {
			di.Disassembly = fmt.Sprintf("MOVE A%d,USP", di.Reg)
		}

	case EA_1_WORD_FMT: // eg. JMP, JSR, PEA, TAS, MOVETOSR
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly += " " + eaToString(r, di.Mode, di.Reg, 'W')

	case SIZE_EA_FMT: // eg. CLR, NEG, NOT, TST
		di.Size = sizeFromBits(memory.GetWbits(opcode, 8, 2))
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly += sizeToString(di.Size) + " " + eaToString(r, di.Mode, di.Reg, di.Size)

	case IMM_SIZE_EA_FMT: // eg. ADDI, ANDI, CMPI
		di.Size = sizeFromBits(memory.GetWbits(opcode, 8, 2))
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		var imm string
		if di.Size == 'L' {
			hi := r.next()
			lo := r.next()
			di.ImmDword = dg.DwordT(hi)<<16 | dg.DwordT(lo)
			imm = fmt.Sprintf("#$%08X", di.ImmDword)
		} else {
			di.ImmWord = r.next()
			imm = fmt.Sprintf("#$%04X", di.ImmWord)
		}
		di.Disassembly += sizeToString(di.Size) + " " + imm + "," +
			eaToString(r, di.Mode, di.Reg, di.Size)

	case MOVE_FMT:
		di.Size = mnem[len(mnem)-1]
		srcMode := int(memory.GetWbits(opcode, 10, 3))
		srcReg := int(memory.GetWbits(opcode, 13, 3))
		dstReg := int(memory.GetWbits(opcode, 4, 3))
		dstMode := int(memory.GetWbits(opcode, 7, 3))
		src := eaToString(r, srcMode, srcReg, di.Size)
		dst := eaToString(r, dstMode, dstReg, di.Size)
		di.Mode = srcMode
		di.Reg = srcReg
		di.Disassembly += " " + src + "," + dst

	case MOVEA_FMT:
		di.Size = mnem[len(mnem)-1]
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Acd = int(memory.GetWbits(opcode, 4, 3))
		di.Disassembly += " " + eaToString(r, di.Mode, di.Reg, di.Size) +
			fmt.Sprintf(",A%d", di.Acd)

	case LEA_CHK_FMT:
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Acd = int(memory.GetWbits(opcode, 4, 3))
		regBank := byte('A')
		if mnem == "CHK" {
			regBank = 'D'
		}
		di.Disassembly += " " + eaToString(r, di.Mode, di.Reg, 'W') +
			fmt.Sprintf(",%c%d", regBank, di.Acd)

	case MOVEQ_FMT:
		di.Acd = int(memory.GetWbits(opcode, 4, 3))
		di.Disp8 = int8(opcode & 0x00ff)
		di.Disassembly += fmt.Sprintf(" #%d,D%d", di.Disp8, di.Acd)

	case BRANCH_FMT: // BRA, BSR and the conditional branches
		if mnem == "BCC" {
			cond := memory.GetWbits(opcode, 4, 4)
			di.Disassembly = "B" + conditions[cond]
		}
		di.Disp8 = int8(opcode & 0x00ff)
		if di.Disp8 == 0 {
			di.Disp16 = int16(r.next())
			di.Disassembly += fmt.Sprintf(" %d", di.Disp16)
		} else {
			di.Disassembly += fmt.Sprintf(" %d", di.Disp8)
		}

	case DBCC_FMT:
		cond := memory.GetWbits(opcode, 4, 4)
		di.Reg = int(opcode & 0x0007)
		di.Disp16 = int16(r.next())
		di.Disassembly = fmt.Sprintf("DB%s D%d,%d", conditions[cond], di.Reg, di.Disp16)

	case SCC_FMT:
		cond := memory.GetWbits(opcode, 4, 4)
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly = fmt.Sprintf("S%s %s", conditions[cond],
			eaToString(r, di.Mode, di.Reg, 'B'))

	case QUICK_SIZE_EA_FMT: // ADDQ, SUBQ
		data := int(memory.GetWbits(opcode, 4, 3))
		if data == 0 {
			data = 8
		}
		di.ImmWord = dg.WordT(data)
		di.Size = sizeFromBits(memory.GetWbits(opcode, 8, 2))
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly += sizeToString(di.Size) +
			fmt.Sprintf(" #%d,", data) + eaToString(r, di.Mode, di.Reg, di.Size)

	case ARITH_REG_EA_FMT: // ADD, SUB, AND, OR, CMP, EOR
		di.Acd = int(memory.GetWbits(opcode, 4, 3))
		opMode := memory.GetWbits(opcode, 7, 3)
		di.Size = sizeFromBits(opMode & 3)
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		ea := eaToString(r, di.Mode, di.Reg, di.Size)
		if opMode < 4 && mnem != "EOR" {
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" %s,D%d", ea, di.Acd)
		} else {
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" D%d,%s", di.Acd, ea)
		}

	case ARITH_ADDR_FMT: // ADDA, SUBA, CMPA
		di.Acd = int(memory.GetWbits(opcode, 4, 3))
		di.Size = 'L'
		if memory.GetWbits(opcode, 7, 3) == 3 {
			di.Size = 'W'
		}
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly += sizeToString(di.Size) + " " +
			eaToString(r, di.Mode, di.Reg, di.Size) + fmt.Sprintf(",A%d", di.Acd)

	case MULDIV_FMT:
		di.Acd = int(memory.GetWbits(opcode, 4, 3))
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly += " " + eaToString(r, di.Mode, di.Reg, 'W') +
			fmt.Sprintf(",D%d", di.Acd)

	case EXT_FMT:
		di.Size = 'W'
		if memory.TestWbit(opcode, 9) {
			di.Size = 'L'
		}
		di.Reg = int(opcode & 0x0007)
		di.Disassembly += sizeToString(di.Size) + fmt.Sprintf(" D%d", di.Reg)

	case SWAP_FMT:
		di.Reg = int(opcode & 0x0007)
		di.Disassembly += fmt.Sprintf(" D%d", di.Reg)

	case EXG_FMT:
		di.Acs = int(memory.GetWbits(opcode, 4, 3))
		di.Reg = int(opcode & 0x0007)
		switch memory.GetWbits(opcode, 8, 5) {
		case 0x08:
			di.Disassembly += fmt.Sprintf(" D%d,D%d", di.Acs, di.Reg)
		case 0x09:
			di.Disassembly += fmt.Sprintf(" A%d,A%d", di.Acs, di.Reg)
		default:
			di.Disassembly += fmt.Sprintf(" D%d,A%d", di.Acs, di.Reg)
		}

	case XREG_FMT: // ABCD, SBCD, ADDX, SUBX, CMPM
		di.Acd = int(memory.GetWbits(opcode, 4, 3))
		di.Acs = int(opcode & 0x0007)
		switch mnem {
		case "ADDX", "SUBX", "CMPM":
			di.Size = sizeFromBits(memory.GetWbits(opcode, 8, 2))
		default:
			di.Size = 'B'
		}
		switch {
		case mnem == "CMPM":
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" (A%d)+,(A%d)+", di.Acs, di.Acd)
		case memory.TestWbit(opcode, 12): // memory to memory, predecrement
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" -(A%d),-(A%d)", di.Acs, di.Acd)
		default:
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" D%d,D%d", di.Acs, di.Acd)
		}

	case SHIFT_REG_FMT:
		di.Size = sizeFromBits(memory.GetWbits(opcode, 8, 2))
		di.Reg = int(opcode & 0x0007)
		countOrReg := int(memory.GetWbits(opcode, 4, 3))
		if memory.TestWbit(opcode, 10) {
			di.Acs = countOrReg
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" D%d,D%d", di.Acs, di.Reg)
		} else {
			if countOrReg == 0 {
				countOrReg = 8
			}
			di.ImmWord = dg.WordT(countOrReg)
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" #%d,D%d", countOrReg, di.Reg)
		}

	case SHIFT_MEM_FMT:
		di.Size = 'W'
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly += " " + eaToString(r, di.Mode, di.Reg, di.Size)

	case BIT_DYN_FMT: // eg. BTST D2,<ea>
		di.Acs = int(memory.GetWbits(opcode, 4, 3))
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly += fmt.Sprintf(" D%d,", di.Acs) +
			eaToString(r, di.Mode, di.Reg, 'B')

	case BIT_IMM_FMT: // eg. BTST #4,<ea>
		di.BitNum = int(r.next() & 0x00ff)
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		di.Disassembly = mnem[:len(mnem)-1] +
			fmt.Sprintf(" #%d,", di.BitNum) + eaToString(r, di.Mode, di.Reg, 'B')

	case MOVEM_FMT:
		di.Size = 'W'
		if memory.TestWbit(opcode, 9) {
			di.Size = 'L'
		}
		di.RegMask = r.next()
		di.Mode = int(memory.GetWbits(opcode, 10, 3))
		di.Reg = int(memory.GetWbits(opcode, 13, 3))
		ea := eaToString(r, di.Mode, di.Reg, di.Size)
		if memory.TestWbit(opcode, 5) { // memory to registers
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" %s,#$%04X", ea, di.RegMask)
		} else {
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" #$%04X,%s", di.RegMask, ea)
		}

	case MOVEP_FMT:
		di.Acd = int(memory.GetWbits(opcode, 4, 3))
		di.Reg = int(opcode & 0x0007)
		opMode := memory.GetWbits(opcode, 7, 3)
		di.Size = 'W'
		if opMode == 5 || opMode == 7 {
			di.Size = 'L'
		}
		di.Disp16 = int16(r.next())
		if opMode < 6 {
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" %d(A%d),D%d", di.Disp16, di.Reg, di.Acd)
		} else {
			di.Disassembly += sizeToString(di.Size) +
				fmt.Sprintf(" D%d,%d(A%d)", di.Acd, di.Disp16, di.Reg)
		}

	default:
		di.Disassembly = "; Unhandled instruction format"
		return &di, false
	}

	if r.short {
		di.Disassembly = "; Truncated instruction"
		return &di, false
	}
	di.InstrLength = r.pos
	return &di, true
}
