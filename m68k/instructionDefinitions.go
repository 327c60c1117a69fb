// instructionDefinitions.go

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

// Instruction Types
const (
	M68K_DATA_MOVEMENT = iota
	M68K_INTEGER_ARITH
	M68K_LOGICAL
	M68K_SHIFT_ROT
	M68K_BIT_MANIP
	M68K_BCD
	M68K_PROG_CONTROL
	M68K_SYSTEM_CONTROL
)

// Instruction Formats
const (
	UNIQUE_1_WORD_FMT = iota
	UNIQUE_2_WORD_FMT
	TRAP_FMT
	LINK_FMT
	ONEADDRREG_FMT
	MOVE_USP_FMT
	EA_1_WORD_FMT
	SIZE_EA_FMT
	IMM_SIZE_EA_FMT
	MOVE_FMT
	MOVEA_FMT
	LEA_CHK_FMT
	MOVEQ_FMT
	BRANCH_FMT
	DBCC_FMT
	SCC_FMT
	QUICK_SIZE_EA_FMT
	ARITH_REG_EA_FMT
	ARITH_ADDR_FMT
	MULDIV_FMT
	EXT_FMT
	SWAP_FMT
	EXG_FMT
	XREG_FMT
	SHIFT_REG_FMT
	SHIFT_MEM_FMT
	BIT_DYN_FMT
	BIT_IMM_FMT
	MOVEM_FMT
	MOVEP_FMT
)

// instructionsInit loads the characteristics of every recognised 68000
// instruction. Overlapping bit patterns are permitted; the matcher prefers
// the entry with the most significant mask.
func instructionsInit() {
	instructionSet["ABCD"] = instrChars{0xc100, 0xf1f0, 1, XREG_FMT, M68K_BCD}
	instructionSet["ADD"] = instrChars{0xd000, 0xf000, 1, ARITH_REG_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["ADDA"] = instrChars{0xd0c0, 0xf0c0, 1, ARITH_ADDR_FMT, M68K_INTEGER_ARITH}
	instructionSet["ADDI"] = instrChars{0x0600, 0xff00, 2, IMM_SIZE_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["ADDQ"] = instrChars{0x5000, 0xf100, 1, QUICK_SIZE_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["ADDX"] = instrChars{0xd100, 0xf130, 1, XREG_FMT, M68K_INTEGER_ARITH}
	instructionSet["AND"] = instrChars{0xc000, 0xf000, 1, ARITH_REG_EA_FMT, M68K_LOGICAL}
	instructionSet["ANDI"] = instrChars{0x0200, 0xff00, 2, IMM_SIZE_EA_FMT, M68K_LOGICAL}
	instructionSet["ANDICCR"] = instrChars{0x023c, 0xffff, 2, UNIQUE_2_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["ANDISR"] = instrChars{0x027c, 0xffff, 2, UNIQUE_2_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["ASL"] = instrChars{0xe100, 0xf118, 1, SHIFT_REG_FMT, M68K_SHIFT_ROT}
	instructionSet["ASL.W"] = instrChars{0xe1c0, 0xffc0, 1, SHIFT_MEM_FMT, M68K_SHIFT_ROT}
	instructionSet["ASR"] = instrChars{0xe000, 0xf118, 1, SHIFT_REG_FMT, M68K_SHIFT_ROT}
	instructionSet["ASR.W"] = instrChars{0xe0c0, 0xffc0, 1, SHIFT_MEM_FMT, M68K_SHIFT_ROT}
	instructionSet["BCC"] = instrChars{0x6000, 0xf000, 1, BRANCH_FMT, M68K_PROG_CONTROL}
	instructionSet["BCHG"] = instrChars{0x0140, 0xf1c0, 1, BIT_DYN_FMT, M68K_BIT_MANIP}
	instructionSet["BCHGI"] = instrChars{0x0840, 0xffc0, 2, BIT_IMM_FMT, M68K_BIT_MANIP}
	instructionSet["BCLR"] = instrChars{0x0180, 0xf1c0, 1, BIT_DYN_FMT, M68K_BIT_MANIP}
	instructionSet["BCLRI"] = instrChars{0x0880, 0xffc0, 2, BIT_IMM_FMT, M68K_BIT_MANIP}
	instructionSet["BRA"] = instrChars{0x6000, 0xff00, 1, BRANCH_FMT, M68K_PROG_CONTROL}
	instructionSet["BSET"] = instrChars{0x01c0, 0xf1c0, 1, BIT_DYN_FMT, M68K_BIT_MANIP}
	instructionSet["BSETI"] = instrChars{0x08c0, 0xffc0, 2, BIT_IMM_FMT, M68K_BIT_MANIP}
	instructionSet["BSR"] = instrChars{0x6100, 0xff00, 1, BRANCH_FMT, M68K_PROG_CONTROL}
	instructionSet["BTST"] = instrChars{0x0100, 0xf1c0, 1, BIT_DYN_FMT, M68K_BIT_MANIP}
	instructionSet["BTSTI"] = instrChars{0x0800, 0xffc0, 2, BIT_IMM_FMT, M68K_BIT_MANIP}
	instructionSet["CHK"] = instrChars{0x4180, 0xf1c0, 1, LEA_CHK_FMT, M68K_PROG_CONTROL}
	instructionSet["CLR"] = instrChars{0x4200, 0xff00, 1, SIZE_EA_FMT, M68K_DATA_MOVEMENT}
	instructionSet["CMP"] = instrChars{0xb000, 0xf000, 1, ARITH_REG_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["CMPA"] = instrChars{0xb0c0, 0xf0c0, 1, ARITH_ADDR_FMT, M68K_INTEGER_ARITH}
	instructionSet["CMPI"] = instrChars{0x0c00, 0xff00, 2, IMM_SIZE_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["CMPM"] = instrChars{0xb108, 0xf138, 1, XREG_FMT, M68K_INTEGER_ARITH}
	instructionSet["DBCC"] = instrChars{0x50c8, 0xf0f8, 2, DBCC_FMT, M68K_PROG_CONTROL}
	instructionSet["DIVS"] = instrChars{0x81c0, 0xf1c0, 1, MULDIV_FMT, M68K_INTEGER_ARITH}
	instructionSet["DIVU"] = instrChars{0x80c0, 0xf1c0, 1, MULDIV_FMT, M68K_INTEGER_ARITH}
	instructionSet["EOR"] = instrChars{0xb100, 0xf100, 1, ARITH_REG_EA_FMT, M68K_LOGICAL}
	instructionSet["EORI"] = instrChars{0x0a00, 0xff00, 2, IMM_SIZE_EA_FMT, M68K_LOGICAL}
	instructionSet["EORICCR"] = instrChars{0x0a3c, 0xffff, 2, UNIQUE_2_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["EORISR"] = instrChars{0x0a7c, 0xffff, 2, UNIQUE_2_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["EXG"] = instrChars{0xc100, 0xf100, 1, EXG_FMT, M68K_DATA_MOVEMENT}
	instructionSet["EXT"] = instrChars{0x4880, 0xffb8, 1, EXT_FMT, M68K_INTEGER_ARITH}
	instructionSet["ILLEGAL"] = instrChars{0x4afc, 0xffff, 1, UNIQUE_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["JMP"] = instrChars{0x4ec0, 0xffc0, 1, EA_1_WORD_FMT, M68K_PROG_CONTROL}
	instructionSet["JSR"] = instrChars{0x4e80, 0xffc0, 1, EA_1_WORD_FMT, M68K_PROG_CONTROL}
	instructionSet["LEA"] = instrChars{0x41c0, 0xf1c0, 1, LEA_CHK_FMT, M68K_DATA_MOVEMENT}
	instructionSet["LINK"] = instrChars{0x4e50, 0xfff8, 2, LINK_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["LSL"] = instrChars{0xe108, 0xf118, 1, SHIFT_REG_FMT, M68K_SHIFT_ROT}
	instructionSet["LSL.W"] = instrChars{0xe3c0, 0xffc0, 1, SHIFT_MEM_FMT, M68K_SHIFT_ROT}
	instructionSet["LSR"] = instrChars{0xe008, 0xf118, 1, SHIFT_REG_FMT, M68K_SHIFT_ROT}
	instructionSet["LSR.W"] = instrChars{0xe2c0, 0xffc0, 1, SHIFT_MEM_FMT, M68K_SHIFT_ROT}
	instructionSet["MOVE.B"] = instrChars{0x1000, 0xf000, 1, MOVE_FMT, M68K_DATA_MOVEMENT}
	instructionSet["MOVE.L"] = instrChars{0x2000, 0xf000, 1, MOVE_FMT, M68K_DATA_MOVEMENT}
	instructionSet["MOVE.W"] = instrChars{0x3000, 0xf000, 1, MOVE_FMT, M68K_DATA_MOVEMENT}
	instructionSet["MOVEA.L"] = instrChars{0x2040, 0xf1c0, 1, MOVEA_FMT, M68K_DATA_MOVEMENT}
	instructionSet["MOVEA.W"] = instrChars{0x3040, 0xf1c0, 1, MOVEA_FMT, M68K_DATA_MOVEMENT}
	instructionSet["MOVEFROMSR"] = instrChars{0x40c0, 0xffc0, 1, EA_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["MOVEM"] = instrChars{0x4880, 0xfb80, 2, MOVEM_FMT, M68K_DATA_MOVEMENT}
	instructionSet["MOVEP"] = instrChars{0x0108, 0xf138, 2, MOVEP_FMT, M68K_DATA_MOVEMENT}
	instructionSet["MOVEQ"] = instrChars{0x7000, 0xf100, 1, MOVEQ_FMT, M68K_DATA_MOVEMENT}
	instructionSet["MOVETOCCR"] = instrChars{0x44c0, 0xffc0, 1, EA_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["MOVETOSR"] = instrChars{0x46c0, 0xffc0, 1, EA_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["MOVEUSP"] = instrChars{0x4e60, 0xfff0, 1, MOVE_USP_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["MULS"] = instrChars{0xc1c0, 0xf1c0, 1, MULDIV_FMT, M68K_INTEGER_ARITH}
	instructionSet["MULU"] = instrChars{0xc0c0, 0xf1c0, 1, MULDIV_FMT, M68K_INTEGER_ARITH}
	instructionSet["NBCD"] = instrChars{0x4800, 0xffc0, 1, EA_1_WORD_FMT, M68K_BCD}
	instructionSet["NEG"] = instrChars{0x4400, 0xff00, 1, SIZE_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["NEGX"] = instrChars{0x4000, 0xff00, 1, SIZE_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["NOP"] = instrChars{0x4e71, 0xffff, 1, UNIQUE_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["NOT"] = instrChars{0x4600, 0xff00, 1, SIZE_EA_FMT, M68K_LOGICAL}
	instructionSet["OR"] = instrChars{0x8000, 0xf000, 1, ARITH_REG_EA_FMT, M68K_LOGICAL}
	instructionSet["ORI"] = instrChars{0x0000, 0xff00, 2, IMM_SIZE_EA_FMT, M68K_LOGICAL}
	instructionSet["ORICCR"] = instrChars{0x003c, 0xffff, 2, UNIQUE_2_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["ORISR"] = instrChars{0x007c, 0xffff, 2, UNIQUE_2_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["PEA"] = instrChars{0x4840, 0xffc0, 1, EA_1_WORD_FMT, M68K_DATA_MOVEMENT}
	instructionSet["RESET"] = instrChars{0x4e70, 0xffff, 1, UNIQUE_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["ROL"] = instrChars{0xe118, 0xf118, 1, SHIFT_REG_FMT, M68K_SHIFT_ROT}
	instructionSet["ROL.W"] = instrChars{0xe7c0, 0xffc0, 1, SHIFT_MEM_FMT, M68K_SHIFT_ROT}
	instructionSet["ROR"] = instrChars{0xe018, 0xf118, 1, SHIFT_REG_FMT, M68K_SHIFT_ROT}
	instructionSet["ROR.W"] = instrChars{0xe6c0, 0xffc0, 1, SHIFT_MEM_FMT, M68K_SHIFT_ROT}
	instructionSet["ROXL"] = instrChars{0xe110, 0xf118, 1, SHIFT_REG_FMT, M68K_SHIFT_ROT}
	instructionSet["ROXL.W"] = instrChars{0xe5c0, 0xffc0, 1, SHIFT_MEM_FMT, M68K_SHIFT_ROT}
	instructionSet["ROXR"] = instrChars{0xe010, 0xf118, 1, SHIFT_REG_FMT, M68K_SHIFT_ROT}
	instructionSet["ROXR.W"] = instrChars{0xe4c0, 0xffc0, 1, SHIFT_MEM_FMT, M68K_SHIFT_ROT}
	instructionSet["RTE"] = instrChars{0x4e73, 0xffff, 1, UNIQUE_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["RTR"] = instrChars{0x4e77, 0xffff, 1, UNIQUE_1_WORD_FMT, M68K_PROG_CONTROL}
	instructionSet["RTS"] = instrChars{0x4e75, 0xffff, 1, UNIQUE_1_WORD_FMT, M68K_PROG_CONTROL}
	instructionSet["SBCD"] = instrChars{0x8100, 0xf1f0, 1, XREG_FMT, M68K_BCD}
	instructionSet["SCC"] = instrChars{0x50c0, 0xf0c0, 1, SCC_FMT, M68K_PROG_CONTROL}
	instructionSet["STOP"] = instrChars{0x4e72, 0xffff, 2, UNIQUE_2_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["SUB"] = instrChars{0x9000, 0xf000, 1, ARITH_REG_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["SUBA"] = instrChars{0x90c0, 0xf0c0, 1, ARITH_ADDR_FMT, M68K_INTEGER_ARITH}
	instructionSet["SUBI"] = instrChars{0x0400, 0xff00, 2, IMM_SIZE_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["SUBQ"] = instrChars{0x5100, 0xf100, 1, QUICK_SIZE_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["SUBX"] = instrChars{0x9100, 0xf130, 1, XREG_FMT, M68K_INTEGER_ARITH}
	instructionSet["SWAP"] = instrChars{0x4840, 0xfff8, 1, SWAP_FMT, M68K_DATA_MOVEMENT}
	instructionSet["TAS"] = instrChars{0x4ac0, 0xffc0, 1, EA_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["TRAP"] = instrChars{0x4e40, 0xfff0, 1, TRAP_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["TRAPV"] = instrChars{0x4e76, 0xffff, 1, UNIQUE_1_WORD_FMT, M68K_SYSTEM_CONTROL}
	instructionSet["TST"] = instrChars{0x4a00, 0xff00, 1, SIZE_EA_FMT, M68K_INTEGER_ARITH}
	instructionSet["UNLK"] = instrChars{0x4e58, 0xfff8, 1, ONEADDRREG_FMT, M68K_SYSTEM_CONTROL}
}
