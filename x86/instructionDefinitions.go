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

package x86

// Instruction Formats - what the leading opcode byte tells us still needs
// to be consumed before the instruction is complete.
const (
	UNDEF_FMT        = iota // no assignment for this byte on this model
	COMPLETE_FMT            // instruction complete with this byte alone
	REG_DATA_FMT            // register destination plus trailing immediate
	REG_ADDR_FMT            // register destination plus trailing direct address
	ADDR_REG_FMT            // trailing direct address destination, register source
	MEM_REG_REG_FMT         // a ModRM byte follows
	JUMP_FMT                // one signed displacement byte follows
	FAR_FMT                 // four bytes of far pointer follow
	DISP16_OP8_FMT          // two displacement bytes then one operand byte (ENTER)
	SHIFT_ONE_FMT           // ModRM follows, implicit immediate count of 1
	SHIFT_CL_FMT            // ModRM follows, count in CL
	SEG_OVERRIDE_FMT        // segment override prefix
	LOCK_PREFIX_FMT         // bus-lock prefix
	REP_PREFIX_FMT          // repetition prefix
	PAGE_F_FMT              // 0x0F escape to the second opcode page
)

// the characteristics of each opcode byte: the initial decode action and
// everything knowable before any ModRM or trailing bytes arrive
type instrChars struct {
	instrFmt    int
	op          Operation
	src, dst    Source
	opSize      Size
	operandSize int // trailing immediate/address byte count
	modFmt      int // group-decode table applied to the ModRM reg field
	rep         Repetition
}

// opcodePage holds the dispatch tables for one processor model: the base
// 256-byte page and the 0x0F-prefixed page (empty below the 80286).
type opcodePage struct {
	base  [256]instrChars
	pageF [256]instrChars
}

// one fully-built page per model, populated at package init so that model
// availability is settled before any byte is examined
var opcodePages [numModels]opcodePage

func init() {
	for m := Intel8086; m < numModels; m++ {
		instructionsInit(&opcodePages[m], m)
	}
}

// register selected by a 3-bit field, by operand width; row 0 covers the
// width-less forms (ESC), which carry no register operand
var regTable = [3][8]Source{
	{},
	{AX, CX, DX, BX, AH, CH, DH, BH},
	{AX, CX, DX, BX, SP, BP, SI, DI},
}

// the eight fixed 16-bit addressing combinations selected by the ModRM rm
// field; rm == 6 with mod == 0 is handled as a direct address instead
var rmTable = [8]ScaleIndexBase{
	{Base: BX, Index: SI},
	{Base: BX, Index: DI},
	{Base: BP, Index: SI},
	{Base: BP, Index: DI},
	{Base: SI},
	{Base: DI},
	{Base: BP},
	{Base: BX},
}

/* table-entry constructors */

func complete(op Operation, src, dst Source, size Size) instrChars {
	return instrChars{instrFmt: COMPLETE_FMT, op: op, src: src, dst: dst, opSize: size}
}

// register destination plus an immediate of the same width
func regData(op Operation, dst Source, size Size) instrChars {
	return instrChars{instrFmt: REG_DATA_FMT, op: op, src: Immediate, dst: dst,
		opSize: size, operandSize: int(size)}
}

func regAddr(op Operation, dst Source, opSize, addrSize Size) instrChars {
	return instrChars{instrFmt: REG_ADDR_FMT, op: op, src: DirectAddress, dst: dst,
		opSize: opSize, operandSize: int(addrSize)}
}

func addrReg(op Operation, src Source, opSize, addrSize Size) instrChars {
	return instrChars{instrFmt: ADDR_REG_FMT, op: op, src: src, dst: DirectAddress,
		opSize: opSize, operandSize: int(addrSize)}
}

func memRegReg(op Operation, modFmt int, size Size) instrChars {
	return instrChars{instrFmt: MEM_REG_REG_FMT, op: op, modFmt: modFmt, opSize: size}
}

func jump(op Operation) instrChars {
	return instrChars{instrFmt: JUMP_FMT, op: op}
}

func far(op Operation) instrChars {
	return instrChars{instrFmt: FAR_FMT, op: op, operandSize: 4}
}

// partialBlock lays down one arithmetic/logic family: the four mem/reg
// ModRM forms plus the two accumulator-immediate forms, derived from the
// base opcode value.
func partialBlock(p *opcodePage, base int, op Operation) {
	p.base[base+0] = memRegReg(op, MRFMT_MEMREG_REG, SizeByte)
	p.base[base+1] = memRegReg(op, MRFMT_MEMREG_REG, SizeWord)
	p.base[base+2] = memRegReg(op, MRFMT_REG_MEMREG, SizeByte)
	p.base[base+3] = memRegReg(op, MRFMT_REG_MEMREG, SizeWord)
	p.base[base+4] = regData(op, AX, SizeByte)
	p.base[base+5] = regData(op, AX, SizeWord)
}

// registerBlock lays down one single-byte-per-register family (INC, DEC,
// PUSH, POP), selecting the register arithmetically from the low three
// bits of the opcode.
func registerBlock(p *opcodePage, base int, op Operation) {
	for r := 0; r < 8; r++ {
		reg := regTable[SizeWord][r]
		p.base[base+r] = complete(op, reg, reg, SizeWord)
	}
}

// conditional jump operations for opcodes 0x70..0x7F, in opcode order
var jumpOps = [16]Operation{
	JO, JNO, JB, JNB, JE, JNE, JBE, JNBE,
	JS, JNS, JP, JNP, JL, JNL, JLE, JNLE,
}

// instructionsInit builds the dispatch page for one model. Entries left at
// their zero value decode as Undefined, which is how both unassigned bytes
// and too-new-for-this-model bytes are rejected.
func instructionsInit(p *opcodePage, model Model) {

	partialBlock(p, 0x00, ADD)
	p.base[0x06] = complete(PUSH, ES, None, SizeWord)
	p.base[0x07] = complete(POP, None, ES, SizeWord)

	partialBlock(p, 0x08, OR)
	p.base[0x0e] = complete(PUSH, CS, None, SizeWord)
	// 0x0f: POP CS on the 8086/80186 is not recognised; from the 80286 it
	// escapes to the second opcode page.
	if model >= Intel80286 {
		p.base[0x0f] = instrChars{instrFmt: PAGE_F_FMT}
	}

	partialBlock(p, 0x10, ADC)
	p.base[0x16] = complete(PUSH, SS, None, SizeWord)
	p.base[0x17] = complete(POP, None, SS, SizeWord)

	partialBlock(p, 0x18, SBB)
	p.base[0x1e] = complete(PUSH, DS, None, SizeWord)
	p.base[0x1f] = complete(POP, None, DS, SizeWord)

	partialBlock(p, 0x20, AND)
	p.base[0x26] = instrChars{instrFmt: SEG_OVERRIDE_FMT, src: ES}
	p.base[0x27] = complete(DAA, AX, AX, SizeByte)

	partialBlock(p, 0x28, SUB)
	p.base[0x2e] = instrChars{instrFmt: SEG_OVERRIDE_FMT, src: CS}
	p.base[0x2f] = complete(DAS, AX, AX, SizeByte)

	partialBlock(p, 0x30, XOR)
	p.base[0x36] = instrChars{instrFmt: SEG_OVERRIDE_FMT, src: SS}
	p.base[0x37] = complete(AAA, AX, AX, SizeWord)

	partialBlock(p, 0x38, CMP)
	p.base[0x3e] = instrChars{instrFmt: SEG_OVERRIDE_FMT, src: DS}
	p.base[0x3f] = complete(AAS, AX, AX, SizeWord)

	registerBlock(p, 0x40, INC)
	registerBlock(p, 0x48, DEC)
	registerBlock(p, 0x50, PUSH)
	registerBlock(p, 0x58, POP)

	if model >= Intel80186 {
		p.base[0x60] = complete(PUSHA, None, None, SizeWord)
		p.base[0x61] = complete(POPA, None, None, SizeWord)
		p.base[0x62] = memRegReg(BOUND, MRFMT_REG_MEMREG, SizeWord)
		p.base[0x6c] = complete(INS, None, None, SizeByte)
		p.base[0x6d] = complete(INS, None, None, SizeWord)
		p.base[0x6e] = complete(OUTS, None, None, SizeByte)
		p.base[0x6f] = complete(OUTS, None, None, SizeWord)
	}
	if model >= Intel80286 {
		p.base[0x63] = memRegReg(ARPL, MRFMT_MEMREG_REG, SizeWord)
	}
	// 0x64..0x6b: not assigned on any supported model

	for i, op := range jumpOps {
		p.base[0x70+i] = jump(op)
	}

	p.base[0x80] = memRegReg(Undefined, MRFMT_ADD_TO_CMP, SizeByte)
	p.base[0x81] = memRegReg(Undefined, MRFMT_ADD_TO_CMP, SizeWord)
	p.base[0x82] = memRegReg(Undefined, MRFMT_ADC_TO_CMP, SizeByte)
	p.base[0x83] = memRegReg(Undefined, MRFMT_ADC_TO_CMP, SizeWord)

	p.base[0x84] = memRegReg(TEST, MRFMT_MEMREG_REG, SizeByte)
	p.base[0x85] = memRegReg(TEST, MRFMT_MEMREG_REG, SizeWord)
	p.base[0x86] = memRegReg(XCHG, MRFMT_REG_MEMREG, SizeByte)
	p.base[0x87] = memRegReg(XCHG, MRFMT_REG_MEMREG, SizeWord)
	p.base[0x88] = memRegReg(MOV, MRFMT_MEMREG_REG, SizeByte)
	p.base[0x89] = memRegReg(MOV, MRFMT_MEMREG_REG, SizeWord)
	p.base[0x8a] = memRegReg(MOV, MRFMT_REG_MEMREG, SizeByte)
	p.base[0x8b] = memRegReg(MOV, MRFMT_REG_MEMREG, SizeWord)
	// 0x8c: not used
	p.base[0x8d] = memRegReg(LEA, MRFMT_REG_MEMREG, SizeWord)
	p.base[0x8e] = memRegReg(MOV, MRFMT_SEGREG, SizeWord)
	p.base[0x8f] = memRegReg(POP, MRFMT_POP, SizeWord)

	p.base[0x90] = complete(NOP, None, None, SizeImplied)
	for r := 1; r < 8; r++ {
		p.base[0x90+r] = complete(XCHG, AX, regTable[SizeWord][r], SizeWord)
	}

	p.base[0x98] = complete(CBW, AX, AH, SizeByte)
	p.base[0x99] = complete(CWD, AX, DX, SizeWord)
	p.base[0x9a] = far(CALLF)
	p.base[0x9b] = complete(WAIT, None, None, SizeImplied)
	p.base[0x9c] = complete(PUSHF, None, None, SizeWord)
	p.base[0x9d] = complete(POPF, None, None, SizeWord)
	p.base[0x9e] = complete(SAHF, None, None, SizeByte)
	p.base[0x9f] = complete(LAHF, None, None, SizeByte)

	p.base[0xa0] = regAddr(MOV, AX, SizeByte, SizeByte)
	p.base[0xa1] = regAddr(MOV, AX, SizeWord, SizeWord)
	p.base[0xa2] = addrReg(MOV, AX, SizeByte, SizeByte)
	p.base[0xa3] = addrReg(MOV, AX, SizeWord, SizeWord)

	p.base[0xa4] = complete(MOVS, None, None, SizeByte)
	p.base[0xa5] = complete(MOVS, None, None, SizeWord)
	p.base[0xa6] = complete(CMPS, None, None, SizeByte)
	p.base[0xa7] = complete(CMPS, None, None, SizeWord)
	p.base[0xa8] = regData(TEST, AX, SizeByte)
	p.base[0xa9] = regData(TEST, AX, SizeWord)
	p.base[0xaa] = complete(STOS, None, None, SizeByte)
	p.base[0xab] = complete(STOS, None, None, SizeWord)
	p.base[0xac] = complete(LODS, None, None, SizeByte)
	p.base[0xad] = complete(LODS, None, None, SizeWord)
	p.base[0xae] = complete(SCAS, None, None, SizeByte)
	p.base[0xaf] = complete(SCAS, None, None, SizeWord)

	for r := 0; r < 8; r++ {
		p.base[0xb0+r] = regData(MOV, regTable[SizeByte][r], SizeByte)
		p.base[0xb8+r] = regData(MOV, regTable[SizeWord][r], SizeWord)
	}

	// 0xc0, 0xc1: not assigned
	p.base[0xc2] = regData(RETN, None, SizeWord)
	p.base[0xc3] = complete(RETN, None, None, SizeWord)
	p.base[0xc4] = memRegReg(LES, MRFMT_REG_MEMREG, SizeWord)
	p.base[0xc5] = memRegReg(LDS, MRFMT_REG_MEMREG, SizeWord)
	p.base[0xc6] = memRegReg(MOV, MRFMT_MOV, SizeByte)
	p.base[0xc7] = memRegReg(MOV, MRFMT_MOV, SizeWord)

	if model >= Intel80186 {
		p.base[0xc8] = instrChars{instrFmt: DISP16_OP8_FMT, op: ENTER, operandSize: 1}
		p.base[0xc9] = complete(LEAVE, None, None, SizeImplied)
	}

	p.base[0xca] = regData(RETF, None, SizeWord)
	p.base[0xcb] = complete(RETF, None, None, SizeDWord)

	p.base[0xcc] = complete(INT3, None, None, SizeImplied)
	p.base[0xcd] = regData(INT, None, SizeByte)
	p.base[0xce] = complete(INTO, None, None, SizeImplied)
	p.base[0xcf] = complete(IRET, None, None, SizeImplied)

	p.base[0xd0] = instrChars{instrFmt: SHIFT_ONE_FMT, opSize: SizeByte}
	p.base[0xd1] = instrChars{instrFmt: SHIFT_ONE_FMT, opSize: SizeWord}
	p.base[0xd2] = instrChars{instrFmt: SHIFT_CL_FMT, opSize: SizeByte}
	p.base[0xd3] = instrChars{instrFmt: SHIFT_CL_FMT, opSize: SizeWord}
	p.base[0xd4] = regData(AAM, AX, SizeByte)
	p.base[0xd5] = regData(AAD, AX, SizeByte)
	// 0xd6: not assigned
	p.base[0xd7] = complete(XLAT, None, None, SizeByte)

	for b := 0xd8; b <= 0xdf; b++ {
		p.base[b] = memRegReg(ESC, MRFMT_MEMREG_REG, SizeImplied)
	}

	p.base[0xe0] = jump(LOOPNE)
	p.base[0xe1] = jump(LOOPE)
	p.base[0xe2] = jump(LOOP)
	p.base[0xe3] = jump(JPCX)

	p.base[0xe4] = regAddr(IN, AX, SizeByte, SizeByte)
	p.base[0xe5] = regAddr(IN, AX, SizeWord, SizeByte)
	p.base[0xe6] = addrReg(OUT, AX, SizeByte, SizeByte)
	p.base[0xe7] = addrReg(OUT, AX, SizeWord, SizeByte)

	p.base[0xe8] = regData(CALLD, None, SizeWord)
	p.base[0xe9] = regData(JMPN, None, SizeWord)
	p.base[0xea] = far(JMPF)
	p.base[0xeb] = jump(JMPN)

	p.base[0xec] = complete(IN, DX, AX, SizeByte)
	p.base[0xed] = complete(IN, DX, AX, SizeByte)
	p.base[0xee] = complete(OUT, AX, DX, SizeByte)
	p.base[0xef] = complete(OUT, AX, DX, SizeWord)

	p.base[0xf0] = instrChars{instrFmt: LOCK_PREFIX_FMT}
	// 0xf1: not assigned
	p.base[0xf2] = instrChars{instrFmt: REP_PREFIX_FMT, rep: RepNE}
	p.base[0xf3] = instrChars{instrFmt: REP_PREFIX_FMT, rep: RepE}

	p.base[0xf4] = complete(HLT, None, None, SizeByte)
	p.base[0xf5] = complete(CMC, None, None, SizeByte)
	p.base[0xf6] = memRegReg(Undefined, MRFMT_TEST_TO_IDIV, SizeByte)
	p.base[0xf7] = memRegReg(Undefined, MRFMT_TEST_TO_IDIV, SizeWord)

	p.base[0xf8] = complete(CLC, None, None, SizeByte)
	p.base[0xf9] = complete(STC, None, None, SizeByte)
	p.base[0xfa] = complete(CLI, None, None, SizeByte)
	p.base[0xfb] = complete(STI, None, None, SizeByte)
	p.base[0xfc] = complete(CLD, None, None, SizeByte)
	p.base[0xfd] = complete(STD, None, None, SizeByte)

	p.base[0xfe] = memRegReg(Undefined, MRFMT_INC_DEC, SizeByte)
	p.base[0xff] = memRegReg(Undefined, MRFMT_INC_TO_PUSH, SizeByte)

	// the 0x0F page exists from the 80286 onward
	if model >= Intel80286 {
		p.pageF[0x00] = memRegReg(Undefined, MRFMT_SLDT_TO_VERW, SizeWord)
		p.pageF[0x01] = memRegReg(Undefined, MRFMT_SGDT_TO_LMSW, SizeWord)
		p.pageF[0x02] = memRegReg(LAR, MRFMT_REG_MEMREG, SizeWord)
		p.pageF[0x03] = memRegReg(LSL, MRFMT_REG_MEMREG, SizeWord)
		if model == Intel80286 {
			p.pageF[0x05] = complete(LOADALL, None, None, SizeImplied)
		}
		p.pageF[0x06] = complete(CLTS, None, None, SizeByte)
	}
}
