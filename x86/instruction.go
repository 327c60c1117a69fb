// instruction.go

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

// Package x86 decodes 8086-family machine code into structured instruction
// descriptors. A Decoder is bound to one processor Model and is driven by
// repeated Decode calls over a byte stream supplied in arbitrary chunks.
package x86

// Model is the targeted processor generation. It gates which opcodes and
// instructions are legal; anything below an instruction's introducing model
// decodes as Undefined.
type Model int

const (
	Intel8086 Model = iota
	Intel80186
	Intel80286
	Intel80386

	numModels
)

func (m Model) String() string {
	switch m {
	case Intel8086:
		return "8086"
	case Intel80186:
		return "80186"
	case Intel80286:
		return "80286"
	case Intel80386:
		return "80386"
	}
	return "???"
}

// Size is an operand or address width class in bytes.
type Size int

const (
	SizeImplied Size = 0
	SizeByte    Size = 1
	SizeWord    Size = 2
	SizeDWord   Size = 4
)

// Repetition is the string-instruction repeat prefix state.
type Repetition int

const (
	RepNone Repetition = iota
	RepE               // repeat while equal (REP/REPE, 0xF3)
	RepNE              // repeat while not equal (REPNE, 0xF2)
)

// Source identifies where an operand lives: a specific register, an
// immediate, a direct address, or a computed effective address. The
// general registers AX..DI name the 16-bit register or its low 8-bit half
// according to the instruction's OperandSize.
type Source int

const (
	None Source = iota

	AX
	CX
	DX
	BX
	SP
	BP
	SI
	DI

	AH
	CH
	DH
	BH

	ES
	CS
	SS
	DS

	Immediate     // the Operand field holds the value
	DirectAddress // an absolute address: Displacement for ModRM forms, Operand for implicit forms
	Indirect      // the effective address is described by the SIB field
)

var sourceNames = map[Source]string{
	None: "None",
	AX:   "AX", CX: "CX", DX: "DX", BX: "BX",
	SP: "SP", BP: "BP", SI: "SI", DI: "DI",
	AH: "AH", CH: "CH", DH: "DH", BH: "BH",
	ES: "ES", CS: "CS", SS: "SS", DS: "DS",
	Immediate:     "Immediate",
	DirectAddress: "DirectAddress",
	Indirect:      "Indirect",
}

func (s Source) String() string {
	if name, known := sourceNames[s]; known {
		return name
	}
	return "???"
}

// ScaleIndexBase describes a computed effective address. Pre-386 there is no
// SIB byte; the descriptor captures one of the eight fixed base/index
// pairings implied by the ModRM rm field, and Scale is always zero.
type ScaleIndexBase struct {
	Scale byte
	Index Source
	Base  Source
}

// Operation is the decoded mnemonic. The zero value is Undefined, which is
// also the sentinel emitted for any byte sequence that is not a legal
// instruction on the decoder's model.
type Operation int

const (
	Undefined Operation = iota

	AAA
	AAD
	AAM
	AAS
	ADC
	ADD
	AND
	ARPL
	BOUND
	CALLD
	CALLF
	CALLN
	CBW
	CLC
	CLD
	CLI
	CLTS
	CMC
	CMP
	CMPS
	CWD
	DAA
	DAS
	DEC
	DIV
	ENTER
	ESC
	HLT
	IDIV
	IMUL
	IN
	INC
	INS
	INT
	INT3
	INTO
	IRET
	JB
	JBE
	JE
	JL
	JLE
	JMPF
	JMPN
	JNB
	JNBE
	JNE
	JNL
	JNLE
	JNO
	JNP
	JNS
	JO
	JP
	JPCX
	JS
	LAHF
	LAR
	LDS
	LEA
	LEAVE
	LES
	LGDT
	LLDT
	LMSW
	LOADALL
	LODS
	LOOP
	LOOPE
	LOOPNE
	LSL
	LTR
	MOV
	MOVS
	MUL
	NEG
	NOP
	NOT
	OR
	OUT
	OUTS
	POP
	POPA
	POPF
	PUSH
	PUSHA
	PUSHF
	RCL
	RCR
	RETF
	RETN
	ROL
	ROR
	SAHF
	SAL
	SAR
	SBB
	SCAS
	SGDT
	SHR
	SLDT
	SMSW
	STC
	STD
	STI
	STOS
	STR
	SUB
	TEST
	VERR
	VERW
	WAIT
	XCHG
	XLAT
	XOR
)

var operationNames = map[Operation]string{
	Undefined: "Undefined",
	AAA:       "AAA", AAD: "AAD", AAM: "AAM", AAS: "AAS",
	ADC: "ADC", ADD: "ADD", AND: "AND", ARPL: "ARPL", BOUND: "BOUND",
	CALLD: "CALLD", CALLF: "CALLF", CALLN: "CALLN",
	CBW: "CBW", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLTS: "CLTS",
	CMC: "CMC", CMP: "CMP", CMPS: "CMPS", CWD: "CWD",
	DAA: "DAA", DAS: "DAS", DEC: "DEC", DIV: "DIV",
	ENTER: "ENTER", ESC: "ESC", HLT: "HLT",
	IDIV: "IDIV", IMUL: "IMUL", IN: "IN", INC: "INC", INS: "INS",
	INT: "INT", INT3: "INT3", INTO: "INTO", IRET: "IRET",
	JB: "JB", JBE: "JBE", JE: "JE", JL: "JL", JLE: "JLE",
	JMPF: "JMPF", JMPN: "JMPN",
	JNB: "JNB", JNBE: "JNBE", JNE: "JNE", JNL: "JNL", JNLE: "JNLE",
	JNO: "JNO", JNP: "JNP", JNS: "JNS", JO: "JO", JP: "JP",
	JPCX: "JPCX", JS: "JS",
	LAHF: "LAHF", LAR: "LAR", LDS: "LDS", LEA: "LEA", LEAVE: "LEAVE",
	LES: "LES", LGDT: "LGDT", LLDT: "LLDT", LMSW: "LMSW",
	LOADALL: "LOADALL", LODS: "LODS",
	LOOP: "LOOP", LOOPE: "LOOPE", LOOPNE: "LOOPNE",
	LSL: "LSL", LTR: "LTR",
	MOV: "MOV", MOVS: "MOVS", MUL: "MUL",
	NEG: "NEG", NOP: "NOP", NOT: "NOT",
	OR: "OR", OUT: "OUT", OUTS: "OUTS",
	POP: "POP", POPA: "POPA", POPF: "POPF",
	PUSH: "PUSH", PUSHA: "PUSHA", PUSHF: "PUSHF",
	RCL: "RCL", RCR: "RCR", RETF: "RETF", RETN: "RETN",
	ROL: "ROL", ROR: "ROR",
	SAHF: "SAHF", SAL: "SAL", SAR: "SAR", SBB: "SBB", SCAS: "SCAS",
	SGDT: "SGDT", SHR: "SHR", SLDT: "SLDT", SMSW: "SMSW",
	STC: "STC", STD: "STD", STI: "STI", STOS: "STOS", STR: "STR",
	SUB: "SUB", TEST: "TEST", VERR: "VERR", VERW: "VERW",
	WAIT: "WAIT", XCHG: "XCHG", XLAT: "XLAT", XOR: "XOR",
}

func (op Operation) String() string {
	if name, known := operationNames[op]; known {
		return name
	}
	return "???"
}

// Instruction is one fully-decoded instruction. It is immutable once
// emitted; the Undefined sentinel is the zero value.
type Instruction struct {
	Operation   Operation
	Source      Source
	Destination Source

	// SIB is meaningful only when Source or Destination is Indirect.
	SIB ScaleIndexBase

	Lock            bool
	AddressSize     Size
	OperandSize     Size
	SegmentOverride Source // None when no override prefix was seen
	Repetition      Repetition

	Displacement int16
	Operand      uint16
}
