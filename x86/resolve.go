// resolve.go

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

// ModRM decode formats - how the reg field of the ModRM byte is to be
// interpreted for the opcode that demanded ModRM decoding: either as a
// register operand, or as the selector into one of the group sub-tables.
const (
	MRFMT_MEMREG_REG   = iota // reg is the source, mem/reg the destination
	MRFMT_REG_MEMREG          // mem/reg is the source, reg the destination
	MRFMT_SEGREG              // reg selects a segment register destination
	MRFMT_ADD_TO_CMP          // group: ADD..CMP, trailing immediate
	MRFMT_ADC_TO_CMP          // group: ADD..CMP subset, byte immediate
	MRFMT_ROL_TO_SAR          // group: rotates and shifts
	MRFMT_TEST_TO_IDIV        // group: TEST..IDIV
	MRFMT_INC_DEC             // group: INC/DEC only
	MRFMT_INC_TO_PUSH         // group: INC..PUSH
	MRFMT_POP                 // POP mem/reg; only reg == 0 is assigned
	MRFMT_MOV                 // MOV mem/reg, immediate
	MRFMT_SLDT_TO_VERW        // group: protected-mode loads/stores (0F 00)
	MRFMT_SGDT_TO_LMSW        // group: descriptor-table forms (0F 01)
)

/* group-decode sub-tables, indexed by the ModRM reg field; an Undefined
   slot rejects the instruction as a whole */

var addToCmpOps = [8]Operation{ADD, OR, ADC, SBB, AND, SUB, XOR, CMP}

var adcToCmpOps = [8]Operation{ADD, Undefined, ADC, SBB, Undefined, SUB, Undefined, CMP}

var rolToSarOps = [8]Operation{ROL, Undefined, ROR, RCL, RCR, SAL, SHR, SAR}

var testToIdivOps = [8]Operation{TEST, Undefined, NOT, NEG, MUL, IMUL, DIV, IDIV}

var incDecOps = [8]Operation{INC, DEC}

var incToPushOps = [8]Operation{INC, DEC, CALLN, CALLF, JMPN, JMPF, PUSH, Undefined}

var sldtToVerwOps = [8]Operation{SLDT, STR, LLDT, LTR, VERR, VERW}

var sgdtToLmswOps = [8]Operation{SGDT, Undefined, LGDT, Undefined, SMSW, Undefined, LMSW}

// segment register selected by the low two bits of the reg field; the high
// bit has no encoding
var segTable = [4]Source{ES, CS, SS, DS}

// resolveModRegRM applies one ModRM byte to the decode in progress: it
// fixes the register or memory operand, finishes group decoding, and
// settles how many displacement bytes follow. It reports false when the
// byte has no assigned meaning for the pending operation.
func (d *Decoder) resolveModRegRM(b byte) bool {
	mod := b >> 6
	reg := (b >> 3) & 7
	rm := b & 7

	var memreg Source
	switch mod {
	case 3:
		// the non-memory operand is a plain register
		memreg = regTable[d.operationSize][rm]

		// LES and LDS accept a memory argument only
		if d.operation == LES || d.operation == LDS {
			return false
		}
	case 0:
		if rm == 6 {
			// no base: a two-byte absolute address follows
			memreg = DirectAddress
			d.displacementSize = 2
		} else {
			memreg = Indirect
			d.sib = rmTable[rm]
		}
	default:
		d.displacementSize = 1
		if mod == 2 {
			d.displacementSize = 2
		}
		memreg = Indirect
		d.sib = rmTable[rm]
	}

	switch d.modRegRMFormat {

	case MRFMT_MEMREG_REG:
		d.source = regTable[d.operationSize][reg]
		d.destination = memreg

	case MRFMT_REG_MEMREG:
		d.source = memreg
		d.destination = regTable[d.operationSize][reg]

	case MRFMT_SEGREG:
		if reg&4 != 0 {
			return false
		}
		d.source = memreg
		d.destination = segTable[reg]

	case MRFMT_ADD_TO_CMP:
		d.operation = addToCmpOps[reg]
		d.destination = memreg
		d.operandSize = int(d.operationSize)

	case MRFMT_ADC_TO_CMP:
		// always a single immediate byte; sign extended later if the
		// operation is word sized
		if d.operation = adcToCmpOps[reg]; d.operation == Undefined {
			return false
		}
		d.source = Immediate
		d.destination = memreg
		d.operandSize = 1

	case MRFMT_ROL_TO_SAR:
		if d.operation = rolToSarOps[reg]; d.operation == Undefined {
			return false
		}
		d.destination = memreg

	case MRFMT_TEST_TO_IDIV:
		if d.operation = testToIdivOps[reg]; d.operation == Undefined {
			return false
		}
		d.source = memreg
		d.destination = memreg

	case MRFMT_INC_DEC:
		if d.operation = incDecOps[reg]; d.operation == Undefined {
			return false
		}
		d.source = memreg
		d.destination = memreg

	case MRFMT_INC_TO_PUSH:
		if d.operation = incToPushOps[reg]; d.operation == Undefined {
			return false
		}
		d.source = memreg
		d.destination = memreg
		if d.operation == CALLF || d.operation == JMPF {
			// far forms take a four-byte pointer operand
			d.source = Immediate
			d.operandSize = 4
		}

	case MRFMT_POP:
		if reg != 0 {
			return false
		}
		d.source = memreg
		d.destination = memreg

	case MRFMT_MOV:
		d.source = Immediate
		d.destination = memreg
		d.operandSize = int(d.operationSize)

	case MRFMT_SLDT_TO_VERW:
		if d.operation = sldtToVerwOps[reg]; d.operation == Undefined {
			return false
		}
		d.source = memreg
		d.destination = memreg

	case MRFMT_SGDT_TO_LMSW:
		if d.operation = sgdtToLmswOps[reg]; d.operation == Undefined {
			return false
		}
		d.source = memreg
		d.destination = memreg
	}

	if d.displacementSize+d.operandSize != 0 {
		d.phase = OPERAND_PHASE
	} else {
		d.phase = READY_TO_POST_PHASE
	}
	return true
}
