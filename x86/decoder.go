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

package x86

import (
	"github.com/SMerrony/dgemug/logging"
)

// debugLogging - decoding runs noticeably faster without it
var debugLogging = false

// SetDebugLogging turns decode tracing via the dgemug debug logs on or off.
func SetDebugLogging(on bool) {
	debugLogging = on
}

// Decode phases, in acquisition order. Transitions are one-directional;
// READY_TO_POST_PHASE resets straight back to OPCODE_PHASE.
const (
	OPCODE_PHASE        = iota // consuming prefix and opcode bytes
	PAGE_F_PHASE               // consuming the second byte after the 0x0F escape
	MODRM_PHASE                // a ModRM byte is pending
	OPERAND_PHASE              // displacement/immediate bytes are pending
	READY_TO_POST_PHASE        // instruction complete
)

// Decoder is the per-stream decode state machine. One Decoder serves one
// logical byte stream; independent Decoders share nothing. It holds no
// reference to any buffer passed to Decode beyond the call.
type Decoder struct {
	model Model
	page  *opcodePage

	phase int

	// fields accumulated for the instruction in progress
	operation       Operation
	source          Source
	destination     Source
	sib             ScaleIndexBase
	lock            bool
	addressSize     Size
	segmentOverride Source
	repetition      Repetition
	operationSize   Size
	modRegRMFormat  int

	displacementSize int
	operandSize      int
	displacement     int16
	operand          uint16

	// the operand byte accumulator
	inwardData   uint64
	operandBytes int

	// bytes consumed toward the current instruction, across Decode calls
	consumed int
}

// NewDecoder returns a decoder for one byte stream, bound to the given
// processor model for its lifetime.
func NewDecoder(model Model) *Decoder {
	d := &Decoder{model: model, page: &opcodePages[model]}
	d.Reset()
	return d
}

// Model returns the processor generation this decoder was built for.
func (d *Decoder) Model() Model {
	return d.model
}

// Reset abandons any partially-decoded instruction and returns the decoder
// to its initial phase. Decode calls it implicitly after every completed or
// rejected instruction.
func (d *Decoder) Reset() {
	d.phase = OPCODE_PHASE
	d.operation = Undefined
	d.source = None
	d.destination = None
	d.sib = ScaleIndexBase{}
	d.lock = false
	d.addressSize = SizeWord
	d.segmentOverride = None
	d.repetition = RepNone
	d.operationSize = SizeImplied
	d.modRegRMFormat = 0
	d.displacementSize = 0
	d.operandSize = 0
	d.displacement = 0
	d.operand = 0
	d.inwardData = 0
	d.operandBytes = 0
	d.consumed = 0
}

// Decode consumes bytes from buf, resuming wherever the previous call left
// off. The caller owns buf; nothing is retained from it.
//
// The returned count follows three regimes: count > 0 means a complete
// instruction was produced and count is the total number of bytes that made
// it up, including bytes contributed by earlier calls; count == 0 means all
// of buf was absorbed and more bytes are needed; count < 0 means exactly
// -count further bytes are required before the current sub-phase can finish.
// A rejected byte sequence is reported like a completion, with the returned
// instruction's Operation set to Undefined and count covering the bytes
// examined up to and including the offending byte.
func (d *Decoder) Decode(buf []byte) (int, Instruction) {
	i := 0

	// prefixes (if present) and the opcode
	for d.phase == OPCODE_PHASE && i < len(buf) {
		b := buf[i]
		i++
		d.consumed++

		e := &d.page.base[b]
		switch e.instrFmt {
		case UNDEF_FMT:
			return d.undefined(b)
		case SEG_OVERRIDE_FMT:
			d.segmentOverride = e.src
		case LOCK_PREFIX_FMT:
			d.lock = true
		case REP_PREFIX_FMT:
			d.repetition = e.rep
		case PAGE_F_FMT:
			d.phase = PAGE_F_PHASE
		default:
			d.begin(e)
		}
	}

	// the additional 0x0F page; reachable on the 80286 and later only
	if d.phase == PAGE_F_PHASE && i < len(buf) {
		b := buf[i]
		i++
		d.consumed++

		e := &d.page.pageF[b]
		if e.instrFmt == UNDEF_FMT {
			return d.undefined(b)
		}
		d.begin(e)
	}

	// the ModRM byte, if the opcode demanded one
	if d.phase == MODRM_PHASE && i < len(buf) {
		b := buf[i]
		i++
		d.consumed++

		if !d.resolveModRegRM(b) {
			return d.undefined(b)
		}
	}

	// displacement and operand bytes; entered even with nothing left in
	// buf so that the exact byte deficit can be reported
	if d.phase == OPERAND_PHASE {
		requiredBytes := d.displacementSize + d.operandSize
		outstanding := requiredBytes - d.operandBytes
		toConsume := len(buf) - i
		if toConsume > outstanding {
			toConsume = outstanding
		}

		for c := 0; c < toConsume; c++ {
			d.inwardData = (d.inwardData >> 8) | (uint64(buf[i]) << 56)
			i++
		}
		d.consumed += toConsume
		d.operandBytes += toConsume

		if toConsume < outstanding {
			// report a genuine measure of the bytes still required
			return -(outstanding - toConsume), Instruction{}
		}

		d.phase = READY_TO_POST_PHASE

		switch d.operandSize {
		case 1:
			d.operand = uint16(d.inwardData >> 56)
			d.inwardData <<= 8
			// a single byte operand feeding a word-sized operation is
			// sign extended, except for port numbers
			if d.operationSize == SizeWord && d.operation != IN && d.operation != OUT {
				if d.operand&0x80 != 0 {
					d.operand |= 0xff00
				}
			}
		case 4:
			// far pointer: the high word is the operand, the low word
			// falls through to the displacement
			d.displacementSize = 2
			fallthrough
		case 2:
			d.operand = uint16(d.inwardData >> 48)
			d.inwardData <<= 16
		default:
			d.operand = 0
		}

		switch d.displacementSize {
		case 1:
			d.displacement = int16(int8(d.inwardData >> 56))
		case 2:
			d.displacement = int16(d.inwardData >> 48)
		default:
			d.displacement = 0
		}
	}

	if d.phase == READY_TO_POST_PHASE {
		count := d.consumed
		instruction := Instruction{
			Operation:       d.operation,
			Source:          d.source,
			Destination:     d.destination,
			SIB:             d.sib,
			Lock:            d.lock,
			AddressSize:     d.addressSize,
			OperandSize:     d.operationSize,
			SegmentOverride: d.segmentOverride,
			Repetition:      d.repetition,
			Displacement:    d.displacement,
			Operand:         d.operand,
		}
		d.Reset()
		if debugLogging {
			logging.DebugPrint(logging.DebugLog, "... decoded %s in %d bytes\n",
				instruction.Operation, count)
		}
		return count, instruction
	}

	// not done yet; everything supplied has been absorbed
	return 0, Instruction{}
}

// begin applies an opcode dispatch entry, loading the tentative fields and
// advancing the phase according to the entry's format.
func (d *Decoder) begin(e *instrChars) {
	switch e.instrFmt {

	case COMPLETE_FMT:
		d.operation = e.op
		d.source = e.src
		d.destination = e.dst
		d.operationSize = e.opSize
		d.phase = READY_TO_POST_PHASE

	case REG_DATA_FMT, REG_ADDR_FMT, ADDR_REG_FMT:
		d.operation = e.op
		d.source = e.src
		d.destination = e.dst
		d.operationSize = e.opSize
		d.operandSize = e.operandSize
		d.phase = OPERAND_PHASE

	case MEM_REG_REG_FMT:
		d.operation = e.op
		d.modRegRMFormat = e.modFmt
		d.operationSize = e.opSize
		d.operandSize = 0
		d.phase = MODRM_PHASE

	case JUMP_FMT:
		d.operation = e.op
		d.displacementSize = 1
		d.phase = OPERAND_PHASE

	case FAR_FMT:
		d.operation = e.op
		d.operandSize = e.operandSize
		d.phase = OPERAND_PHASE

	case DISP16_OP8_FMT:
		d.operation = e.op
		d.displacementSize = 2
		d.operandSize = e.operandSize
		d.phase = OPERAND_PHASE

	case SHIFT_ONE_FMT:
		d.modRegRMFormat = MRFMT_ROL_TO_SAR
		d.operationSize = e.opSize
		d.source = Immediate
		d.operand = 1
		d.phase = MODRM_PHASE

	case SHIFT_CL_FMT:
		d.modRegRMFormat = MRFMT_ROL_TO_SAR
		d.operationSize = e.opSize
		d.source = CX
		d.phase = MODRM_PHASE
	}
}

// undefined rejects the bytes consumed so far as not forming a legal
// instruction on this model: it emits the sentinel and resets, leaving the
// decoder ready to resume scanning immediately.
func (d *Decoder) undefined(b byte) (int, Instruction) {
	count := d.consumed
	if debugLogging {
		logging.DebugPrint(logging.DebugLog,
			"INFO: no legal decode for byte 0x%02X on the %s after %d bytes\n",
			b, d.model, count)
	}
	d.Reset()
	return count, Instruction{}
}
