// decoder_test.go
package x86

import (
	"testing"
)

// decodeStream drives a decoder over in, handing it chunk bytes at a time,
// and collects every completed (or rejected) instruction with its count.
func decodeStream(d *Decoder, in []byte, chunk int) ([]int, []Instruction) {
	var counts []int
	var instrs []Instruction
	start, cursor := 0, 0
	for start < len(in) {
		limit := cursor + chunk
		if limit > len(in) {
			limit = len(in)
		}
		if cursor >= limit {
			break // stream ended mid-instruction
		}
		count, instr := d.Decode(in[cursor:limit])
		if count > 0 {
			counts = append(counts, count)
			instrs = append(instrs, instr)
			start += count
			cursor = start
		} else {
			cursor = limit
		}
	}
	return counts, instrs
}

func TestDecodeComplete(t *testing.T) {
	d := NewDecoder(Intel8086)

	count, instr := d.Decode([]byte{0x90})
	if count != 1 {
		t.Error("Expected 1, got ", count)
	}
	if instr.Operation != NOP {
		t.Error("Expected NOP, got ", instr.Operation)
	}
	if instr.Source != None || instr.Destination != None {
		t.Error("Expected no operands, got ", instr.Source, instr.Destination)
	}
	if instr.AddressSize != SizeWord {
		t.Error("Expected word address size, got ", instr.AddressSize)
	}

	count, instr = d.Decode([]byte{0xf8})
	if count != 1 || instr.Operation != CLC {
		t.Error("Expected CLC in 1 byte, got ", instr.Operation, count)
	}
}

func TestDecodeRegisterBlocks(t *testing.T) {
	ttable := []struct {
		b   byte
		op  Operation
		reg Source
	}{
		{0x40, INC, AX},
		{0x43, INC, BX},
		{0x4d, DEC, BP},
		{0x50, PUSH, AX},
		{0x57, PUSH, DI},
		{0x5e, POP, SI},
	}
	d := NewDecoder(Intel8086)
	for _, tt := range ttable {
		count, instr := d.Decode([]byte{tt.b})
		if count != 1 {
			t.Errorf("Opcode %#x: expected count 1, got %d", tt.b, count)
		}
		if instr.Operation != tt.op || instr.Destination != tt.reg {
			t.Errorf("Opcode %#x: expected %v %v, got %v %v",
				tt.b, tt.op, tt.reg, instr.Operation, instr.Destination)
		}
		if instr.OperandSize != SizeWord {
			t.Errorf("Opcode %#x: expected word size, got %v", tt.b, instr.OperandSize)
		}
	}
}

func TestDecodeImmediates(t *testing.T) {
	d := NewDecoder(Intel8086)

	// MOV AH, 0x09
	count, instr := d.Decode([]byte{0xb4, 0x09})
	if count != 2 {
		t.Error("Expected 2, got ", count)
	}
	if instr.Operation != MOV || instr.Destination != AH || instr.Source != Immediate {
		t.Error("Unexpected decode: ", instr.Operation, instr.Destination, instr.Source)
	}
	if instr.Operand != 0x0009 {
		t.Error("Expected operand 9, got ", instr.Operand)
	}

	// MOV AX, 0x1234
	count, instr = d.Decode([]byte{0xb8, 0x34, 0x12})
	if count != 3 || instr.Operand != 0x1234 {
		t.Error("Expected MOV AX, 0x1234 in 3 bytes, got ", instr.Operand, count)
	}

	// INT 0x21
	count, instr = d.Decode([]byte{0xcd, 0x21})
	if count != 2 || instr.Operation != INT || instr.Operand != 0x21 {
		t.Error("Expected INT 0x21, got ", instr.Operation, instr.Operand, count)
	}
}

func TestInsufficientDataSignalling(t *testing.T) {
	d := NewDecoder(Intel8086)

	count, _ := d.Decode([]byte{0xb8})
	if count != -2 {
		t.Error("Expected -2, got ", count)
	}
	count, _ = d.Decode([]byte{0x34})
	if count != -1 {
		t.Error("Expected -1, got ", count)
	}
	count, instr := d.Decode([]byte{0x12})
	if count != 3 {
		t.Error("Expected 3, got ", count)
	}
	if instr.Operation != MOV || instr.Destination != AX || instr.Operand != 0x1234 {
		t.Error("Unexpected decode: ", instr.Operation, instr.Destination, instr.Operand)
	}
}

func TestResumablePrefixAccumulation(t *testing.T) {
	d := NewDecoder(Intel8086)

	count, _ := d.Decode([]byte{0xf3})
	if count != 0 {
		t.Error("Expected 0, got ", count)
	}
	count, instr := d.Decode([]byte{0xaa})
	if count != 2 {
		t.Error("Expected 2, got ", count)
	}
	if instr.Operation != STOS || instr.Repetition != RepE {
		t.Error("Expected repeated STOS, got ", instr.Operation, instr.Repetition)
	}
	if instr.OperandSize != SizeByte {
		t.Error("Expected byte size, got ", instr.OperandSize)
	}
}

func TestResetCleanliness(t *testing.T) {
	d := NewDecoder(Intel8086)

	// LOCK ES: REP MOVSB - every prefix at once
	count, instr := d.Decode([]byte{0xf0, 0x26, 0xf3, 0xa4})
	if count != 4 {
		t.Error("Expected 4, got ", count)
	}
	if instr.Operation != MOVS || !instr.Lock ||
		instr.SegmentOverride != ES || instr.Repetition != RepE {
		t.Error("Unexpected prefixed decode: ", instr)
	}

	// nothing may leak into the next instruction
	count, instr = d.Decode([]byte{0x90})
	if count != 1 || instr.Operation != NOP {
		t.Error("Expected NOP, got ", instr.Operation, count)
	}
	if instr.Lock || instr.SegmentOverride != None || instr.Repetition != RepNone {
		t.Error("Stale prefix state leaked: ", instr)
	}
}

func TestModelGating(t *testing.T) {
	ttable := []struct {
		model Model
		in    []byte
		count int
		op    Operation
	}{
		{Intel8086, []byte{0x60}, 1, Undefined},
		{Intel80186, []byte{0x60}, 1, PUSHA},
		{Intel80286, []byte{0x60}, 1, PUSHA},
		{Intel80386, []byte{0x60}, 1, PUSHA},
		{Intel8086, []byte{0xc9}, 1, Undefined},
		{Intel80186, []byte{0xc9}, 1, LEAVE},
		{Intel80186, []byte{0x63, 0xc0}, 1, Undefined}, // ARPL needs the 286
		{Intel80286, []byte{0x63, 0xc0}, 2, ARPL},
		{Intel8086, []byte{0x0f}, 1, Undefined},
		{Intel80186, []byte{0x0f}, 1, Undefined},
		{Intel80286, []byte{0x0f, 0x06}, 2, CLTS},
		{Intel80386, []byte{0x0f, 0x06}, 2, CLTS},
		{Intel80286, []byte{0x0f, 0x05}, 2, LOADALL},
		{Intel80386, []byte{0x0f, 0x05}, 2, Undefined}, // LOADALL is 286 only
	}
	for _, tt := range ttable {
		d := NewDecoder(tt.model)
		count, instr := d.Decode(tt.in)
		if count != tt.count || instr.Operation != tt.op {
			t.Errorf("Model %v % x: expected (%d, %v), got (%d, %v)",
				tt.model, tt.in, tt.count, tt.op, count, instr.Operation)
		}
	}
}

func TestImmediateSignExtension(t *testing.T) {
	d := NewDecoder(Intel8086)

	// group 0x83, reg field 5 (SUB), register-direct AX, immediate 0xFF:
	// the byte immediate sign-extends for the word-sized operation
	count, instr := d.Decode([]byte{0x83, 0xe8, 0xff})
	if count != 3 {
		t.Error("Expected 3, got ", count)
	}
	if instr.Operation != SUB || instr.Destination != AX || instr.Source != Immediate {
		t.Error("Unexpected decode: ", instr.Operation, instr.Destination, instr.Source)
	}
	if instr.Operand != 0xffff {
		t.Errorf("Expected sign-extended 0xFFFF, got %#x", instr.Operand)
	}

	// IN takes its byte immediate as an unsigned port number instead
	count, instr = d.Decode([]byte{0xe5, 0x80})
	if count != 2 || instr.Operation != IN {
		t.Error("Expected IN in 2 bytes, got ", instr.Operation, count)
	}
	if instr.Operand != 0x0080 {
		t.Errorf("Expected port 0x80 unextended, got %#x", instr.Operand)
	}
}

func TestModRegRMAddressing(t *testing.T) {
	d := NewDecoder(Intel8086)

	// MOV [BX+SI], AL
	count, instr := d.Decode([]byte{0x88, 0x00})
	if count != 2 {
		t.Error("Expected 2, got ", count)
	}
	if instr.Destination != Indirect || instr.Source != AX {
		t.Error("Unexpected operands: ", instr.Destination, instr.Source)
	}
	if instr.SIB.Base != BX || instr.SIB.Index != SI || instr.SIB.Scale != 0 {
		t.Error("Unexpected effective address: ", instr.SIB)
	}

	// MOV [BX+0x12], AL - one displacement byte
	count, instr = d.Decode([]byte{0x88, 0x47, 0x12})
	if count != 3 || instr.Displacement != 0x12 {
		t.Error("Expected disp 0x12 in 3 bytes, got ", instr.Displacement, count)
	}
	if instr.SIB.Base != BX || instr.SIB.Index != None {
		t.Error("Unexpected effective address: ", instr.SIB)
	}

	// MOV [BP+DI-1], AX - two displacement bytes, signed
	count, instr = d.Decode([]byte{0x89, 0x83, 0xff, 0xff})
	if count != 4 || instr.Displacement != -1 {
		t.Error("Expected disp -1 in 4 bytes, got ", instr.Displacement, count)
	}
	if instr.SIB.Base != BP || instr.SIB.Index != DI {
		t.Error("Unexpected effective address: ", instr.SIB)
	}

	// mod == 0, rm == 6 is an absolute address, not BP-relative
	count, instr = d.Decode([]byte{0x88, 0x06, 0x00, 0x20})
	if count != 4 {
		t.Error("Expected 4, got ", count)
	}
	if instr.Destination != DirectAddress || instr.Displacement != 0x2000 {
		t.Error("Expected direct address 0x2000, got ",
			instr.Destination, instr.Displacement)
	}

	// register-direct form
	count, instr = d.Decode([]byte{0x89, 0xd8}) // MOV AX, BX
	if count != 2 || instr.Destination != AX || instr.Source != BX {
		t.Error("Unexpected register decode: ", instr.Destination, instr.Source)
	}

	// byte-width register selection uses the byte row
	count, instr = d.Decode([]byte{0x88, 0xe0}) // MOV AL, AH
	if count != 2 || instr.Destination != AX || instr.Source != AH {
		t.Error("Unexpected byte register decode: ", instr.Destination, instr.Source)
	}
}

func TestGroupDecode(t *testing.T) {
	ttable := []struct {
		in    []byte
		count int
		op    Operation
	}{
		{[]byte{0xf6, 0xd8}, 2, NEG},             // F6 /3, register direct
		{[]byte{0xf7, 0xe1}, 2, MUL},             // F7 /4
		{[]byte{0xf6, 0xc8}, 2, Undefined},       // F6 /1 is a hole
		{[]byte{0xfe, 0xc0}, 2, INC},             // FE /0
		{[]byte{0xfe, 0xd0}, 2, Undefined},       // FE /2 is a hole
		{[]byte{0xff, 0xe0}, 2, JMPN},            // FF /4
		{[]byte{0xff, 0xf8}, 2, Undefined},       // FF /7 is a hole
		{[]byte{0x8f, 0xc0}, 2, POP},             // 8F /0
		{[]byte{0x8f, 0xc8}, 2, Undefined},       // 8F /1..7 unassigned
		{[]byte{0xd1, 0xf8}, 2, SAR},             // D1 /7
		{[]byte{0xd0, 0xc8}, 2, Undefined},       // shift group /1 is a hole
		{[]byte{0x80, 0xc8, 0x01}, 3, OR},        // 80 /1, byte immediate
		{[]byte{0x82, 0xe0, 0x01}, 2, Undefined}, // 82 /4 is a hole
	}
	for _, tt := range ttable {
		d := NewDecoder(Intel8086)
		counts, instrs := decodeStream(d, tt.in, len(tt.in))
		if len(counts) != 1 {
			t.Errorf("Sequence % x: expected one instruction, got %d", tt.in, len(counts))
			continue
		}
		if counts[0] != tt.count || instrs[0].Operation != tt.op {
			t.Errorf("Sequence % x: expected (%d, %v), got (%d, %v)",
				tt.in, tt.count, tt.op, counts[0], instrs[0].Operation)
		}
	}
}

func TestGroupFarForms(t *testing.T) {
	d := NewDecoder(Intel8086)

	// FF /3 register-direct: CALLF with a four-byte pointer operand
	count, instr := d.Decode([]byte{0xff, 0xd8, 0x01, 0x02, 0x03, 0x04})
	if count != 6 {
		t.Error("Expected 6, got ", count)
	}
	if instr.Operation != CALLF || instr.Source != Immediate {
		t.Error("Unexpected decode: ", instr.Operation, instr.Source)
	}
	if instr.Operand != 0x0403 || instr.Displacement != 0x0201 {
		t.Errorf("Expected segment %#x offset %#x, got %#x %#x",
			0x0403, 0x0201, instr.Operand, instr.Displacement)
	}
}

func TestStructurallyInvalid(t *testing.T) {
	ttable := []struct {
		in    []byte
		count int
	}{
		{[]byte{0xc4, 0xc0}, 2}, // LES demands a memory operand
		{[]byte{0xc5, 0xd8}, 2}, // LDS likewise
		{[]byte{0x8e, 0xe0}, 2}, // only four segment registers encode
		{[]byte{0x8c}, 1},       // unassigned opcode slots
		{[]byte{0xd6}, 1},
		{[]byte{0xf1}, 1},
		{[]byte{0xc0}, 1},
		{[]byte{0x64}, 1},
	}
	for _, tt := range ttable {
		d := NewDecoder(Intel80386)
		count, instr := d.Decode(tt.in)
		if count != tt.count || instr.Operation != Undefined {
			t.Errorf("Sequence % x: expected (%d, Undefined), got (%d, %v)",
				tt.in, tt.count, count, instr.Operation)
		}
		// the reject must leave the decoder ready for the next byte
		count, instr = d.Decode([]byte{0x90})
		if count != 1 || instr.Operation != NOP {
			t.Errorf("Sequence % x: decoder not clean after reject", tt.in)
		}
	}
}

func TestSegmentRegisterMove(t *testing.T) {
	d := NewDecoder(Intel8086)

	// MOV ES, AX
	count, instr := d.Decode([]byte{0x8e, 0xc0})
	if count != 2 {
		t.Error("Expected 2, got ", count)
	}
	if instr.Operation != MOV || instr.Destination != ES || instr.Source != AX {
		t.Error("Unexpected decode: ", instr.Operation, instr.Destination, instr.Source)
	}

	// MOV DS, [BX]
	count, instr = d.Decode([]byte{0x8e, 0x1f})
	if count != 2 || instr.Destination != DS || instr.Source != Indirect {
		t.Error("Unexpected decode: ", instr.Destination, instr.Source)
	}
	if instr.SIB.Base != BX || instr.SIB.Index != None {
		t.Error("Unexpected effective address: ", instr.SIB)
	}
}

func TestFarPointerOperands(t *testing.T) {
	d := NewDecoder(Intel8086)

	// CALLF 0x7856:0x3412
	count, instr := d.Decode([]byte{0x9a, 0x12, 0x34, 0x56, 0x78})
	if count != 5 {
		t.Error("Expected 5, got ", count)
	}
	if instr.Operation != CALLF {
		t.Error("Expected CALLF, got ", instr.Operation)
	}
	if instr.Operand != 0x7856 || instr.Displacement != 0x3412 {
		t.Errorf("Expected segment 0x7856 offset 0x3412, got %#x %#x",
			instr.Operand, instr.Displacement)
	}
}

func TestJumpDisplacements(t *testing.T) {
	ttable := []struct {
		in   []byte
		op   Operation
		disp int16
	}{
		{[]byte{0x74, 0x10}, JE, 16},
		{[]byte{0x75, 0xfe}, JNE, -2},
		{[]byte{0xeb, 0x80}, JMPN, -128},
		{[]byte{0xe2, 0xf0}, LOOP, -16},
		{[]byte{0xe3, 0x05}, JPCX, 5},
	}
	d := NewDecoder(Intel8086)
	for _, tt := range ttable {
		count, instr := d.Decode(tt.in)
		if count != 2 {
			t.Errorf("Sequence % x: expected count 2, got %d", tt.in, count)
		}
		if instr.Operation != tt.op || instr.Displacement != tt.disp {
			t.Errorf("Sequence % x: expected %v %d, got %v %d",
				tt.in, tt.op, tt.disp, instr.Operation, instr.Displacement)
		}
	}
}

func TestEnterDecoding(t *testing.T) {
	d := NewDecoder(Intel80186)

	count, instr := d.Decode([]byte{0xc8, 0x10, 0x00, 0x02})
	if count != 4 {
		t.Error("Expected 4, got ", count)
	}
	if instr.Operation != ENTER || instr.Displacement != 0x0010 || instr.Operand != 2 {
		t.Error("Unexpected decode: ", instr.Operation, instr.Displacement, instr.Operand)
	}
}

// referenceStream is a varied, fully-legal 8086 byte stream used by the
// chunking tests: every phase of the state machine is crossed somewhere.
var referenceStream = []byte{
	0x90,                         // NOP
	0x50,                         // PUSH AX
	0xb8, 0x34, 0x12,             // MOV AX, 0x1234
	0x88, 0x47, 0x12,             // MOV [BX+0x12], AL
	0xf3, 0xaa,                   // REP STOSB
	0x83, 0xe8, 0xff,             // SUB AX, -1
	0x9a, 0x12, 0x34, 0x56, 0x78, // CALLF
	0xc6, 0x06, 0x00, 0x20, 0xff, // MOV byte [0x2000], 0xFF
	0x26, 0x8b, 0x0e, 0xfe, 0x7f, // MOV CX, ES:[0x7FFE]
	0x74, 0xfc,                   // JE -4
	0xcd, 0x21,                   // INT 0x21
	0xf4,                         // HLT
}

func TestChunkInvariance(t *testing.T) {
	wholeCounts, wholeInstrs := decodeStream(NewDecoder(Intel8086), referenceStream, len(referenceStream))
	if len(wholeCounts) != 12 {
		t.Error("Expected 12 instructions, got ", len(wholeCounts))
	}

	for chunk := 1; chunk <= 7; chunk++ {
		counts, instrs := decodeStream(NewDecoder(Intel8086), referenceStream, chunk)
		if len(counts) != len(wholeCounts) {
			t.Errorf("Chunk size %d: expected %d instructions, got %d",
				chunk, len(wholeCounts), len(counts))
			continue
		}
		for i := range counts {
			if counts[i] != wholeCounts[i] {
				t.Errorf("Chunk size %d instr %d: expected count %d, got %d",
					chunk, i, wholeCounts[i], counts[i])
			}
			if instrs[i] != wholeInstrs[i] {
				t.Errorf("Chunk size %d instr %d: expected %+v, got %+v",
					chunk, i, wholeInstrs[i], instrs[i])
			}
		}
	}
}

func TestExplicitReset(t *testing.T) {
	d := NewDecoder(Intel8086)

	// abandon a half-read MOV AX, imm16
	count, _ := d.Decode([]byte{0xb8, 0x34})
	if count != -1 {
		t.Error("Expected -1, got ", count)
	}
	d.Reset()

	count, instr := d.Decode([]byte{0x90})
	if count != 1 || instr.Operation != NOP {
		t.Error("Expected NOP after reset, got ", instr.Operation, count)
	}
}

func BenchmarkDecode(b *testing.B) {
	d := NewDecoder(Intel8086)
	for n := 0; n < b.N; n++ {
		decodeStream(d, referenceStream, len(referenceStream))
	}
}
