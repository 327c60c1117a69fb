// instructionDefinitions_test.go
package x86

import (
	"testing"
)

func TestDispatchTableGating(t *testing.T) {
	for _, b := range []int{0x60, 0x61, 0x62, 0x6c, 0x6d, 0x6e, 0x6f, 0xc8, 0xc9} {
		if opcodePages[Intel8086].base[b].instrFmt != UNDEF_FMT {
			t.Errorf("Opcode %#x: expected no 8086 assignment", b)
		}
		if opcodePages[Intel80186].base[b].instrFmt == UNDEF_FMT {
			t.Errorf("Opcode %#x: expected an 80186 assignment", b)
		}
	}

	if opcodePages[Intel80186].base[0x63].instrFmt != UNDEF_FMT {
		t.Error("Expected no 80186 assignment for 0x63")
	}
	if opcodePages[Intel80286].base[0x63].op != ARPL {
		t.Error("Expected ARPL at 0x63 on the 80286")
	}

	// the second opcode page opens up with the 80286
	if opcodePages[Intel80186].base[0x0f].instrFmt != UNDEF_FMT {
		t.Error("Expected no 80186 assignment for 0x0f")
	}
	if opcodePages[Intel80286].base[0x0f].instrFmt != PAGE_F_FMT {
		t.Error("Expected the 0x0f escape on the 80286")
	}
	if opcodePages[Intel80286].pageF[0x05].op != LOADALL {
		t.Error("Expected LOADALL at 0f 05 on the 80286")
	}
	if opcodePages[Intel80386].pageF[0x05].instrFmt != UNDEF_FMT {
		t.Error("Expected no 80386 assignment for 0f 05")
	}

	// bytes with no assignment on any supported model
	for _, b := range []int{0x8c, 0xc0, 0xc1, 0xd6, 0xf1, 0x64, 0x65, 0x6a, 0x6b} {
		if opcodePages[Intel80386].base[b].instrFmt != UNDEF_FMT {
			t.Errorf("Opcode %#x: expected no assignment on any model", b)
		}
	}
}

func TestRegisterBlockLayout(t *testing.T) {
	blocks := []struct {
		base int
		op   Operation
	}{
		{0x40, INC}, {0x48, DEC}, {0x50, PUSH}, {0x58, POP},
	}
	for _, blk := range blocks {
		for r := 0; r < 8; r++ {
			e := opcodePages[Intel8086].base[blk.base+r]
			if e.op != blk.op || e.dst != regTable[SizeWord][r] {
				t.Errorf("Opcode %#x: expected %v %v, got %v %v",
					blk.base+r, blk.op, regTable[SizeWord][r], e.op, e.dst)
			}
		}
	}
}

func TestPrefixEntries(t *testing.T) {
	segs := map[int]Source{0x26: ES, 0x2e: CS, 0x36: SS, 0x3e: DS}
	for b, seg := range segs {
		e := opcodePages[Intel8086].base[b]
		if e.instrFmt != SEG_OVERRIDE_FMT || e.src != seg {
			t.Errorf("Opcode %#x: expected %v override entry", b, seg)
		}
	}
	if opcodePages[Intel8086].base[0xf0].instrFmt != LOCK_PREFIX_FMT {
		t.Error("Expected the lock prefix at 0xf0")
	}
	if e := opcodePages[Intel8086].base[0xf2]; e.instrFmt != REP_PREFIX_FMT || e.rep != RepNE {
		t.Error("Unexpected entry at 0xf2: ", e.instrFmt, e.rep)
	}
	if e := opcodePages[Intel8086].base[0xf3]; e.instrFmt != REP_PREFIX_FMT || e.rep != RepE {
		t.Error("Unexpected entry at 0xf3: ", e.instrFmt, e.rep)
	}
}
