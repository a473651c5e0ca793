package cpu

// opEntry is one row of the 256-entry opcode decode table: which
// addressing mode to run, which instruction to execute, and the base
// cycle count before any addressing-mode penalty.
type opEntry struct {
	mode   modeFunc
	exec   execFunc
	cycles uint8
}

// decodeTable is indexed directly by opcode byte. It starts zeroed by
// Go and is filled in two passes by init: every slot first becomes a
// bare 2-cycle implied NOP (the fallback for "illegal" combined
// read-modify-write/ALU opcodes, out of scope per the cartridge
// compatibility non-goals), then the 151 official opcodes and the
// documented unofficial ones overwrite their slots.
var decodeTable [256]opEntry

func op(o uint8, mode modeFunc, exec execFunc, cycles uint8) {
	decodeTable[o] = opEntry{mode: mode, exec: exec, cycles: cycles}
}

func init() {
	bareNOP := opEntry{mode: impAddressing, exec: nopImpliedExec, cycles: 2}
	for i := range decodeTable {
		decodeTable[i] = bareNOP
	}

	// ADC
	op(0x69, immAddressing, adcExec, 2)
	op(0x65, zpAddressing, adcExec, 3)
	op(0x75, zpxAddressing, adcExec, 4)
	op(0x6D, absAddressing, adcExec, 4)
	op(0x7D, abxAddressing, adcExec, 4)
	op(0x79, abyAddressing, adcExec, 4)
	op(0x61, izxAddressing, adcExec, 6)
	op(0x71, izyAddressing, adcExec, 5)

	// AND
	op(0x29, immAddressing, andExec, 2)
	op(0x25, zpAddressing, andExec, 3)
	op(0x35, zpxAddressing, andExec, 4)
	op(0x2D, absAddressing, andExec, 4)
	op(0x3D, abxAddressing, andExec, 4)
	op(0x39, abyAddressing, andExec, 4)
	op(0x21, izxAddressing, andExec, 6)
	op(0x31, izyAddressing, andExec, 5)

	// ASL
	op(0x0A, accAddressing, aslAccExec, 2)
	op(0x06, zpAddressing, aslExec, 5)
	op(0x16, zpxAddressing, aslExec, 6)
	op(0x0E, absAddressing, aslExec, 6)
	op(0x1E, abxPlainAddressing, aslExec, 7)

	// Branches
	op(0x90, relAddressing, bccExec, 2)
	op(0xB0, relAddressing, bcsExec, 2)
	op(0xF0, relAddressing, beqExec, 2)
	op(0x30, relAddressing, bmiExec, 2)
	op(0xD0, relAddressing, bneExec, 2)
	op(0x10, relAddressing, bplExec, 2)
	op(0x50, relAddressing, bvcExec, 2)
	op(0x70, relAddressing, bvsExec, 2)

	// BIT
	op(0x24, zpAddressing, bitExec, 3)
	op(0x2C, absAddressing, bitExec, 4)

	// BRK
	op(0x00, impAddressing, brkExec, 7)

	// Flags
	op(0x18, impAddressing, clcExec, 2)
	op(0xD8, impAddressing, cldExec, 2)
	op(0x58, impAddressing, cliExec, 2)
	op(0xB8, impAddressing, clvExec, 2)
	op(0x38, impAddressing, secExec, 2)
	op(0xF8, impAddressing, sedExec, 2)
	op(0x78, impAddressing, seiExec, 2)

	// CMP
	op(0xC9, immAddressing, cmpExec, 2)
	op(0xC5, zpAddressing, cmpExec, 3)
	op(0xD5, zpxAddressing, cmpExec, 4)
	op(0xCD, absAddressing, cmpExec, 4)
	op(0xDD, abxAddressing, cmpExec, 4)
	op(0xD9, abyAddressing, cmpExec, 4)
	op(0xC1, izxAddressing, cmpExec, 6)
	op(0xD1, izyAddressing, cmpExec, 5)

	// CPX / CPY
	op(0xE0, immAddressing, cpxExec, 2)
	op(0xE4, zpAddressing, cpxExec, 3)
	op(0xEC, absAddressing, cpxExec, 4)
	op(0xC0, immAddressing, cpyExec, 2)
	op(0xC4, zpAddressing, cpyExec, 3)
	op(0xCC, absAddressing, cpyExec, 4)

	// DEC / DEX / DEY
	op(0xC6, zpAddressing, decExec, 5)
	op(0xD6, zpxAddressing, decExec, 6)
	op(0xCE, absAddressing, decExec, 6)
	op(0xDE, abxPlainAddressing, decExec, 7)
	op(0xCA, impAddressing, dexExec, 2)
	op(0x88, impAddressing, deyExec, 2)

	// EOR
	op(0x49, immAddressing, eorExec, 2)
	op(0x45, zpAddressing, eorExec, 3)
	op(0x55, zpxAddressing, eorExec, 4)
	op(0x4D, absAddressing, eorExec, 4)
	op(0x5D, abxAddressing, eorExec, 4)
	op(0x59, abyAddressing, eorExec, 4)
	op(0x41, izxAddressing, eorExec, 6)
	op(0x51, izyAddressing, eorExec, 5)

	// INC / INX / INY
	op(0xE6, zpAddressing, incExec, 5)
	op(0xF6, zpxAddressing, incExec, 6)
	op(0xEE, absAddressing, incExec, 6)
	op(0xFE, abxPlainAddressing, incExec, 7)
	op(0xE8, impAddressing, inxExec, 2)
	op(0xC8, impAddressing, inyExec, 2)

	// JMP / JSR
	op(0x4C, absAddressing, jmpExec, 3)
	op(0x6C, indAddressing, jmpExec, 5)
	op(0x20, absAddressing, jsrExec, 6)

	// LDA
	op(0xA9, immAddressing, ldaExec, 2)
	op(0xA5, zpAddressing, ldaExec, 3)
	op(0xB5, zpxAddressing, ldaExec, 4)
	op(0xAD, absAddressing, ldaExec, 4)
	op(0xBD, abxAddressing, ldaExec, 4)
	op(0xB9, abyAddressing, ldaExec, 4)
	op(0xA1, izxAddressing, ldaExec, 6)
	op(0xB1, izyAddressing, ldaExec, 5)

	// LDX
	op(0xA2, immAddressing, ldxExec, 2)
	op(0xA6, zpAddressing, ldxExec, 3)
	op(0xB6, zpyAddressing, ldxExec, 4)
	op(0xAE, absAddressing, ldxExec, 4)
	op(0xBE, abyAddressing, ldxExec, 4)

	// LDY
	op(0xA0, immAddressing, ldyExec, 2)
	op(0xA4, zpAddressing, ldyExec, 3)
	op(0xB4, zpxAddressing, ldyExec, 4)
	op(0xAC, absAddressing, ldyExec, 4)
	op(0xBC, abxAddressing, ldyExec, 4)

	// LSR
	op(0x4A, accAddressing, lsrAccExec, 2)
	op(0x46, zpAddressing, lsrExec, 5)
	op(0x56, zpxAddressing, lsrExec, 6)
	op(0x4E, absAddressing, lsrExec, 6)
	op(0x5E, abxPlainAddressing, lsrExec, 7)

	// NOP (official)
	op(0xEA, impAddressing, nopImpliedExec, 2)

	// ORA
	op(0x09, immAddressing, oraExec, 2)
	op(0x05, zpAddressing, oraExec, 3)
	op(0x15, zpxAddressing, oraExec, 4)
	op(0x0D, absAddressing, oraExec, 4)
	op(0x1D, abxAddressing, oraExec, 4)
	op(0x19, abyAddressing, oraExec, 4)
	op(0x01, izxAddressing, oraExec, 6)
	op(0x11, izyAddressing, oraExec, 5)

	// Stack
	op(0x48, impAddressing, phaExec, 3)
	op(0x08, impAddressing, phpExec, 3)
	op(0x68, impAddressing, plaExec, 4)
	op(0x28, impAddressing, plpExec, 4)

	// ROL
	op(0x2A, accAddressing, rolAccExec, 2)
	op(0x26, zpAddressing, rolExec, 5)
	op(0x36, zpxAddressing, rolExec, 6)
	op(0x2E, absAddressing, rolExec, 6)
	op(0x3E, abxPlainAddressing, rolExec, 7)

	// ROR
	op(0x6A, accAddressing, rorAccExec, 2)
	op(0x66, zpAddressing, rorExec, 5)
	op(0x76, zpxAddressing, rorExec, 6)
	op(0x6E, absAddressing, rorExec, 6)
	op(0x7E, abxPlainAddressing, rorExec, 7)

	// RTI / RTS
	op(0x40, impAddressing, rtiExec, 6)
	op(0x60, impAddressing, rtsExec, 6)

	// SBC
	op(0xE9, immAddressing, sbcExec, 2)
	op(0xE5, zpAddressing, sbcExec, 3)
	op(0xF5, zpxAddressing, sbcExec, 4)
	op(0xED, absAddressing, sbcExec, 4)
	op(0xFD, abxAddressing, sbcExec, 4)
	op(0xF9, abyAddressing, sbcExec, 4)
	op(0xE1, izxAddressing, sbcExec, 6)
	op(0xF1, izyAddressing, sbcExec, 5)

	// STA (always the worst-case cycle count; the plain addressing
	// variants never add a page-cross penalty to a store)
	op(0x85, zpAddressing, staExec, 3)
	op(0x95, zpxAddressing, staExec, 4)
	op(0x8D, absAddressing, staExec, 4)
	op(0x9D, abxPlainAddressing, staExec, 5)
	op(0x99, abyPlainAddressing, staExec, 5)
	op(0x81, izxAddressing, staExec, 6)
	op(0x91, izyPlainAddressing, staExec, 6)

	// STX / STY
	op(0x86, zpAddressing, stxExec, 3)
	op(0x96, zpyAddressing, stxExec, 4)
	op(0x8E, absAddressing, stxExec, 4)
	op(0x84, zpAddressing, styExec, 3)
	op(0x94, zpxAddressing, styExec, 4)
	op(0x8C, absAddressing, styExec, 4)

	// Transfers
	op(0xAA, impAddressing, taxExec, 2)
	op(0xA8, impAddressing, tayExec, 2)
	op(0xBA, impAddressing, tsxExec, 2)
	op(0x8A, impAddressing, txaExec, 2)
	op(0x9A, impAddressing, txsExec, 2)
	op(0x98, impAddressing, tyaExec, 2)

	registerUnofficialOpcodes()
}

// registerUnofficialOpcodes fills in the documented unofficial slots
// that real cartridges and test ROMs are known to rely on. Everything
// else keeps the bare 2-cycle NOP the init loop seeded every slot
// with.
func registerUnofficialOpcodes() {
	// Single-byte NOPs.
	for _, o := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		op(o, impAddressing, nopImpliedExec, 2)
	}

	// Zero-page NOPs: fetch and discard one operand byte.
	for _, o := range []uint8{0x04, 0x44, 0x64} {
		op(o, zpAddressing, nopReadExec, 3)
	}

	// Zero-page,X NOPs.
	for _, o := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		op(o, zpxAddressing, nopReadExec, 4)
	}

	// Absolute NOP.
	op(0x0C, absAddressing, nopReadExec, 4)

	// Absolute,X NOPs: subject to the normal page-cross penalty.
	for _, o := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		op(o, abxAddressing, nopReadExec, 4)
	}

	// Immediate NOPs (2 bytes, operand discarded).
	for _, o := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		op(o, immAddressing, nopReadExec, 2)
	}

	// $EB duplicates the official SBC immediate opcode exactly.
	op(0xEB, immAddressing, sbcExec, 2)
}
