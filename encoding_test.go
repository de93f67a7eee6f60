package spirvfront

import "github.com/vkshade/spirvfront/ir"

// moduleBuilder assembles a SPIR-V word stream one instruction at a time,
// for tests that want to drive DecodeWords end to end rather than poke at
// decoder internals directly.
type moduleBuilder struct {
	words []uint32
}

func newModuleBuilder() *moduleBuilder {
	b := &moduleBuilder{}
	b.words = append(b.words, MagicNumber, 0x00010000, 0, 0, 0)
	return b
}

func (b *moduleBuilder) inst(op opCode, operands ...uint32) *moduleBuilder {
	header := uint32(uint16(1+len(operands)))<<16 | uint32(op)
	b.words = append(b.words, header)
	b.words = append(b.words, operands...)
	return b
}

// raw appends a literal header word followed by operands, for tests that
// need to construct a malformed instruction a normal inst() call couldn't
// produce (a bogus word count, for instance).
func (b *moduleBuilder) raw(words ...uint32) *moduleBuilder {
	b.words = append(b.words, words...)
	return b
}

func (b *moduleBuilder) done() []uint32 {
	return b.words
}

// encodeString packs s into SPIR-V's NUL-terminated, word-padded literal
// string operand encoding.
func encodeString(s string) []uint32 {
	raw := []byte(s)
	raw = append(raw, 0)
	for len(raw)%4 != 0 {
		raw = append(raw, 0)
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = uint32(raw[i*4]) | uint32(raw[i*4+1])<<8 | uint32(raw[i*4+2])<<16 | uint32(raw[i*4+3])<<24
	}
	return words
}

// minimalVertexShader builds a one-function vertex shader that writes a
// constant clip-space position to a BuiltIn(Position) output, the smallest
// module that exercises capability, memory model, entry point, decoration,
// float scalar, vec4, output-pointer, void and function types, a constant,
// and a function body with OpCompositeConstruct/OpStore/OpReturn.
//
// id assignments: 1=main function, 2=outPosition variable, 3=float type,
// 4=vec4 type, 5=output-pointer type, 6=void type, 7=void() function type,
// 8=the constant 1.0, 9=entry block label, 10=the composed vec4.
func minimalVertexShader() []uint32 {
	b := newModuleBuilder()
	b.inst(opCapability, uint32(capabilityShader))
	b.inst(opMemoryModel, uint32(addressingModelLogical), uint32(memoryModelGLSL450))
	nameWords := encodeString("main")
	b.inst(opEntryPoint, append([]uint32{0, 1}, append(nameWords, 2)...)...)
	b.inst(opDecorate, 2, uint32(decorationBuiltIn), 0)
	b.inst(opTypeFloat, 3, 32)
	b.inst(opTypeVector, 4, 3, 4)
	b.inst(opTypePointer, 5, uint32(ir.StorageClassOutput), 4)
	b.inst(opVariable, 5, 2, uint32(ir.StorageClassOutput))
	b.inst(opTypeVoid, 6)
	b.inst(opTypeFunction, 7, 6)
	b.inst(opConstant, 3, 8, 0x3F800000)
	b.inst(opFunction, 6, 1, 0, 7)
	b.inst(opLabel, 9)
	b.inst(opCompositeConstruct, 4, 10, 8, 8, 8, 8)
	b.inst(opStore, 2, 10)
	b.inst(opReturn)
	b.inst(opFunctionEnd)
	return b.done()
}
