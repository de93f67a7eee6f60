package spirvfront

import (
	"encoding/binary"
	"unicode/utf8"
)

// wordReader walks a SPIR-V module one 32-bit word at a time. A byte
// input is decoded into a new word slice up front; a word input is used
// as given, without copying.
type wordReader struct {
	words  []uint32
	offset int
}

func newWordReaderFromWords(words []uint32) *wordReader {
	return &wordReader{words: words}
}

func newWordReaderFromBytes(data []byte) (*wordReader, error) {
	if len(data)%4 != 0 {
		return nil, newError(ErrInvalidWordCount, 0, "byte length %d is not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return newWordReaderFromWords(words), nil
}

func (r *wordReader) remaining() int {
	return len(r.words) - r.offset
}

func (r *wordReader) atEnd() bool {
	return r.offset >= len(r.words)
}

// next returns the next word and advances the cursor.
func (r *wordReader) next() (uint32, error) {
	if r.atEnd() {
		return 0, newError(ErrInvalidWordCount, r.offset, "unexpected end of stream")
	}
	w := r.words[r.offset]
	r.offset++
	return w, nil
}

// instruction is one decoded SPIR-V instruction header plus its operand
// words, not including the opcode/word-count word itself.
type instruction struct {
	Opcode    uint16
	WordCount uint16
	Operands  []uint32
	Offset    int // word offset of the opcode word
}

// expect returns an error unless the instruction carries at least n
// operand words beyond the opcode/word-count word.
func (inst *instruction) expect(n int) error {
	if len(inst.Operands) < n {
		return newError(ErrInvalidOperandCount, inst.Offset,
			"opcode %d requires %d operand words, got %d", inst.Opcode, n, len(inst.Operands))
	}
	return nil
}

// nextInstruction reads one instruction's header word, validates its
// word count against the remaining stream, and collects its operands.
func (r *wordReader) nextInstruction() (*instruction, error) {
	offset := r.offset
	header, err := r.next()
	if err != nil {
		return nil, err
	}

	wordCount := uint16(header >> 16)
	opcode := uint16(header & 0xFFFF)
	if wordCount == 0 {
		return nil, newError(ErrZeroWordCount, offset, "opcode %d", opcode)
	}
	if opcode > uint16(maxOpCode) {
		return nil, newError(ErrUnknownOpcode, offset, "opcode %d exceeds the supported opcode table", opcode)
	}

	operandCount := int(wordCount) - 1
	if r.remaining() < operandCount {
		return nil, newError(ErrTruncatedInstruction, offset,
			"opcode %d wants %d operand words, only %d remain", opcode, operandCount, r.remaining())
	}

	operands := make([]uint32, operandCount)
	for i := range operands {
		operands[i], _ = r.next()
	}

	return &instruction{Opcode: opcode, WordCount: wordCount, Operands: operands, Offset: offset}, nil
}

// nextString decodes a NUL-terminated UTF-8 string packed into inst's
// operand words starting at index start, little-endian 4-bytes-per-word
// as SPIR-V requires. It returns the string and the number of operand
// words consumed (including the one holding the terminating NUL). It
// fails ErrBadString if no NUL byte appears before the instruction's
// operands are exhausted, or if the bytes preceding the NUL are not
// valid UTF-8.
func nextString(inst *instruction, start int) (string, int, error) {
	operands := inst.Operands
	buf := make([]byte, 0, (len(operands)-start)*4)
	consumed := 0
	terminated := false
	for i := start; i < len(operands); i++ {
		w := operands[i]
		consumed++
		b := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, c := range b {
			if c == 0 {
				terminated = true
				break
			}
			buf = append(buf, c)
		}
		if terminated {
			break
		}
	}
	if !terminated {
		return "", 0, newError(ErrBadString, inst.Offset, "string starting at operand %d has no terminating NUL within the instruction's declared word count", start)
	}
	if !utf8.Valid(buf) {
		return "", 0, newError(ErrBadString, inst.Offset, "string starting at operand %d is not valid UTF-8", start)
	}
	return string(buf), consumed, nil
}
