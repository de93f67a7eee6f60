package spirvfront

import (
	"testing"

	"github.com/vkshade/spirvfront/ir"
)

func builtInPtr(b ir.BuiltIn) *ir.BuiltIn {
	return &b
}

func TestHandleType_NarrowUnsignedWidthAllowed(t *testing.T) {
	d := newDecoder()
	inst := &instruction{Opcode: uint16(opTypeInt), Operands: []uint32{1, 8, 0}}
	if err := d.handleType(inst); err != nil {
		t.Fatalf("handleType: %v", err)
	}
	scalar, ok := d.module.Type(d.lookupType[1].Handle).Inner.(ir.ScalarType)
	if !ok || scalar.Kind != ir.ScalarUint || scalar.Width != 8 {
		t.Errorf("unexpected scalar type: %+v ok=%v", scalar, ok)
	}
}

func TestHandleType_NarrowSignedWidthRejected(t *testing.T) {
	d := newDecoder()
	inst := &instruction{Opcode: uint16(opTypeInt), Operands: []uint32{1, 16, 1}}
	err := d.handleType(inst)
	if errKind(t, err) != ErrInvalidTypeWidth {
		t.Fatalf("got %v", err)
	}
}

func TestHandleType_UnsupportedStorageClassOnPointer(t *testing.T) {
	d := newDecoder()
	if err := d.handleType(&instruction{Opcode: uint16(opTypeFloat), Operands: []uint32{1, 32}}); err != nil {
		t.Fatalf("defining base type: %v", err)
	}
	err := d.handleType(&instruction{Opcode: uint16(opTypePointer), Operands: []uint32{2, 999, 1}})
	if errKind(t, err) != ErrUnsupportedStorageClass {
		t.Fatalf("got %v", err)
	}
}

func TestHandleConstant_WideSintUsesFull64Bits(t *testing.T) {
	d := newDecoder()
	if err := d.handleType(&instruction{Opcode: uint16(opTypeInt), Operands: []uint32{1, 64, 1}}); err != nil {
		t.Fatalf("int64 type: %v", err)
	}
	// low=0, high=1: a 32-bit-truncating decode would read this as 0; the
	// correct 64-bit value is 4294967296.
	if err := d.handleConstant(&instruction{Opcode: uint16(opConstant), Operands: []uint32{1, 2, 0, 1}}); err != nil {
		t.Fatalf("handleConstant: %v", err)
	}
	h, ok := d.lookupConstant[2]
	if !ok {
		t.Fatalf("expected constant id 2 to be registered")
	}
	got, ok := d.module.Constant(h).Inner.(ir.ConstSint)
	if !ok {
		t.Fatalf("expected a ConstSint, got %T", d.module.Constant(h).Inner)
	}
	if got != ir.ConstSint(4294967296) {
		t.Errorf("got %d, want 4294967296", got)
	}
}

func TestHandleVariable_StructBindingDistributedAcrossMembers(t *testing.T) {
	d := newDecoder()
	if err := d.handleType(&instruction{Opcode: uint16(opTypeFloat), Operands: []uint32{1, 32}}); err != nil {
		t.Fatalf("float type: %v", err)
	}
	if err := d.handleType(&instruction{Opcode: uint16(opTypeVector), Operands: []uint32{2, 1, 4}}); err != nil {
		t.Fatalf("vector type: %v", err)
	}
	d.memberDecorationFor(3, 0).BuiltIn = builtInPtr(ir.BuiltInPosition)
	if err := d.handleType(&instruction{Opcode: uint16(opTypeStruct), Operands: []uint32{3, 2}}); err != nil {
		t.Fatalf("struct type: %v", err)
	}
	structTy := d.module.Type(d.lookupType[3].Handle).Inner.(ir.StructType)
	if structTy.Members[0].Binding == nil {
		t.Fatalf("expected member 0 to carry a distributed binding")
	}

	if err := d.handleType(&instruction{Opcode: uint16(opTypePointer), Operands: []uint32{4, uint32(ir.StorageClassOutput), 3}}); err != nil {
		t.Fatalf("pointer type: %v", err)
	}
	if err := d.handleVariable(&instruction{Opcode: uint16(opVariable), Operands: []uint32{4, 5, uint32(ir.StorageClassOutput)}}); err != nil {
		t.Fatalf("handleVariable: %v", err)
	}
	if _, ok := d.lookupVariable[5]; !ok {
		t.Errorf("expected variable id 5 to be registered")
	}
}

func TestHandleVariable_StructMemberMissingBinding(t *testing.T) {
	d := newDecoder()
	if err := d.handleType(&instruction{Opcode: uint16(opTypeFloat), Operands: []uint32{1, 32}}); err != nil {
		t.Fatalf("float type: %v", err)
	}
	if err := d.handleType(&instruction{Opcode: uint16(opTypeVector), Operands: []uint32{2, 1, 4}}); err != nil {
		t.Fatalf("vector type: %v", err)
	}
	// Two members, only the first decorated.
	d.memberDecorationFor(3, 0).BuiltIn = builtInPtr(ir.BuiltInPosition)
	if err := d.handleType(&instruction{Opcode: uint16(opTypeStruct), Operands: []uint32{3, 2, 2}}); err != nil {
		t.Fatalf("struct type: %v", err)
	}
	if err := d.handleType(&instruction{Opcode: uint16(opTypePointer), Operands: []uint32{4, uint32(ir.StorageClassOutput), 3}}); err != nil {
		t.Fatalf("pointer type: %v", err)
	}
	err := d.handleVariable(&instruction{Opcode: uint16(opVariable), Operands: []uint32{4, 5, uint32(ir.StorageClassOutput)}})
	if errKind(t, err) != ErrInvalidBinding {
		t.Fatalf("got %v", err)
	}
}
