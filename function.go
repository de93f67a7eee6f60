package spirvfront

import "github.com/vkshade/spirvfront/ir"

// funcState is the per-function bookkeeping that only lives for the
// duration of decoding one OpFunction..OpFunctionEnd block. It has no
// module-level lifetime, unlike Decoder's lookup tables.
type funcState struct {
	fn *ir.Function

	lookupExpression   map[uint32]ir.ExpressionHandle
	lookupSampledImage map[uint32]sampledImagePair
	localVariables     map[uint32]ir.ExpressionHandle

	// idType records the IR type each SPIR-V id currently resolves to,
	// for ids whose type the decoder was able to determine: pointers
	// carry their pointee type, values carry their own type. Access
	// chains consult it to step through struct members and array
	// elements without re-deriving the base chain's type from scratch.
	idType map[uint32]ir.TypeHandle
}

type sampledImagePair struct {
	Image   ir.ExpressionHandle
	Sampler ir.ExpressionHandle
}

func (d *Decoder) handleFunction(inst *instruction) error {
	if err := inst.expect(4); err != nil {
		return err
	}
	returnTypeID := inst.Operands[0]
	id := inst.Operands[1]
	controlWord := inst.Operands[2]
	typeID := inst.Operands[3]

	if err := d.defineID(id, inst); err != nil {
		return err
	}

	control := ir.FunctionControl(controlWord)
	if control&^(ir.FunctionControlInline|ir.FunctionControlDontInline|ir.FunctionControlPure|ir.FunctionControlConst) != 0 {
		return newError(ErrUnsupportedFunctionControl, inst.Offset, "control word 0x%x", controlWord)
	}

	funcType, ok := d.lookupFunctionType[typeID]
	if !ok {
		return newError(ErrUnresolvedID, inst.Offset, "function type id %d", typeID)
	}
	if funcType.ReturnTypeID != returnTypeID {
		return newError(ErrTypeMismatch, inst.Offset, "function %d's return type disagrees with its function type", id)
	}

	var returnType *ir.TypeHandle
	if !d.lookupVoidType[returnTypeID] {
		h, err := d.resolveType(inst, returnTypeID)
		if err != nil {
			return err
		}
		returnType = &h
	}

	fn := &ir.Function{Control: control}
	fs := &funcState{
		fn:                 fn,
		lookupExpression:   make(map[uint32]ir.ExpressionHandle),
		lookupSampledImage: make(map[uint32]sampledImagePair),
		localVariables:     make(map[uint32]ir.ExpressionHandle),
		idType:             make(map[uint32]ir.TypeHandle),
	}
	d.seedExpressionStore(fs)

	for range funcType.ParameterTypeIDs {
		paramInst, err := d.reader.nextInstruction()
		if err != nil {
			return err
		}
		if opCode(paramInst.Opcode) != opFunctionParameter {
			return newError(ErrInvalidParameter, paramInst.Offset,
				"function %d declares %d parameters but found opcode %d", id, len(funcType.ParameterTypeIDs), paramInst.Opcode)
		}
		if err := paramInst.expect(2); err != nil {
			return err
		}
		paramTypeID := paramInst.Operands[0]
		paramID := paramInst.Operands[1]
		paramHandle, err := d.resolveType(paramInst, paramTypeID)
		if err != nil {
			return err
		}
		fn.ParameterTypes = append(fn.ParameterTypes, paramHandle)
		h := fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprFunctionParameter{Index: uint32(len(fn.ParameterTypes) - 1)}})
		fs.lookupExpression[paramID] = h
		fs.idType[paramID] = paramHandle
	}
	fn.ReturnType = returnType

	if err := d.decodeFunctionBody(fs); err != nil {
		return err
	}

	h := d.module.AppendFunction(*fs.fn)
	d.lookupFunction[id] = h
	return nil
}

// seedExpressionStore populates fs's expression store with a
// GlobalVariable expression for every module-scope global and a
// Constant expression for every module-scope constant, in declaration
// order, before any parameter or body instruction is read. Every
// function body sees the whole module's globals and constants as
// pre-resolved expressions regardless of whether it references them.
func (d *Decoder) seedExpressionStore(fs *funcState) {
	for _, id := range d.variableOrder {
		gv := d.lookupVariable[id]
		h := fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprGlobalVariable{Variable: gv}})
		fs.lookupExpression[id] = h
		fs.idType[id] = d.module.GlobalVariable(gv).Type
	}
	for _, id := range d.constantOrder {
		ch := d.lookupConstant[id]
		h := fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprConstant{Constant: ch}})
		fs.lookupExpression[id] = h
		fs.idType[id] = d.module.Constant(ch).Type
	}
}

// decodeFunctionBody consumes instructions from d.reader starting at the
// function's entry label and ending at (and including) OpFunctionEnd.
func (d *Decoder) decodeFunctionBody(fs *funcState) error {
	for {
		inst, err := d.reader.nextInstruction()
		if err != nil {
			return err
		}
		switch opCode(inst.Opcode) {
		case opFunctionEnd:
			return nil
		case opLabel:
			continue
		case opFunctionParameter:
			return newError(ErrInvalidParameter, inst.Offset, "OpFunctionParameter beyond the function type's parameter count")
		case opVariable:
			if err := d.handleLocalVariable(fs, inst); err != nil {
				return err
			}
		default:
			if err := d.decodeBlockInstruction(fs, inst); err != nil {
				return err
			}
		}
	}
}

func (d *Decoder) handleLocalVariable(fs *funcState, inst *instruction) error {
	if err := inst.expect(3); err != nil {
		return err
	}
	typeID := inst.Operands[0]
	id := inst.Operands[1]

	ptrHandle, err := d.resolveType(inst, typeID)
	if err != nil {
		return err
	}
	ptr, ok := d.module.Type(ptrHandle).Inner.(ir.PointerType)
	if !ok {
		return newError(ErrTypeMismatch, inst.Offset, "local variable %d's type %d is not a pointer", id, typeID)
	}

	h := fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprLocalVariable{Type: ptr.Base}})
	fs.lookupExpression[id] = h
	fs.localVariables[id] = h
	fs.idType[id] = ptr.Base
	return nil
}
