package spirvfront

import "github.com/vkshade/spirvfront/ir"

// decodeBlockInstruction folds one in-body instruction into fs's
// expression or statement list. Unlike the top-level dispatcher, which
// skips opcodes outside its tracked set, an unrecognized opcode inside
// a function body is fatal: this decoder's statement model has no
// representation for control flow, so any opcode it doesn't know is a
// module it cannot faithfully lower rather than one it can politely
// ignore.
func (d *Decoder) decodeBlockInstruction(fs *funcState, inst *instruction) error {
	switch opCode(inst.Opcode) {
	case opAccessChain:
		return d.decodeAccessChain(fs, inst)
	case opLoad:
		return d.decodeLoad(fs, inst)
	case opStore:
		return d.decodeStore(fs, inst)
	case opCompositeConstruct:
		return d.decodeCompositeConstruct(fs, inst)
	case opCompositeExtract:
		return d.decodeCompositeExtract(fs, inst)
	case opVectorTimesScalar, opMatrixTimesVector:
		return d.decodeMul(fs, inst)
	case opSampledImage:
		return d.decodeSampledImage(fs, inst)
	case opImageSampleImplicitLod:
		return d.decodeImageSample(fs, inst)
	case opReturn:
		fs.fn.Body = append(fs.fn.Body, ir.Statement{Kind: ir.StmtReturn{}})
		return nil
	case opReturnValue:
		if err := inst.expect(1); err != nil {
			return err
		}
		h, err := d.operandExpression(fs, inst, inst.Operands[0])
		if err != nil {
			return err
		}
		fs.fn.Body = append(fs.fn.Body, ir.Statement{Kind: ir.StmtReturn{Value: &h}})
		return nil
	default:
		return newError(ErrUnknownOpcode, inst.Offset, "opcode %d is not part of this decoder's supported function-body instruction set", inst.Opcode)
	}
}

// operandExpression resolves an operand id to an already-decoded
// expression. Every module-scope global and constant is seeded into
// fs.lookupExpression at function entry (see seedExpressionStore), so
// the only ids left unresolved here are ones no instruction in this
// function has defined at all.
func (d *Decoder) operandExpression(fs *funcState, inst *instruction, id uint32) (ir.ExpressionHandle, error) {
	if h, ok := fs.lookupExpression[id]; ok {
		return h, nil
	}
	return 0, newError(ErrUnresolvedID, inst.Offset, "expression operand id %d", id)
}

// idTypeOf returns the IR type associated with a SPIR-V id inside the
// function being decoded, if the decoder was able to determine one.
// Expressions whose shape the type table can't represent exactly (a
// step into a vector or matrix, for instance) leave no entry; callers
// treat a missing entry as "type unknown" rather than an error.
func (d *Decoder) idTypeOf(fs *funcState, id uint32) (ir.TypeHandle, bool) {
	t, ok := fs.idType[id]
	return t, ok
}

// constIndex reads a constant's value as a signed integer index, accepting
// either an unsigned or signed integer constant; spec invariant 5 only
// requires the index to resolve to a constant of integer kind, not any
// particular signedness.
func constIndex(inner ir.ConstantInner) (int64, bool) {
	switch v := inner.(type) {
	case ir.ConstUint:
		return int64(v), true
	case ir.ConstSint:
		return int64(v), true
	default:
		return 0, false
	}
}

func (d *Decoder) decodeAccessChain(fs *funcState, inst *instruction) error {
	if err := inst.expect(3); err != nil {
		return err
	}
	id := inst.Operands[1]
	baseID := inst.Operands[2]
	base, err := d.operandExpression(fs, inst, baseID)
	if err != nil {
		return err
	}

	curType, known := d.idTypeOf(fs, baseID)

	for _, indexID := range inst.Operands[3:] {
		if known {
			if st, isStruct := d.module.Type(curType).Inner.(ir.StructType); isStruct {
				ch, isConst := d.lookupConstant[indexID]
				if !isConst {
					return newError(ErrInvalidAccessIndex, inst.Offset, "struct member index into id %d must be a constant", indexID)
				}
				n, isInt := constIndex(d.module.Constant(ch).Inner)
				if !isInt {
					return newError(ErrInvalidAccessIndex, inst.Offset, "struct member index into id %d must be an integer constant", indexID)
				}
				if n < 0 || int(n) >= len(st.Members) {
					return newError(ErrInvalidAccessIndex, inst.Offset, "member index %d out of range for struct with %d members", n, len(st.Members))
				}
				base = fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprAccessIndex{Base: base, Index: uint32(n)}})
				curType = st.Members[n].Type
				continue
			}
		}

		if ch, ok := d.lookupConstant[indexID]; ok {
			if n, ok := constIndex(d.module.Constant(ch).Inner); ok && n >= 0 {
				base = fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprAccessIndex{Base: base, Index: uint32(n)}})
				if known {
					if at, isArray := d.module.Type(curType).Inner.(ir.ArrayType); isArray {
						curType = at.Base
					} else {
						known = false
					}
				}
				continue
			}
		}
		idxExpr, err := d.operandExpression(fs, inst, indexID)
		if err != nil {
			return err
		}
		base = fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprAccess{Base: base, Index: idxExpr}})
		known = false
	}

	fs.lookupExpression[id] = base
	if known {
		fs.idType[id] = curType
	}
	return nil
}

func (d *Decoder) decodeLoad(fs *funcState, inst *instruction) error {
	if err := inst.expect(3); err != nil {
		return err
	}
	resultTypeID := inst.Operands[0]
	id := inst.Operands[1]
	pointerID := inst.Operands[2]
	ptr, err := d.operandExpression(fs, inst, pointerID)
	if err != nil {
		return err
	}
	resultType, err := d.resolveType(inst, resultTypeID)
	if err != nil {
		return err
	}
	if pointeeType, ok := d.idTypeOf(fs, pointerID); ok && pointeeType != resultType {
		return newError(ErrTypeMismatch, inst.Offset, "load result type disagrees with pointer's pointee type")
	}
	h := fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprLoad{Pointer: ptr}})
	fs.lookupExpression[id] = h
	fs.idType[id] = resultType
	return nil
}

func (d *Decoder) decodeStore(fs *funcState, inst *instruction) error {
	if err := inst.expect(2); err != nil {
		return err
	}
	pointerID := inst.Operands[0]
	valueID := inst.Operands[1]
	ptr, err := d.operandExpression(fs, inst, pointerID)
	if err != nil {
		return err
	}
	val, err := d.operandExpression(fs, inst, valueID)
	if err != nil {
		return err
	}
	if pointeeType, ok := d.idTypeOf(fs, pointerID); ok {
		if valueType, ok := d.idTypeOf(fs, valueID); ok && valueType != pointeeType {
			return newError(ErrTypeMismatch, inst.Offset, "stored value type disagrees with pointer's pointee type")
		}
	}
	fs.fn.Body = append(fs.fn.Body, ir.Statement{Kind: ir.StmtStore{Pointer: ptr, Value: val}})
	return nil
}

func (d *Decoder) decodeCompositeConstruct(fs *funcState, inst *instruction) error {
	if err := inst.expect(2); err != nil {
		return err
	}
	typeID := inst.Operands[0]
	id := inst.Operands[1]
	typeHandle, err := d.resolveType(inst, typeID)
	if err != nil {
		return err
	}
	components := make([]ir.ExpressionHandle, 0, len(inst.Operands)-2)
	for _, compID := range inst.Operands[2:] {
		h, err := d.operandExpression(fs, inst, compID)
		if err != nil {
			return err
		}
		components = append(components, h)
	}
	h := fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprCompose{Type: typeHandle, Components: components}})
	fs.lookupExpression[id] = h
	fs.idType[id] = typeHandle
	return nil
}

func (d *Decoder) decodeCompositeExtract(fs *funcState, inst *instruction) error {
	if err := inst.expect(3); err != nil {
		return err
	}
	id := inst.Operands[1]
	baseID := inst.Operands[2]
	base, err := d.operandExpression(fs, inst, baseID)
	if err != nil {
		return err
	}

	curType, known := d.idTypeOf(fs, baseID)
	for _, idx := range inst.Operands[3:] {
		base = fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprAccessIndex{Base: base, Index: idx}})
		if !known {
			continue
		}
		if st, isStruct := d.module.Type(curType).Inner.(ir.StructType); isStruct {
			if int(idx) >= len(st.Members) {
				return newError(ErrInvalidAccessIndex, inst.Offset, "member index %d out of range for struct with %d members", idx, len(st.Members))
			}
			curType = st.Members[idx].Type
			continue
		}
		if at, isArray := d.module.Type(curType).Inner.(ir.ArrayType); isArray {
			curType = at.Base
			continue
		}
		known = false
	}
	fs.lookupExpression[id] = base
	if known {
		fs.idType[id] = curType
	}
	return nil
}

func (d *Decoder) decodeMul(fs *funcState, inst *instruction) error {
	if err := inst.expect(4); err != nil {
		return err
	}
	resultTypeID := inst.Operands[0]
	id := inst.Operands[1]
	left, err := d.operandExpression(fs, inst, inst.Operands[2])
	if err != nil {
		return err
	}
	right, err := d.operandExpression(fs, inst, inst.Operands[3])
	if err != nil {
		return err
	}
	resultType, err := d.resolveType(inst, resultTypeID)
	if err != nil {
		return err
	}
	if _, ok := d.module.Type(resultType).Inner.(ir.VectorType); !ok {
		return newError(ErrTypeMismatch, inst.Offset, "multiply result type %d is not a vector", resultTypeID)
	}
	h := fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprMul{Left: left, Right: right}})
	fs.lookupExpression[id] = h
	fs.idType[id] = resultType
	return nil
}

func (d *Decoder) decodeSampledImage(fs *funcState, inst *instruction) error {
	if err := inst.expect(4); err != nil {
		return err
	}
	id := inst.Operands[1]
	image, err := d.operandExpression(fs, inst, inst.Operands[2])
	if err != nil {
		return err
	}
	sampler, err := d.operandExpression(fs, inst, inst.Operands[3])
	if err != nil {
		return err
	}
	fs.lookupSampledImage[id] = sampledImagePair{Image: image, Sampler: sampler}
	return nil
}

func (d *Decoder) decodeImageSample(fs *funcState, inst *instruction) error {
	if err := inst.expect(4); err != nil {
		return err
	}
	resultTypeID := inst.Operands[0]
	id := inst.Operands[1]
	sampledImageID := inst.Operands[2]
	coordID := inst.Operands[3]

	pair, ok := fs.lookupSampledImage[sampledImageID]
	if !ok {
		return newError(ErrUnresolvedID, inst.Offset, "sampled image id %d", sampledImageID)
	}
	coord, err := d.operandExpression(fs, inst, coordID)
	if err != nil {
		return err
	}
	h := fs.fn.AppendExpression(ir.Expression{Kind: ir.ExprImageSample{
		Image: pair.Image, Sampler: pair.Sampler, Coordinate: coord,
	}})
	fs.lookupExpression[id] = h
	if resultType, err := d.resolveType(inst, resultTypeID); err == nil {
		fs.idType[id] = resultType
	}
	return nil
}
