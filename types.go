package spirvfront

import (
	"math"

	"github.com/vkshade/spirvfront/ir"
)

func (d *Decoder) defineType(id uint32, t ir.Type, inst *instruction) (ir.TypeHandle, error) {
	if err := d.defineID(id, inst); err != nil {
		return 0, err
	}
	h := d.module.AppendType(t)
	d.lookupType[id] = typeLookup{Handle: h}
	return h, nil
}

func (d *Decoder) resolveType(inst *instruction, id uint32) (ir.TypeHandle, error) {
	lk, ok := d.lookupType[id]
	if !ok {
		return 0, newError(ErrUnresolvedID, inst.Offset, "type id %d", id)
	}
	return lk.Handle, nil
}

func (d *Decoder) handleType(inst *instruction) error {
	switch opCode(inst.Opcode) {
	case opTypeVoid:
		if err := inst.expect(1); err != nil {
			return err
		}
		if err := d.defineID(inst.Operands[0], inst); err != nil {
			return err
		}
		d.lookupVoidType[inst.Operands[0]] = true
		return nil

	case opTypeSampler:
		if err := inst.expect(1); err != nil {
			return err
		}
		if _, err := d.defineType(inst.Operands[0], ir.Type{Inner: ir.SamplerType{}}, inst); err != nil {
			return err
		}
		return nil

	case opTypeBool:
		if err := inst.expect(1); err != nil {
			return err
		}
		return newError(ErrUnsupportedType, inst.Offset, "boolean types are not part of this decoder's supported type set")

	case opTypeInt, opTypeFloat:
		if err := inst.expect(2); err != nil {
			return err
		}
		id := inst.Operands[0]
		width := uint8(inst.Operands[1])
		kind := ir.ScalarFloat
		if opCode(inst.Opcode) == opTypeInt {
			if err := inst.expect(3); err != nil {
				return err
			}
			if inst.Operands[2] == 1 {
				kind = ir.ScalarSint
			} else {
				kind = ir.ScalarUint
			}
		}
		if kind != ir.ScalarUint && width < 32 {
			return newError(ErrInvalidTypeWidth, inst.Offset, "scalar width %d below 32 bits", width)
		}
		if _, err := d.defineType(id, ir.Type{Inner: ir.ScalarType{Kind: kind, Width: width}}, inst); err != nil {
			return err
		}
		return nil

	case opTypeVector:
		if err := inst.expect(3); err != nil {
			return err
		}
		id := inst.Operands[0]
		compTypeID := inst.Operands[1]
		size := ir.VectorSize(inst.Operands[2])
		compHandle, err := d.resolveType(inst, compTypeID)
		if err != nil {
			return err
		}
		scalar, ok := d.module.Type(compHandle).Inner.(ir.ScalarType)
		if !ok {
			return newError(ErrTypeMismatch, inst.Offset, "vector component type %d is not scalar", compTypeID)
		}
		if _, err := d.defineType(id, ir.Type{Inner: ir.VectorType{Size: size, Scalar: scalar}}, inst); err != nil {
			return err
		}
		return nil

	case opTypeMatrix:
		if err := inst.expect(3); err != nil {
			return err
		}
		id := inst.Operands[0]
		colTypeID := inst.Operands[1]
		cols := ir.VectorSize(inst.Operands[2])
		colHandle, err := d.resolveType(inst, colTypeID)
		if err != nil {
			return err
		}
		vec, ok := d.module.Type(colHandle).Inner.(ir.VectorType)
		if !ok {
			return newError(ErrTypeMismatch, inst.Offset, "matrix column type %d is not a vector", colTypeID)
		}
		if _, err := d.defineType(id, ir.Type{Inner: ir.MatrixType{Columns: cols, Rows: vec.Size, Scalar: vec.Scalar}}, inst); err != nil {
			return err
		}
		return nil

	case opTypeArray:
		if err := inst.expect(3); err != nil {
			return err
		}
		id := inst.Operands[0]
		elemTypeID := inst.Operands[1]
		lengthConstID := inst.Operands[2]
		elemHandle, err := d.resolveType(inst, elemTypeID)
		if err != nil {
			return err
		}
		lengthHandle, ok := d.lookupConstant[lengthConstID]
		if !ok {
			return newError(ErrUnresolvedID, inst.Offset, "array length constant id %d", lengthConstID)
		}
		length, ok := d.module.Constant(lengthHandle).Inner.(ir.ConstUint)
		if !ok {
			return newError(ErrTypeMismatch, inst.Offset, "array length constant %d is not an unsigned integer", lengthConstID)
		}
		n := uint32(length)
		if _, err := d.defineType(id, ir.Type{Inner: ir.ArrayType{Base: elemHandle, Size: ir.ArraySize{Constant: &n}}}, inst); err != nil {
			return err
		}
		return nil

	case opTypeRuntimeArray:
		if err := inst.expect(2); err != nil {
			return err
		}
		id := inst.Operands[0]
		elemHandle, err := d.resolveType(inst, inst.Operands[1])
		if err != nil {
			return err
		}
		if _, err := d.defineType(id, ir.Type{Inner: ir.ArrayType{Base: elemHandle, Size: ir.ArraySize{}}}, inst); err != nil {
			return err
		}
		return nil

	case opTypeStruct:
		if err := inst.expect(1); err != nil {
			return err
		}
		id := inst.Operands[0]
		members := make([]ir.StructMember, 0, len(inst.Operands)-1)
		for i, memberTypeID := range inst.Operands[1:] {
			memberHandle, err := d.resolveType(inst, memberTypeID)
			if err != nil {
				return err
			}
			d.lookupMemberTypeID[memberKey{id: id, member: uint32(i)}] = memberTypeID
			var binding *ir.Binding
			if dec, ok := d.futureMemberDecor[memberKey{id: id, member: uint32(i)}]; ok {
				binding = dec.binding()
				delete(d.futureMemberDecor, memberKey{id: id, member: uint32(i)})
			}
			members = append(members, ir.StructMember{Type: memberHandle, Binding: binding})
		}
		if _, err := d.defineType(id, ir.Type{Inner: ir.StructType{Members: members}}, inst); err != nil {
			return err
		}
		return nil

	case opTypePointer:
		if err := inst.expect(3); err != nil {
			return err
		}
		id := inst.Operands[0]
		class := ir.StorageClass(inst.Operands[1])
		if !supportedStorageClasses[class] {
			return newError(ErrUnsupportedStorageClass, inst.Offset, "storage class %d", class)
		}
		baseHandle, err := d.resolveType(inst, inst.Operands[2])
		if err != nil {
			return err
		}
		if _, err := d.defineType(id, ir.Type{Inner: ir.PointerType{Base: baseHandle, Class: class}}, inst); err != nil {
			return err
		}
		return nil

	case opTypeFunction:
		if err := inst.expect(2); err != nil {
			return err
		}
		id := inst.Operands[0]
		if err := d.defineID(id, inst); err != nil {
			return err
		}
		returnTypeID := inst.Operands[1]
		paramTypeIDs := append([]uint32{}, inst.Operands[2:]...)
		d.lookupFunctionType[id] = functionTypeInfo{ReturnTypeID: returnTypeID, ParameterTypeIDs: paramTypeIDs}
		return nil

	case opTypeImage:
		return d.handleTypeImage(inst)

	case opTypeSampledImage:
		if err := inst.expect(2); err != nil {
			return err
		}
		id := inst.Operands[0]
		imageID := inst.Operands[1]
		imageHandle, err := d.resolveType(inst, imageID)
		if err != nil {
			return err
		}
		if err := d.defineID(id, inst); err != nil {
			return err
		}
		// A sampled-image type aliases its underlying image type rather
		// than allocating a distinct IR type.
		d.lookupType[id] = typeLookup{Handle: imageHandle}
		return nil
	}

	return newError(ErrUnknownOpcode, inst.Offset, "opcode %d not a recognized type instruction", inst.Opcode)
}

func (d *Decoder) handleTypeImage(inst *instruction) error {
	if err := inst.expect(7); err != nil {
		return err
	}
	id := inst.Operands[0]
	sampledTypeID := inst.Operands[1]
	dim := ir.ImageDim(inst.Operands[2])
	if dim > ir.DimSubpassData {
		return newError(ErrUnsupportedImageDim, inst.Offset, "image dim %d", dim)
	}
	arrayed := inst.Operands[4] != 0
	multisampled := inst.Operands[5] != 0
	sampled := inst.Operands[6] != 0

	sampledHandle, err := d.resolveType(inst, sampledTypeID)
	if err != nil {
		return err
	}

	var flags ir.ImageFlags
	if arrayed {
		flags |= ir.ImageArrayed
	}
	if multisampled {
		flags |= ir.ImageMultisampled
	}
	if sampled {
		flags |= ir.ImageSampled
	}
	if len(inst.Operands) > 8 {
		switch inst.Operands[8] {
		case 0:
			flags |= ir.ImageCanLoad
		case 1:
			flags |= ir.ImageCanStore
		case 2:
			flags |= ir.ImageCanLoad | ir.ImageCanStore
		}
	}

	if _, err := d.defineType(id, ir.Type{Inner: ir.ImageType{Base: sampledHandle, Dim: dim, Flags: flags}}, inst); err != nil {
		return err
	}
	return nil
}

func (d *Decoder) handleConstant(inst *instruction) error {
	if err := inst.expect(2); err != nil {
		return err
	}
	typeID := inst.Operands[0]
	id := inst.Operands[1]
	if err := d.defineID(id, inst); err != nil {
		return err
	}

	typeHandle, err := d.resolveType(inst, typeID)
	if err != nil {
		return err
	}
	scalar, ok := d.module.Type(typeHandle).Inner.(ir.ScalarType)
	if !ok {
		return newError(ErrTypeMismatch, inst.Offset, "constant %d's type is not scalar", id)
	}

	op := opCode(inst.Opcode)
	var inner ir.ConstantInner
	switch {
	case op == opConstantTrue || op == opSpecConstantTrue:
		inner = ir.ConstUint(1)
	case op == opConstantFalse || op == opSpecConstantFalse:
		inner = ir.ConstUint(0)
	default:
		words := inst.Operands[2:]
		wideWords := 1
		if scalar.Width > 32 {
			wideWords = 2
		}
		if len(words) < wideWords {
			return newError(ErrInvalidOperandCount, inst.Offset, "constant %d missing value words", id)
		}
		var bits uint64
		if wideWords == 2 {
			bits = uint64(words[0]) | uint64(words[1])<<32
		} else {
			bits = uint64(words[0])
		}
		switch scalar.Kind {
		case ir.ScalarFloat:
			if scalar.Width > 32 {
				inner = ir.ConstFloat(math.Float64frombits(bits))
			} else {
				inner = ir.ConstFloat(float64(math.Float32frombits(uint32(bits))))
			}
		case ir.ScalarSint:
			if scalar.Width > 32 {
				inner = ir.ConstSint(int64(bits))
			} else {
				inner = ir.ConstSint(int64(int32(uint32(bits))))
			}
		default:
			inner = ir.ConstUint(bits)
		}
	}

	h := d.module.AppendConstant(ir.Constant{Type: typeHandle, Inner: inner})
	d.lookupConstant[id] = h
	d.constantOrder = append(d.constantOrder, id)
	return nil
}

func (d *Decoder) handleVariable(inst *instruction) error {
	if err := inst.expect(3); err != nil {
		return err
	}
	typeID := inst.Operands[0]
	id := inst.Operands[1]
	class := ir.StorageClass(inst.Operands[2])

	// module-scope variables only; function-scope OpVariable is handled
	// by function.go as part of block decoding.
	if d.phase < phaseFunction {
		if err := d.defineID(id, inst); err != nil {
			return err
		}
		ptrHandle, err := d.resolveType(inst, typeID)
		if err != nil {
			return err
		}
		ptr, ok := d.module.Type(ptrHandle).Inner.(ir.PointerType)
		if !ok {
			return newError(ErrTypeMismatch, inst.Offset, "variable %d's type %d is not a pointer", id, typeID)
		}
		if !supportedStorageClasses[class] {
			return newError(ErrUnsupportedStorageClass, inst.Offset, "storage class %d", class)
		}

		var binding *ir.Binding
		if dec, ok := d.futureDecor[id]; ok {
			binding = dec.binding()
			delete(d.futureDecor, id)
		}

		// A pointer-to-struct interface variable distributes its binding
		// across its members instead of carrying one itself.
		if st, isStruct := d.module.Type(ptr.Base).Inner.(ir.StructType); isStruct &&
			(class == ir.StorageClassInput || class == ir.StorageClassOutput) {
			for i, m := range st.Members {
				if m.Binding == nil {
					return newError(ErrInvalidBinding, inst.Offset, "struct member %d of variable %d has no binding", i, id)
				}
			}
		} else if binding == nil {
			return newError(ErrInvalidBinding, inst.Offset, "variable %d has no binding", id)
		}

		var init *ir.ConstantHandle
		if len(inst.Operands) > 3 {
			ch, ok := d.lookupConstant[inst.Operands[3]]
			if !ok {
				return newError(ErrUnresolvedID, inst.Offset, "initializer constant id %d", inst.Operands[3])
			}
			init = &ch
		}

		h := d.module.AppendGlobalVariable(ir.GlobalVariable{
			Class:   class,
			Binding: binding,
			Type:    ptr.Base,
			Init:    init,
		})
		d.lookupVariable[id] = h
		d.variableOrder = append(d.variableOrder, id)
	}
	return nil
}
