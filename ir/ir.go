package ir

// Module is the decoded form of a SPIR-V binary: every collection is
// append-only and indexed by the handle returned from its Append method.
type Module struct {
	Header Header

	Types           []Type
	Constants       []Constant
	GlobalVariables []GlobalVariable
	Functions       []Function
	EntryPoints     []EntryPoint
}

// Header carries the SPIR-V module header fields that have no other home
// in the IR: version and generator magic. Bound and schema are consumed
// by the decoder and not retained.
type Header struct {
	VersionMajor uint8
	VersionMinor uint8
	Generator    uint32
}

// Handle types for referencing IR objects. A handle is a slice index into
// the owning Module collection; it is never reused or invalidated once
// issued.
type (
	TypeHandle           uint32
	FunctionHandle       uint32
	GlobalVariableHandle uint32
	ConstantHandle       uint32
	ExpressionHandle     uint32
)

func (m *Module) AppendType(t Type) TypeHandle {
	m.Types = append(m.Types, t)
	return TypeHandle(len(m.Types) - 1)
}

func (m *Module) Type(h TypeHandle) *Type {
	return &m.Types[h]
}

func (m *Module) AppendConstant(c Constant) ConstantHandle {
	m.Constants = append(m.Constants, c)
	return ConstantHandle(len(m.Constants) - 1)
}

func (m *Module) Constant(h ConstantHandle) *Constant {
	return &m.Constants[h]
}

func (m *Module) AppendGlobalVariable(g GlobalVariable) GlobalVariableHandle {
	m.GlobalVariables = append(m.GlobalVariables, g)
	return GlobalVariableHandle(len(m.GlobalVariables) - 1)
}

func (m *Module) GlobalVariable(h GlobalVariableHandle) *GlobalVariable {
	return &m.GlobalVariables[h]
}

func (m *Module) AppendFunction(f Function) FunctionHandle {
	m.Functions = append(m.Functions, f)
	return FunctionHandle(len(m.Functions) - 1)
}

func (m *Module) Function(h FunctionHandle) *Function {
	return &m.Functions[h]
}

// Type is a named (possibly empty-named) type definition.
type Type struct {
	Name  string
	Inner TypeInner
}

// TypeInner is the sum of type shapes a module can define.
type TypeInner interface {
	typeInner()
}

// ScalarType is a scalar numeric type.
type ScalarType struct {
	Kind  ScalarKind
	Width uint8 // bits
}

func (ScalarType) typeInner() {}

// ScalarKind distinguishes the representation of a ScalarType's bits.
type ScalarKind uint8

const (
	ScalarUint ScalarKind = iota
	ScalarSint
	ScalarFloat
)

// VectorType is a fixed-size vector of scalars.
type VectorType struct {
	Size   VectorSize
	Scalar ScalarType
}

func (VectorType) typeInner() {}

// VectorSize is the component count of a vector or matrix column.
type VectorSize uint8

const (
	Vec2 VectorSize = 2
	Vec3 VectorSize = 3
	Vec4 VectorSize = 4
)

// MatrixType is a column-major matrix of vectors.
type MatrixType struct {
	Columns VectorSize
	Rows    VectorSize
	Scalar  ScalarType
}

func (MatrixType) typeInner() {}

// PointerType points into a StorageClass-qualified region of memory.
type PointerType struct {
	Base  TypeHandle
	Class StorageClass
}

func (PointerType) typeInner() {}

// ArrayType is a sized or runtime-sized array of a base type.
type ArrayType struct {
	Base TypeHandle
	Size ArraySize
}

func (ArrayType) typeInner() {}

// ArraySize is nil for a runtime-sized array (OpTypeRuntimeArray), or the
// element count for a sized array (OpTypeArray).
type ArraySize struct {
	Constant *uint32
}

// StructType is an aggregate of named, bound, and offset members.
type StructType struct {
	Members []StructMember
}

func (StructType) typeInner() {}

// StructMember is one field of a StructType.
type StructMember struct {
	Name    string
	Type    TypeHandle
	Binding *Binding
	Offset  uint32
}

// SamplerType is an opaque sampler object (OpTypeSampler).
type SamplerType struct{}

func (SamplerType) typeInner() {}

// ImageType is an opaque image object (OpTypeImage).
type ImageType struct {
	Base  TypeHandle
	Dim   ImageDim
	Flags ImageFlags
}

func (ImageType) typeInner() {}

// ImageDim is the raw SPIR-V Dim operand of OpTypeImage.
type ImageDim uint32

const (
	Dim1D ImageDim = iota
	Dim2D
	Dim3D
	DimCube
	DimRect
	DimBuffer
	DimSubpassData
)

// ImageFlags records the arrayed/multisampled/sampled/access bits an
// OpTypeImage instruction carries across its Arrayed, MS, Sampled, and
// optional access-qualifier operands.
type ImageFlags uint8

const (
	ImageArrayed      ImageFlags = 1 << 0
	ImageMultisampled ImageFlags = 1 << 1
	ImageSampled      ImageFlags = 1 << 2
	ImageCanLoad      ImageFlags = 1 << 3
	ImageCanStore     ImageFlags = 1 << 4
)

// StorageClass is the raw SPIR-V StorageClass operand value, carried
// through the IR unresolved rather than translated to a private enum.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassPushConstant    StorageClass = 9
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// Constant is a module-scope constant or specialization constant value.
type Constant struct {
	Name  string
	Type  TypeHandle
	Inner ConstantInner
}

// ConstantInner is the sum of scalar constant representations. Composite
// constants (OpConstantComposite) are not modeled here.
type ConstantInner interface {
	constantInner()
}

type ConstUint uint64

func (ConstUint) constantInner() {}

type ConstSint int64

func (ConstSint) constantInner() {}

type ConstFloat float64

func (ConstFloat) constantInner() {}

// GlobalVariable is a module-scope OpVariable outside any function.
type GlobalVariable struct {
	Name    string
	Class   StorageClass
	Binding *Binding
	Type    TypeHandle
	Init    *ConstantHandle
}

// Binding is the sum of ways a struct member, global variable, or
// function parameter can be bound to a host-visible interface slot.
type Binding interface {
	binding()
}

// BindingBuiltIn binds to a raw SPIR-V BuiltIn decoration value.
type BindingBuiltIn struct {
	BuiltIn BuiltIn
}

func (BindingBuiltIn) binding() {}

// BindingLocation binds to a numbered Location decoration.
type BindingLocation struct {
	Location uint32
}

func (BindingLocation) binding() {}

// BindingDescriptor binds to a DescriptorSet/Binding decoration pair.
type BindingDescriptor struct {
	Set     uint32
	Binding uint32
}

func (BindingDescriptor) binding() {}

// BuiltIn is the raw SPIR-V BuiltIn enumerant, carried through unresolved.
type BuiltIn uint32

const (
	BuiltInPosition           BuiltIn = 0
	BuiltInFrontFacing        BuiltIn = 17
	BuiltInFragDepth          BuiltIn = 22
	BuiltInWorkgroupId        BuiltIn = 26
	BuiltInLocalInvocationId  BuiltIn = 27
	BuiltInGlobalInvocationId BuiltIn = 28
	BuiltInVertexIndex        BuiltIn = 42
	BuiltInInstanceIndex      BuiltIn = 43
	BuiltInSampleId           BuiltIn = 18
)

// Function is a decoded OpFunction, its parameters, and its body.
type Function struct {
	Name           string
	Control        FunctionControl
	ParameterTypes []TypeHandle
	ReturnType     *TypeHandle
	Expressions    []Expression
	Body           []Statement
}

func (f *Function) AppendExpression(e Expression) ExpressionHandle {
	f.Expressions = append(f.Expressions, e)
	return ExpressionHandle(len(f.Expressions) - 1)
}

func (f *Function) Expression(h ExpressionHandle) *Expression {
	return &f.Expressions[h]
}

// FunctionControl is the bitmask operand of OpFunction.
type FunctionControl uint32

const (
	FunctionControlNone       FunctionControl = 0x0
	FunctionControlInline     FunctionControl = 0x1
	FunctionControlDontInline FunctionControl = 0x2
	FunctionControlPure       FunctionControl = 0x4
	FunctionControlConst      FunctionControl = 0x8
)

// EntryPoint is a decoded OpEntryPoint and its resolved interface list.
type EntryPoint struct {
	ExecutionModel ExecutionModel
	Name           string
	Function       FunctionHandle
	Inputs         []GlobalVariableHandle
	Outputs        []GlobalVariableHandle
}

// ExecutionModel is the raw SPIR-V ExecutionModel enumerant of OpEntryPoint.
type ExecutionModel uint32

const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
)

// Expression types are defined in expression.go.
// Statement types are defined in statement.go.
