package ir

// Expression is one node of the per-function expression DAG the decoder
// builds from SPIR-V result ids. Expressions are append-only and referenced
// by ExpressionHandle; nothing ever rewrites one in place once appended.
type Expression struct {
	Kind ExpressionKind
}

// ExpressionKind is the sum of expression shapes the decoder produces.
type ExpressionKind interface {
	expressionKind()
}

// ExprGlobalVariable references a module-scope global variable by handle
// (the result of an OpVariable id used as an operand inside a function).
type ExprGlobalVariable struct {
	Variable GlobalVariableHandle
}

func (ExprGlobalVariable) expressionKind() {}

// ExprLocalVariable references a function-scope variable declared by an
// OpVariable inside the function's first block.
type ExprLocalVariable struct {
	Type TypeHandle // the pointer's pointee type
}

func (ExprLocalVariable) expressionKind() {}

// ExprFunctionParameter references the Nth parameter of the enclosing
// function (the result of an OpFunctionParameter instruction).
type ExprFunctionParameter struct {
	Index uint32
}

func (ExprFunctionParameter) expressionKind() {}

// ExprConstant references a module-scope constant by handle.
type ExprConstant struct {
	Constant ConstantHandle
}

func (ExprConstant) expressionKind() {}

// ExprAccess indexes a pointer or composite by a dynamic (non-constant)
// index expression (OpAccessChain with a non-constant index operand).
type ExprAccess struct {
	Base  ExpressionHandle
	Index ExpressionHandle
}

func (ExprAccess) expressionKind() {}

// ExprAccessIndex indexes a pointer or composite by a literal member or
// element index (OpAccessChain with a constant index operand,
// OpCompositeExtract).
type ExprAccessIndex struct {
	Base  ExpressionHandle
	Index uint32
}

func (ExprAccessIndex) expressionKind() {}

// ExprLoad dereferences a pointer expression (OpLoad).
type ExprLoad struct {
	Pointer ExpressionHandle
}

func (ExprLoad) expressionKind() {}

// ExprCompose builds a vector, matrix, array, or struct value from its
// component expressions (OpCompositeConstruct).
type ExprCompose struct {
	Type       TypeHandle
	Components []ExpressionHandle
}

func (ExprCompose) expressionKind() {}

// ExprMul multiplies two operands (OpVectorTimesScalar and
// OpMatrixTimesVector folded uniformly since the decoder does not
// distinguish them beyond their operand types).
type ExprMul struct {
	Left  ExpressionHandle
	Right ExpressionHandle
}

func (ExprMul) expressionKind() {}

// ExprImageSample samples a combined image/sampler pair at a coordinate
// (OpSampledImage feeding OpImageSampleImplicitLod).
type ExprImageSample struct {
	Image      ExpressionHandle
	Sampler    ExpressionHandle
	Coordinate ExpressionHandle
}

func (ExprImageSample) expressionKind() {}
