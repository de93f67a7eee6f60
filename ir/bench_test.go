package ir

import (
	"runtime"
	"testing"
)

// bindingPtr converts a Binding interface value to *Binding for use in
// struct literals that require pointer-to-interface fields.
func bindingPtr(b Binding) *Binding {
	return &b
}

func exprHandlePtr(h ExpressionHandle) *ExpressionHandle {
	return &h
}

// BenchmarkModuleCreation benchmarks allocating an empty Module and basic
// field initialization.
func BenchmarkModuleCreation(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m := &Module{
			Types:           make([]Type, 0, 16),
			Constants:       make([]Constant, 0, 8),
			GlobalVariables: make([]GlobalVariable, 0, 4),
			Functions:       make([]Function, 0, 4),
			EntryPoints:     make([]EntryPoint, 0, 2),
		}
		runtime.KeepAlive(m)
	}
}

// BenchmarkAddType benchmarks appending a representative set of types
// (scalar, vector, matrix, struct, pointer) to a module's type arena.
func BenchmarkAddType(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m := &Module{Types: make([]Type, 0, 32)}

		f32 := m.AppendType(Type{Inner: ScalarType{Kind: ScalarFloat, Width: 32}})
		m.AppendType(Type{Inner: ScalarType{Kind: ScalarSint, Width: 32}})
		m.AppendType(Type{Inner: ScalarType{Kind: ScalarUint, Width: 32}})
		vec4f := m.AppendType(Type{Inner: VectorType{Size: Vec4, Scalar: ScalarType{Kind: ScalarFloat, Width: 32}}})
		m.AppendType(Type{Inner: MatrixType{Columns: Vec4, Rows: Vec4, Scalar: ScalarType{Kind: ScalarFloat, Width: 32}}})
		m.AppendType(Type{Inner: StructType{
			Members: []StructMember{
				{Name: "position", Type: vec4f, Binding: bindingPtr(BindingBuiltIn{BuiltIn: BuiltInPosition})},
				{Name: "color", Type: vec4f, Binding: bindingPtr(BindingLocation{Location: 0})},
			},
		}})
		m.AppendType(Type{Inner: PointerType{Base: f32, Class: StorageClassFunction}})

		runtime.KeepAlive(m)
	}
}

// BenchmarkAddFunction benchmarks adding a function with parameters,
// expressions, and body statements to a module.
func BenchmarkAddFunction(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m := &Module{Functions: make([]Function, 0, 4)}

		retType := TypeHandle(2)
		fn := Function{
			Name:           "vs_main",
			Control:        FunctionControlNone,
			ParameterTypes: []TypeHandle{1},
			ReturnType:     &retType,
			Expressions:    make([]Expression, 0, 16),
			Body:           make([]Statement, 0, 8),
		}

		var last ExpressionHandle
		for j := 0; j < 10; j++ {
			last = fn.AppendExpression(Expression{Kind: ExprConstant{Constant: ConstantHandle(j)}})
		}

		fn.Body = append(fn.Body, Statement{Kind: StmtReturn{Value: exprHandlePtr(last)}})

		m.AppendFunction(fn)
		runtime.KeepAlive(m)
	}
}

// BenchmarkExpressionAlloc benchmarks building a chain of expressions for
// a representative constants-then-multiply computation.
func BenchmarkExpressionAlloc(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		fn := &Function{Expressions: make([]Expression, 0, 64)}

		for j := 0; j < 50; j++ {
			fn.AppendExpression(Expression{Kind: ExprConstant{Constant: ConstantHandle(j)}})
		}

		for j := 0; j < 10; j++ {
			fn.AppendExpression(Expression{
				Kind: ExprMul{
					Left:  ExpressionHandle(j * 2),
					Right: ExpressionHandle(j*2 + 1),
				},
			})
		}

		runtime.KeepAlive(fn)
	}
}

// BenchmarkAccessChainWalk benchmarks walking a chain of ExprAccessIndex
// nodes the way struct-member and array-element access chains decode.
func BenchmarkAccessChainWalk(b *testing.B) {
	fn := &Function{}
	base := fn.AppendExpression(Expression{Kind: ExprGlobalVariable{Variable: 0}})
	for j := 0; j < 8; j++ {
		base = fn.AppendExpression(Expression{Kind: ExprAccessIndex{Base: base, Index: uint32(j)}})
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		h := base
		depth := 0
		for {
			idx, ok := fn.Expression(h).Kind.(ExprAccessIndex)
			if !ok {
				break
			}
			h = idx.Base
			depth++
		}
		runtime.KeepAlive(depth)
	}
}
