package spirvfront

import (
	"testing"

	"github.com/vkshade/spirvfront/ir"
)

func TestSeedExpressionStore_GlobalsThenConstantsInDeclarationOrder(t *testing.T) {
	d := newDecoder()
	floatHandle := d.module.AppendType(ir.Type{Inner: ir.ScalarType{Kind: ir.ScalarFloat, Width: 32}})

	gvHandle := d.module.AppendGlobalVariable(ir.GlobalVariable{Type: floatHandle})
	d.lookupVariable[2] = gvHandle
	d.variableOrder = append(d.variableOrder, 2)

	constHandle := d.module.AppendConstant(ir.Constant{Type: floatHandle, Inner: ir.ConstFloat(1)})
	d.lookupConstant[8] = constHandle
	d.constantOrder = append(d.constantOrder, 8)

	fs := &funcState{
		fn:                 &ir.Function{},
		lookupExpression:   make(map[uint32]ir.ExpressionHandle),
		lookupSampledImage: make(map[uint32]sampledImagePair),
		localVariables:     make(map[uint32]ir.ExpressionHandle),
		idType:             make(map[uint32]ir.TypeHandle),
	}
	d.seedExpressionStore(fs)

	if len(fs.fn.Expressions) != 2 {
		t.Fatalf("expected 2 seeded expressions, got %d", len(fs.fn.Expressions))
	}
	if _, ok := fs.fn.Expressions[0].Kind.(ir.ExprGlobalVariable); !ok {
		t.Errorf("expected first seeded expression to be the global variable, got %T", fs.fn.Expressions[0].Kind)
	}
	if _, ok := fs.fn.Expressions[1].Kind.(ir.ExprConstant); !ok {
		t.Errorf("expected second seeded expression to be the constant, got %T", fs.fn.Expressions[1].Kind)
	}

	varExpr, ok := fs.lookupExpression[2]
	if !ok || varExpr != 0 {
		t.Errorf("expected variable id 2 to resolve to expression handle 0, got %d ok=%v", varExpr, ok)
	}
	constExpr, ok := fs.lookupExpression[8]
	if !ok || constExpr != 1 {
		t.Errorf("expected constant id 8 to resolve to expression handle 1, got %d ok=%v", constExpr, ok)
	}
	if fs.idType[2] != floatHandle || fs.idType[8] != floatHandle {
		t.Errorf("expected seeded ids to record their type")
	}
}
