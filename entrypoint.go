package spirvfront

import "github.com/vkshade/spirvfront/ir"

// resolveEntryPoints turns each pendingEntryPoint collected during
// dispatch into an ir.EntryPoint, resolving its function id and
// classifying its interface variable ids into inputs and outputs by
// their storage class. This runs once, after the whole module has been
// decoded, because OpEntryPoint can (and typically does) appear before
// the OpFunction and OpVariable instructions it references.
func (d *Decoder) resolveEntryPoints() error {
	for _, pending := range d.pendingEntryPoints {
		fnHandle, ok := d.lookupFunction[pending.FunctionID]
		if !ok {
			return newError(ErrUnresolvedID, d.reader.offset, "entry point %q references undefined function id %d", pending.Name, pending.FunctionID)
		}

		ep := ir.EntryPoint{
			ExecutionModel: pending.Model,
			Name:           pending.Name,
			Function:       fnHandle,
		}

		for _, varID := range pending.InterfaceIDs {
			gvHandle, ok := d.lookupVariable[varID]
			if !ok {
				return newError(ErrUnresolvedID, d.reader.offset, "entry point %q references undefined interface variable id %d", pending.Name, varID)
			}
			gv := d.module.GlobalVariable(gvHandle)
			switch gv.Class {
			case ir.StorageClassInput:
				ep.Inputs = append(ep.Inputs, gvHandle)
			case ir.StorageClassOutput:
				ep.Outputs = append(ep.Outputs, gvHandle)
			default:
				return newError(ErrInvalidVariableClass, d.reader.offset,
					"entry point %q interface variable id %d has storage class %d, neither Input nor Output", pending.Name, varID, gv.Class)
			}
		}

		d.module.EntryPoints = append(d.module.EntryPoints, ep)
	}

	return nil
}
