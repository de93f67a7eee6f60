package spirvfront

import (
	log "github.com/sirupsen/logrus"

	"github.com/vkshade/spirvfront/ir"
)

func (d *Decoder) handleCapability(inst *instruction) error {
	if err := d.requirePhase(phaseCapability, inst); err != nil {
		return err
	}
	d.phase = phaseCapability
	if err := inst.expect(1); err != nil {
		return err
	}
	reqCap := capability(inst.Operands[0])
	if !supportedCapabilities[reqCap] {
		return newError(ErrUnsupportedCapability, inst.Offset, "capability %d", reqCap)
	}
	return nil
}

func (d *Decoder) handleExtension(inst *instruction) error {
	if err := d.requirePhase(phaseExtension, inst); err != nil {
		return err
	}
	d.phase = phaseExtension
	name, _, err := nextString(inst, 0)
	if err != nil {
		return err
	}
	return newError(ErrUnsupportedExtension, inst.Offset, "extension %q", name)
}

func (d *Decoder) handleExtInstImport(inst *instruction) error {
	if err := d.requirePhase(phaseExtension, inst); err != nil {
		return err
	}
	d.phase = phaseExtension
	if err := inst.expect(1); err != nil {
		return err
	}
	name, _, err := nextString(inst, 1)
	if err != nil {
		return err
	}
	if name != "GLSL.std.450" {
		return newError(ErrUnsupportedExtension, inst.Offset, "extended instruction set %q", name)
	}
	return nil
}

func (d *Decoder) handleMemoryModel(inst *instruction) error {
	if err := d.requirePhase(phaseMemoryModel, inst); err != nil {
		return err
	}
	d.phase = phaseMemoryModel
	if err := inst.expect(2); err != nil {
		return err
	}
	am := addressingModel(inst.Operands[0])
	if am != addressingModelLogical {
		return newError(ErrUnsupportedMemoryModel, inst.Offset, "addressing model %d", am)
	}
	mm := memoryModel(inst.Operands[1])
	if !supportedMemoryModels[mm] {
		return newError(ErrUnsupportedMemoryModel, inst.Offset, "memory model %d", mm)
	}
	return nil
}

func (d *Decoder) handleEntryPoint(inst *instruction) error {
	if err := d.requirePhase(phaseEntryPoint, inst); err != nil {
		return err
	}
	d.phase = phaseEntryPoint
	if err := inst.expect(2); err != nil {
		return err
	}

	model := ir.ExecutionModel(inst.Operands[0])
	if model > ir.ExecutionModelKernel {
		return newError(ErrUnsupportedExecutionModel, inst.Offset, "execution model %d", model)
	}
	functionID := inst.Operands[1]
	name, nameWords, err := nextString(inst, 2)
	if err != nil {
		return err
	}

	ifaceStart := 2 + nameWords
	var interfaceIDs []uint32
	for i := ifaceStart; i < len(inst.Operands); i++ {
		interfaceIDs = append(interfaceIDs, inst.Operands[i])
	}

	d.pendingEntryPoints = append(d.pendingEntryPoints, pendingEntryPoint{
		Model:        model,
		FunctionID:   functionID,
		Name:         name,
		InterfaceIDs: interfaceIDs,
	})
	return nil
}

func (d *Decoder) handleExecutionMode(inst *instruction) error {
	if err := d.requirePhase(phaseExecutionMode, inst); err != nil {
		return err
	}
	d.phase = phaseExecutionMode
	return inst.expect(2)
}

func (d *Decoder) handleSource(inst *instruction) error {
	if err := d.requirePhase(phaseSource, inst); err != nil {
		return err
	}
	d.phase = phaseSource
	return nil
}

func (d *Decoder) handleName(inst *instruction) error {
	if err := d.requirePhase(phaseName, inst); err != nil {
		return err
	}
	d.phase = phaseName
	return inst.expect(1)
}

func (d *Decoder) decorationFor(id uint32) *pendingDecoration {
	dec, ok := d.futureDecor[id]
	if !ok {
		dec = &pendingDecoration{}
		d.futureDecor[id] = dec
	}
	return dec
}

func (d *Decoder) memberDecorationFor(id, member uint32) *pendingDecoration {
	key := memberKey{id: id, member: member}
	dec, ok := d.futureMemberDecor[key]
	if !ok {
		dec = &pendingDecoration{}
		d.futureMemberDecor[key] = dec
	}
	return dec
}

// applyDecoration folds one decoration operand set onto dec. base is 2
// for OpDecorate's (target, decoration) prefix, 3 for OpMemberDecorate's
// (target, member, decoration) prefix; it is used to check that the
// decoration's extra literal is present (a minimum word count; trailing
// words are not rejected).
func applyDecoration(dec *pendingDecoration, deco decoration, inst *instruction, base int) error {
	switch deco {
	case decorationBlock:
		dec.Block = true
	case decorationBuiltIn:
		if err := inst.expect(base + 1); err != nil {
			return err
		}
		b := ir.BuiltIn(inst.Operands[base])
		dec.BuiltIn = &b
	case decorationLocation:
		if err := inst.expect(base + 1); err != nil {
			return err
		}
		loc := inst.Operands[base]
		dec.Location = &loc
	case decorationDescriptorSet:
		if err := inst.expect(base + 1); err != nil {
			return err
		}
		set := inst.Operands[base]
		dec.DescSet = &set
	case decorationBinding:
		if err := inst.expect(base + 1); err != nil {
			return err
		}
		bind := inst.Operands[base]
		dec.DescBinding = &bind
	default:
		log.Warnf("ignoring decoration %d", deco)
	}
	return nil
}

func (d *Decoder) handleDecorate(inst *instruction) error {
	if err := inst.expect(2); err != nil {
		return err
	}
	target := inst.Operands[0]
	deco := inst.Operands[1]
	return applyDecoration(d.decorationFor(target), decoration(deco), inst, 2)
}

func (d *Decoder) handleMemberDecorate(inst *instruction) error {
	if err := inst.expect(3); err != nil {
		return err
	}
	target := inst.Operands[0]
	member := inst.Operands[1]
	deco := inst.Operands[2]
	return applyDecoration(d.memberDecorationFor(target, member), decoration(deco), inst, 3)
}
