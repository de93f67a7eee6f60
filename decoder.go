// Package spirvfront decodes a SPIR-V binary module into the neutral
// intermediate representation defined by package ir.
//
// Decoding is a single pass over the word stream: each instruction is
// dispatched by opcode, validated against the module's current phase, and
// folded into the ir.Module under construction. The decoder never writes
// to the network or the filesystem; its only output besides the result is
// log messages emitted through logrus. It maps a word stream to an
// ir.Module or an error.
package spirvfront

import (
	log "github.com/sirupsen/logrus"

	"github.com/vkshade/spirvfront/ir"
)

// modulePhase tracks where in SPIR-V's fixed instruction ordering the
// decoder currently is. Phases only move forward; an instruction whose
// phase precedes the decoder's current phase is a structural error.
type modulePhase uint8

const (
	phaseEmpty modulePhase = iota
	phaseCapability
	phaseExtension
	phaseExtInstImport
	phaseMemoryModel
	phaseEntryPoint
	phaseExecutionMode
	phaseSource
	phaseName
	phaseAnnotation
	phaseType
	phaseFunction
)

// pendingDecoration holds the accumulated OpDecorate fields pending
// against a result id or a struct member, until the id or member is
// defined.
type pendingDecoration struct {
	BuiltIn     *ir.BuiltIn
	Location    *uint32
	DescSet     *uint32
	DescBinding *uint32
	Block       bool
}

func (d *pendingDecoration) binding() *ir.Binding {
	var b ir.Binding
	switch {
	case d.BuiltIn != nil:
		b = ir.BindingBuiltIn{BuiltIn: *d.BuiltIn}
	case d.Location != nil:
		b = ir.BindingLocation{Location: *d.Location}
	case d.DescSet != nil && d.DescBinding != nil:
		b = ir.BindingDescriptor{Set: *d.DescSet, Binding: *d.DescBinding}
	default:
		return nil
	}
	return &b
}

type memberKey struct {
	id     uint32
	member uint32
}

// typeLookup is what the decoder remembers about a previously defined
// type id: its IR handle. No base or component type id is recorded.
type typeLookup struct {
	Handle ir.TypeHandle
}

// functionTypeInfo is what OpTypeFunction records for later use when
// OpFunction references it.
type functionTypeInfo struct {
	ReturnTypeID     uint32
	ParameterTypeIDs []uint32
}

// pendingEntryPoint is a parsed OpEntryPoint awaiting interface
// resolution at end-of-module (see entrypoint.go).
type pendingEntryPoint struct {
	Model        ir.ExecutionModel
	FunctionID   uint32
	Name         string
	InterfaceIDs []uint32
}

// Decoder holds all state accumulated while decoding a single module. A
// Decoder is single-use: construct one per Decode call.
type Decoder struct {
	reader *wordReader
	module *ir.Module
	phase  modulePhase
	bound  uint32

	futureDecor       map[uint32]*pendingDecoration
	futureMemberDecor map[memberKey]*pendingDecoration

	lookupType         map[uint32]typeLookup
	lookupVoidType     map[uint32]bool
	lookupMemberTypeID map[memberKey]uint32
	lookupConstant     map[uint32]ir.ConstantHandle
	lookupVariable     map[uint32]ir.GlobalVariableHandle
	lookupFunctionType map[uint32]functionTypeInfo
	lookupFunction     map[uint32]ir.FunctionHandle

	definedIDs map[uint32]bool

	// variableOrder and constantOrder record module-scope variable and
	// constant ids in declaration order, so a function's expression
	// store can be seeded deterministically at function entry (see
	// handleFunction).
	variableOrder []uint32
	constantOrder []uint32

	pendingEntryPoints []pendingEntryPoint
}

func newDecoder() *Decoder {
	return &Decoder{
		module:             &ir.Module{},
		futureDecor:        make(map[uint32]*pendingDecoration),
		futureMemberDecor:  make(map[memberKey]*pendingDecoration),
		lookupType:         make(map[uint32]typeLookup),
		lookupVoidType:     make(map[uint32]bool),
		lookupMemberTypeID: make(map[memberKey]uint32),
		lookupConstant:     make(map[uint32]ir.ConstantHandle),
		lookupVariable:     make(map[uint32]ir.GlobalVariableHandle),
		lookupFunctionType: make(map[uint32]functionTypeInfo),
		lookupFunction:     make(map[uint32]ir.FunctionHandle),
		definedIDs:         make(map[uint32]bool),
	}
}

// defineID records id as belonging to a freshly defined entity, failing
// if some earlier instruction already claimed it. Module-scope result
// ids (types, constants, global variables, functions) share one
// namespace in SPIR-V; function-local ids are exempt, since a
// function's body is decoded after every module-scope id is final.
func (d *Decoder) defineID(id uint32, inst *instruction) error {
	if d.definedIDs[id] {
		return newError(ErrDuplicateID, inst.Offset, "id %d already defined", id)
	}
	d.definedIDs[id] = true
	return nil
}

// DecodeWords decodes a module already split into 32-bit little-endian
// words, the form SPIR-V tooling calls a "words" buffer.
func DecodeWords(words []uint32) (*ir.Module, error) {
	d := newDecoder()
	d.reader = newWordReaderFromWords(words)
	return d.decode()
}

// DecodeBytes decodes a module from its raw little-endian byte encoding.
func DecodeBytes(data []byte) (*ir.Module, error) {
	r, err := newWordReaderFromBytes(data)
	if err != nil {
		return nil, err
	}
	d := newDecoder()
	d.reader = r
	return d.decode()
}

const (
	maxSupportedMajor = 1
	maxSupportedMinor = 6
)

func (d *Decoder) decode() (*ir.Module, error) {
	if err := d.readHeader(); err != nil {
		return nil, err
	}

	for !d.reader.atEnd() {
		inst, err := d.reader.nextInstruction()
		if err != nil {
			return nil, err
		}
		log.Debugf("instruction opcode=%d words=%d offset=%d", inst.Opcode, inst.WordCount, inst.Offset)
		if err := d.dispatch(inst); err != nil {
			return nil, err
		}
	}

	if err := d.resolveEntryPoints(); err != nil {
		return nil, err
	}

	for id, dec := range d.futureDecor {
		log.Warnf("unused decoration for id %d: %+v", id, dec)
	}
	for key, dec := range d.futureMemberDecor {
		log.Warnf("unused member decoration for id %d member %d: %+v", key.id, key.member, dec)
	}

	return d.module, nil
}

func (d *Decoder) readHeader() error {
	magic, err := d.reader.next()
	if err != nil {
		return err
	}
	if magic != MagicNumber {
		return newError(ErrInvalidMagic, 0, "got 0x%08x", magic)
	}

	version, err := d.reader.next()
	if err != nil {
		return err
	}
	major := uint8(version >> 16)
	minor := uint8(version >> 8)
	if major > maxSupportedMajor || (major == maxSupportedMajor && minor > maxSupportedMinor) {
		return newError(ErrUnsupportedVersion, 1, "%d.%d", major, minor)
	}

	generator, err := d.reader.next()
	if err != nil {
		return err
	}

	bound, err := d.reader.next()
	if err != nil {
		return err
	}
	d.bound = bound

	// schema, reserved and always zero.
	if _, err := d.reader.next(); err != nil {
		return err
	}

	d.module.Header = ir.Header{VersionMajor: major, VersionMinor: minor, Generator: generator}
	return nil
}

// requirePhase fails if the module's current phase is already past min,
// i.e. the instruction belongs to an earlier phase; phases never move
// backward.
func (d *Decoder) requirePhase(min modulePhase, inst *instruction) error {
	if d.phase > min {
		return newError(ErrPhaseRegression, inst.Offset,
			"opcode %d belongs to an earlier phase than the module's current phase", inst.Opcode)
	}
	return nil
}

func (d *Decoder) dispatch(inst *instruction) error {
	op := opCode(inst.Opcode)
	switch op {
	case opCapability:
		return d.handleCapability(inst)
	case opExtension:
		return d.handleExtension(inst)
	case opExtInstImport:
		return d.handleExtInstImport(inst)
	case opMemoryModel:
		return d.handleMemoryModel(inst)
	case opEntryPoint:
		return d.handleEntryPoint(inst)
	case opExecutionMode:
		return d.handleExecutionMode(inst)
	case opSource, opSourceExtension, opString:
		return d.handleSource(inst)
	case opName, opMemberName:
		return d.handleName(inst)
	case opDecorate:
		if err := d.requirePhase(phaseAnnotation, inst); err != nil {
			return err
		}
		d.phase = phaseAnnotation
		return d.handleDecorate(inst)
	case opMemberDecorate:
		if err := d.requirePhase(phaseAnnotation, inst); err != nil {
			return err
		}
		d.phase = phaseAnnotation
		return d.handleMemberDecorate(inst)
	case opTypeVoid, opTypeBool, opTypeInt, opTypeFloat, opTypeVector, opTypeMatrix,
		opTypeArray, opTypeRuntimeArray, opTypeStruct, opTypePointer, opTypeFunction,
		opTypeImage, opTypeSampler, opTypeSampledImage:
		if err := d.requirePhase(phaseType, inst); err != nil {
			return err
		}
		d.phase = phaseType
		return d.handleType(inst)
	case opConstant, opSpecConstant, opConstantTrue, opConstantFalse, opSpecConstantTrue, opSpecConstantFalse:
		if err := d.requirePhase(phaseType, inst); err != nil {
			return err
		}
		d.phase = phaseType
		return d.handleConstant(inst)
	case opVariable:
		if err := d.requirePhase(phaseType, inst); err != nil {
			return err
		}
		d.phase = phaseType
		return d.handleVariable(inst)
	case opFunction:
		if err := d.requirePhase(phaseFunction, inst); err != nil {
			return err
		}
		d.phase = phaseFunction
		return d.handleFunction(inst)
	default:
		log.Tracef("ignoring opcode %d outside decoder's tracked set", inst.Opcode)
		return nil
	}
}
