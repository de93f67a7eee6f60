package spirvfront

import "github.com/vkshade/spirvfront/ir"

// MagicNumber is the required first word of every SPIR-V module.
const MagicNumber uint32 = 0x07230203

// opCode is a SPIR-V instruction opcode, the low 16 bits of an
// instruction's first word.
type opCode uint16

const (
	opSource                 opCode = 3
	opSourceExtension        opCode = 4
	opName                   opCode = 5
	opMemberName             opCode = 6
	opString                 opCode = 7
	opExtension              opCode = 10
	opExtInstImport          opCode = 11
	opExtInst                opCode = 12
	opMemoryModel            opCode = 14
	opEntryPoint             opCode = 15
	opExecutionMode          opCode = 16
	opCapability             opCode = 17
	opTypeVoid               opCode = 19
	opTypeBool               opCode = 20
	opTypeInt                opCode = 21
	opTypeFloat              opCode = 22
	opTypeVector             opCode = 23
	opTypeMatrix             opCode = 24
	opTypeImage              opCode = 25
	opTypeSampler            opCode = 26
	opTypeSampledImage       opCode = 27
	opTypeArray              opCode = 28
	opTypeRuntimeArray       opCode = 29
	opTypeStruct             opCode = 30
	opTypePointer            opCode = 32
	opTypeFunction           opCode = 33
	opConstantTrue           opCode = 41
	opConstantFalse          opCode = 42
	opConstant               opCode = 43
	opConstantComposite      opCode = 44
	opSpecConstantTrue       opCode = 48
	opSpecConstantFalse      opCode = 49
	opSpecConstant           opCode = 50
	opFunction               opCode = 54
	opFunctionParameter      opCode = 55
	opFunctionEnd            opCode = 56
	opFunctionCall           opCode = 57
	opVariable               opCode = 59
	opLoad                   opCode = 61
	opStore                  opCode = 62
	opAccessChain            opCode = 65
	opDecorate               opCode = 71
	opMemberDecorate         opCode = 72
	opCompositeConstruct     opCode = 80
	opCompositeExtract       opCode = 81
	opSampledImage           opCode = 86
	opImageSampleImplicitLod opCode = 87
	opVectorTimesScalar      opCode = 142
	opMatrixTimesVector      opCode = 145
	opLabel                  opCode = 248
	opBranch                 opCode = 249
	opReturn                 opCode = 253
	opReturnValue            opCode = 254
)

// maxOpCode is the highest opcode value this decoder's supported table
// recognizes. next-instruction fails ErrUnknownOpcode for any opcode
// beyond it, regardless of phase or dispatch context.
const maxOpCode = opReturnValue

// decoration is the SPIR-V Decoration enumerant (the operand of
// OpDecorate/OpMemberDecorate).
type decoration uint32

const (
	decorationBlock         decoration = 2
	decorationBuiltIn       decoration = 11
	decorationLocation      decoration = 30
	decorationDescriptorSet decoration = 34
	decorationBinding       decoration = 33
)

// executionMode is the SPIR-V ExecutionMode enumerant (the operand of
// OpExecutionMode). The decoder checks that the entry point id and mode
// operands are present and then discards them along with any trailing
// literal operands.
type executionMode uint32

// addressingModel and memoryModel are the two operands of OpMemoryModel.
type addressingModel uint32
type memoryModel uint32

const (
	addressingModelLogical addressingModel = 0
)

const (
	memoryModelSimple  memoryModel = 0
	memoryModelGLSL450 memoryModel = 1
	memoryModelVulkan  memoryModel = 3
)

// capability is the SPIR-V Capability enumerant (the operand of
// OpCapability). supportedCapabilities defines this decoder's closed
// profile.
type capability uint32

const (
	capabilityShader capability = 1
)

// supportedCapabilities is the closed set of capabilities this decoder
// accepts. A module requesting anything else fails with
// ErrUnsupportedCapability.
var supportedCapabilities = map[capability]bool{
	capabilityShader: true,
}

// supportedMemoryModels restricts OpMemoryModel's memory-model operand.
var supportedMemoryModels = map[memoryModel]bool{
	memoryModelSimple:  true,
	memoryModelGLSL450: true,
	memoryModelVulkan:  true,
}

// supportedStorageClasses is this decoder's closed profile of storage
// classes, up to and including StorageBuffer.
var supportedStorageClasses = map[ir.StorageClass]bool{
	ir.StorageClassUniformConstant: true,
	ir.StorageClassInput:           true,
	ir.StorageClassUniform:         true,
	ir.StorageClassOutput:          true,
	ir.StorageClassWorkgroup:       true,
	ir.StorageClass(5):             true, // CrossWorkgroup
	ir.StorageClassPrivate:         true,
	ir.StorageClassFunction:        true,
	ir.StorageClass(8):             true, // Generic
	ir.StorageClassPushConstant:    true,
	ir.StorageClass(10):            true, // AtomicCounter
	ir.StorageClassImage:           true,
	ir.StorageClassStorageBuffer:   true,
}
