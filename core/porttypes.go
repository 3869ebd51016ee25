package core

import "slices"

// PortType is the closed enumeration of value types a port can carry.
type PortType string

const (
	PortTypeAny    PortType = "any"
	PortTypeInt    PortType = "int"
	PortTypeFloat  PortType = "float"
	PortTypeString PortType = "string"
	PortTypeBool   PortType = "bool"
	PortTypeList   PortType = "list"
	PortTypeDict   PortType = "dict"
	PortTypeObject PortType = "object"

	PortTypeFilePath   PortType = "file-path"
	PortTypeCSVFile    PortType = "csv-file"
	PortTypeJSONFile   PortType = "json-file"
	PortTypePickleFile PortType = "pickle-file"
	PortTypeNumpyFile  PortType = "numpy-file"
	PortTypeHDF5File   PortType = "hdf5-file"
)

var validPortTypes = map[PortType]struct{}{
	PortTypeAny:        {},
	PortTypeInt:        {},
	PortTypeFloat:      {},
	PortTypeString:     {},
	PortTypeBool:       {},
	PortTypeList:       {},
	PortTypeDict:       {},
	PortTypeObject:     {},
	PortTypeFilePath:   {},
	PortTypeCSVFile:    {},
	PortTypeJSONFile:   {},
	PortTypePickleFile: {},
	PortTypeNumpyFile:  {},
	PortTypeHDF5File:   {},
}

func IsValidPortType(t PortType) bool {
	_, ok := validPortTypes[t]
	return ok
}

// Describes the type casts from a source port to a target port.
// E.g. an int output can be connected to a float input, and every
// concrete file type can feed a generic file-path input.
var outputToInputCast = map[PortType][]PortType{
	PortTypeInt:        {PortTypeFloat},
	PortTypeFilePath:   {PortTypeString},
	PortTypeCSVFile:    {PortTypeFilePath, PortTypeString},
	PortTypeJSONFile:   {PortTypeFilePath, PortTypeString},
	PortTypePickleFile: {PortTypeFilePath, PortTypeString},
	PortTypeNumpyFile:  {PortTypeFilePath, PortTypeString},
	PortTypeHDF5File:   {PortTypeFilePath, PortTypeString},
}

// PortsAreCompatible reports whether an output of type 'source' may be
// connected to an input of type 'target'. Any/object act as wildcards
// on either side.
func PortsAreCompatible(source PortType, target PortType) bool {
	if source == target {
		return true
	}

	if source == PortTypeAny || target == PortTypeAny {
		return true
	}

	if source == PortTypeObject || target == PortTypeObject {
		return true
	}

	if targets, ok := outputToInputCast[source]; ok {
		if slices.Contains(targets, target) {
			return true
		}
	}

	return false
}

// InputTypeAccepts returns all source types an input of the given type
// accepts, the type itself first.
func InputTypeAccepts(inputType PortType) []PortType {
	arr := []PortType{inputType}
	for sourceType, targetTypes := range outputToInputCast {
		if slices.Contains(targetTypes, inputType) {
			arr = append(arr, sourceType)
		}
	}
	return arr
}

// OutputTypeAcceptedBy returns all input types the given output type
// may feed, the type itself first.
func OutputTypeAcceptedBy(outputType PortType) []PortType {
	return append([]PortType{outputType}, outputToInputCast[outputType]...)
}
