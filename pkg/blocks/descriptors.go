package blocks

import "github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"

// Extension metadata announced to the host.
const (
	ExtensionID   = "zyc_file_server"
	ExtensionName = "Zyc File Server"
	PrimaryColor  = "#4B8BBE"
	AccentColor   = "#306998"
)

// Opcodes.
const (
	OpSetConfig       = "setConfig"
	OpCheckConnection = "checkConnection"
	OpCheckPassword   = "checkPassword"
	OpListDirectory   = "listDirectory"
	OpCreateDirectory = "createDirectory"
	OpCreateFile      = "createFile"
	OpWriteFile       = "writeFile"
	OpReadFile        = "readFile"
	OpDeletePath      = "deletePath"
)

// Argument names.
const (
	ArgURL     = "URL"
	ArgPWD     = "PWD"
	ArgPath    = "PATH"
	ArgContent = "CONTENT"
)

// Type is the shape of a block in the host.
type Type string

const (
	TypeCommand  Type = "command"
	TypeBoolean  Type = "Boolean"
	TypeReporter Type = "reporter"
)

// Argument is a string argument with the value the host pre-fills.
type Argument struct {
	Name    string `json:"name"`
	Default string `json:"default"`
}

// Descriptor declares one block.
type Descriptor struct {
	Opcode    string     `json:"opcode"`
	Type      Type       `json:"type"`
	Arguments []Argument `json:"arguments,omitempty"`
}

// Descriptors returns the blocks in host display order.
func Descriptors() []Descriptor {
	return []Descriptor{
		{Opcode: OpSetConfig, Type: TypeCommand, Arguments: []Argument{
			{Name: ArgURL, Default: filesrv.DefaultBaseAddress},
			{Name: ArgPWD, Default: filesrv.DefaultSharedSecret},
		}},
		{Opcode: OpCheckConnection, Type: TypeBoolean},
		{Opcode: OpCheckPassword, Type: TypeBoolean},
		{Opcode: OpListDirectory, Type: TypeReporter, Arguments: []Argument{{Name: ArgPath, Default: ""}}},
		{Opcode: OpCreateDirectory, Type: TypeCommand, Arguments: []Argument{{Name: ArgPath, Default: "new_folder"}}},
		{Opcode: OpCreateFile, Type: TypeCommand, Arguments: []Argument{{Name: ArgPath, Default: "new_file.txt"}}},
		{Opcode: OpWriteFile, Type: TypeCommand, Arguments: []Argument{
			{Name: ArgPath, Default: "file.txt"},
			{Name: ArgContent, Default: "Hello World"},
		}},
		{Opcode: OpReadFile, Type: TypeReporter, Arguments: []Argument{{Name: ArgPath, Default: "file.txt"}}},
		{Opcode: OpDeletePath, Type: TypeCommand, Arguments: []Argument{{Name: ArgPath, Default: "old_file.txt"}}},
	}
}

// Lookup returns the descriptor for opcode.
func Lookup(opcode string) (Descriptor, bool) {
	for _, d := range Descriptors() {
		if d.Opcode == opcode {
			return d, true
		}
	}
	return Descriptor{}, false
}
