package blocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/logging"
)

// ErrUnknownOpcode is returned by Invoke for opcodes not in Descriptors.
var ErrUnknownOpcode = errors.New("blocks: unknown opcode")

// Args carries block arguments by name. Missing names take the descriptor
// default.
type Args map[string]string

// Kind tells which field of a Value is meaningful.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindBool
)

// Value is a block result: nothing for commands, a string for reporters, a
// boolean for Boolean blocks.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
}

// StringValue wraps s.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// String renders the value as the host displays it.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// Extension dispatches block invocations to a client.
type Extension struct {
	client *filesrv.Client
	log    logging.Logger
}

// New wraps client. A nil logger discards output.
func New(client *filesrv.Client, logger logging.Logger) *Extension {
	return &Extension{
		client: client,
		log:    logging.OrNoop(logger).WithComponent("blocks"),
	}
}

// NewDefault returns an extension over an HTTP client configured with the
// default address and secret.
func NewDefault(logger logging.Logger) *Extension {
	return New(filesrv.New(filesrv.DefaultConfig(), filesrv.WithLogger(logger)), logger)
}

// Client returns the wrapped client.
func (e *Extension) Client() *filesrv.Client {
	return e.client
}

// Invoke runs opcode with args. Check blocks never fail; other blocks return
// the client's error.
func (e *Extension) Invoke(ctx context.Context, opcode string, args Args) (Value, error) {
	desc, ok := Lookup(opcode)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownOpcode, opcode)
	}
	arg := resolver(desc, args)
	e.log.Debug("Invoking block %s", opcode)

	v, err := e.dispatch(ctx, opcode, arg)
	if err != nil {
		e.log.Warn("Block %s failed: %s", opcode, err)
		return Value{}, err
	}
	return v, nil
}

func (e *Extension) dispatch(ctx context.Context, opcode string, arg func(string) string) (Value, error) {
	switch opcode {
	case OpSetConfig:
		e.client.Configure(arg(ArgURL), arg(ArgPWD))
		return Value{}, nil
	case OpCheckConnection:
		return BoolValue(e.client.IsOnline(ctx)), nil
	case OpCheckPassword:
		ok, err := e.client.IsPasswordValid(ctx)
		if err != nil {
			return BoolValue(false), nil
		}
		return BoolValue(ok), nil
	case OpListDirectory:
		listing, err := e.client.ListDirectoryJSON(ctx, arg(ArgPath))
		if err != nil {
			return Value{}, err
		}
		return StringValue(listing), nil
	case OpCreateDirectory:
		return Value{}, e.client.CreateDirectory(ctx, arg(ArgPath))
	case OpCreateFile:
		return Value{}, e.client.CreateFile(ctx, arg(ArgPath))
	case OpWriteFile:
		return Value{}, e.client.WriteFile(ctx, arg(ArgPath), arg(ArgContent))
	case OpReadFile:
		content, err := e.client.ReadFile(ctx, arg(ArgPath))
		if err != nil {
			return Value{}, err
		}
		return StringValue(content), nil
	case OpDeletePath:
		return Value{}, e.client.DeletePath(ctx, arg(ArgPath))
	}
	return Value{}, fmt.Errorf("%w: %q", ErrUnknownOpcode, opcode)
}

func resolver(desc Descriptor, args Args) func(string) string {
	return func(name string) string {
		if v, ok := args[name]; ok {
			return v
		}
		for _, a := range desc.Arguments {
			if a.Name == name {
				return a.Default
			}
		}
		return ""
	}
}
