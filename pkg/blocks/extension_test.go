package blocks_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/blocks"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv/mock"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv_sdk"
)

func newExtension(t *testing.T) (*blocks.Extension, *mock.Mock) {
	t.Helper()
	store := mock.New()
	client := filesrv_sdk.NewMockClient(store, filesrv.DefaultConfig())
	return blocks.New(client, nil), store
}

func TestDescriptorsMatchDefaults(t *testing.T) {
	descs := blocks.Descriptors()
	require.Len(t, descs, 9)

	setConfig, ok := blocks.Lookup(blocks.OpSetConfig)
	require.True(t, ok)
	assert.Equal(t, blocks.TypeCommand, setConfig.Type)
	assert.Equal(t, []blocks.Argument{
		{Name: "URL", Default: "http://127.0.0.1:5000"},
		{Name: "PWD", Default: "default_password"},
	}, setConfig.Arguments)

	check, ok := blocks.Lookup(blocks.OpCheckPassword)
	require.True(t, ok)
	assert.Equal(t, blocks.TypeBoolean, check.Type)
	assert.Empty(t, check.Arguments)

	write, ok := blocks.Lookup(blocks.OpWriteFile)
	require.True(t, ok)
	assert.Equal(t, "Hello World", write.Arguments[1].Default)

	_, ok = blocks.Lookup("launchRocket")
	assert.False(t, ok)
}

func TestInvokeRoundTrip(t *testing.T) {
	ext, _ := newExtension(t)
	ctx := context.Background()

	v, err := ext.Invoke(ctx, blocks.OpCheckConnection, nil)
	require.NoError(t, err)
	assert.Equal(t, blocks.BoolValue(true), v)

	v, err = ext.Invoke(ctx, blocks.OpCheckPassword, nil)
	require.NoError(t, err)
	assert.Equal(t, "true", v.String())

	_, err = ext.Invoke(ctx, blocks.OpWriteFile, nil)
	require.NoError(t, err)

	v, err = ext.Invoke(ctx, blocks.OpReadFile, nil)
	require.NoError(t, err)
	assert.Equal(t, blocks.StringValue("Hello World"), v)

	_, err = ext.Invoke(ctx, blocks.OpCreateDirectory, nil)
	require.NoError(t, err)
	_, err = ext.Invoke(ctx, blocks.OpCreateFile, blocks.Args{blocks.ArgPath: "new_folder/new_file.txt"})
	require.NoError(t, err)

	v, err = ext.Invoke(ctx, blocks.OpListDirectory, blocks.Args{blocks.ArgPath: "new_folder"})
	require.NoError(t, err)
	assert.Equal(t, blocks.KindString, v.Kind)
	assert.JSONEq(t, `[{"name":"new_file.txt","type":"file","path":"new_folder/new_file.txt","size":0}]`, v.Str)

	_, err = ext.Invoke(ctx, blocks.OpDeletePath, blocks.Args{blocks.ArgPath: "file.txt"})
	require.NoError(t, err)
	_, err = ext.Invoke(ctx, blocks.OpReadFile, nil)
	status, ok := filesrv.StatusCode(err)
	require.True(t, ok, "expected HTTP error, got %v", err)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestInvokeSetConfig(t *testing.T) {
	ext, _ := newExtension(t)
	ctx := context.Background()

	_, err := ext.Invoke(ctx, blocks.OpSetConfig, blocks.Args{blocks.ArgURL: "http://files.local/", blocks.ArgPWD: "other"})
	require.NoError(t, err)
	assert.Equal(t, filesrv.ServerConfig{BaseAddress: "http://files.local", SharedSecret: "other"}, ext.Client().Config())

	v, err := ext.Invoke(ctx, blocks.OpCheckPassword, nil)
	require.NoError(t, err)
	assert.Equal(t, blocks.BoolValue(false), v)

	_, err = ext.Invoke(ctx, blocks.OpListDirectory, nil)
	assert.True(t, filesrv.IsUnauthorized(err), "got %v", err)

	_, err = ext.Invoke(ctx, blocks.OpSetConfig, nil)
	require.NoError(t, err)
	assert.Equal(t, filesrv.DefaultConfig(), ext.Client().Config())
}

func TestInvokeCheckPasswordSwallowsTransportErrors(t *testing.T) {
	ext := blocks.New(filesrv.New(filesrv.ServerConfig{BaseAddress: "http://127.0.0.1:1"}), nil)
	ctx := context.Background()

	v, err := ext.Invoke(ctx, blocks.OpCheckPassword, nil)
	require.NoError(t, err)
	assert.False(t, v.Bool)

	v, err = ext.Invoke(ctx, blocks.OpCheckConnection, nil)
	require.NoError(t, err)
	assert.False(t, v.Bool)

	_, err = ext.Invoke(ctx, blocks.OpReadFile, nil)
	assert.True(t, filesrv.IsTransport(err), "got %v", err)
}

func TestNewDefaultUsesDefaultConfig(t *testing.T) {
	ext := blocks.NewDefault(nil)
	require.NotNil(t, ext.Client())
	assert.Equal(t, filesrv.DefaultConfig(), ext.Client().Config())
}

func TestInvokeUnknownOpcode(t *testing.T) {
	ext, _ := newExtension(t)
	_, err := ext.Invoke(context.Background(), "launchRocket", nil)
	assert.ErrorIs(t, err, blocks.ErrUnknownOpcode)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "", blocks.Value{}.String())
	assert.Equal(t, "false", blocks.BoolValue(false).String())
	assert.Equal(t, "[]", blocks.StringValue("[]").String())
}
