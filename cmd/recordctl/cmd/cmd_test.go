package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ssargent/brokercore/pkg/api"
	"github.com/ssargent/brokercore/pkg/codec"
	"github.com/ssargent/brokercore/pkg/config"
	"github.com/ssargent/brokercore/pkg/di"
)

// executeCommand runs a fresh command tree with HOME pointed at a temp dir so
// no user config is picked up
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default record",
			args: []string{"encode"},
			want: "0c000000010100\n",
		},
		{
			name: "value only",
			args: []string{"encode", "--value", "message1"},
			want: "1c00000001106d6573736167653100\n",
		},
		{
			name: "empty key is present",
			args: []string{"encode", "--key", ""},
			want: "0c000000000100\n",
		},
		{
			name: "hex value",
			args: []string{"encode", "--value", "ff00", "--value-encoding", "hex"},
			want: "1000000001" + "04ff00" + "00\n",
		},
		{
			name: "offset and timestamp",
			args: []string{"encode", "--offset", "150", "--timestamp", "-1", "--attributes", "3"},
			want: "0e" + "03" + "01" + "ac02" + "01" + "01" + "00\n",
		},
		{
			name: "sequence is not encoded",
			args: []string{"encode", "--sequence", "99"},
			want: "0c000000010100\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestEncodeCommand_Formats(t *testing.T) {
	want := codec.NewRecordBuilder().WithValue([]byte("message1")).Build().Encode()

	t.Run("base64", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "encode", "--value", "message1", "--format", "base64")
		require.NoError(t, err)
		assert.Equal(t, base64.StdEncoding.EncodeToString(want)+"\n", stdout)
	})

	t.Run("raw", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "encode", "--value", "message1", "-f", "raw")
		require.NoError(t, err)
		assert.Equal(t, string(want), stdout)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := executeCommand(t, "encode", "--format", "yaml")
		assert.Error(t, err)
	})
}

func TestEncodeCommand_KSUIDKey(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "encode", "--key-ksuid")
	require.NoError(t, err)

	encoded, err := hex.DecodeString(strings.TrimSpace(stdout))
	require.NoError(t, err)
	// 27 byte key: body of 33 bytes behind a one byte prefix
	assert.Len(t, encoded, 34)
	assert.Equal(t, byte(33<<1), encoded[0])
	assert.Contains(t, stderr, "generated record key")
}

func TestEncodeCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad key encoding", []string{"encode", "--key", "abc", "--key-encoding", "rot13"}},
		{"bad hex value", []string{"encode", "--value", "zz", "--value-encoding", "hex"}},
		{"key and ksuid", []string{"encode", "--key", "a", "--key-ksuid"}},
		{"format and spool", []string{"encode", "--format", "raw", "--spool", "x.log"}},
		{"positional args", []string{"encode", "extra"}},
		{"bad log level", []string{"encode", "--log-level", "loud"}},
		{"missing config", []string{"encode", "--config", "/nonexistent/recordctl.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestEncodeCommand_Spool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spool", "records.log")

	stdout, _, err := executeCommand(t, "encode", "--value", "message1", "--spool", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	_, _, err = executeCommand(t, "encode", "--offset", "1", "--spool", path)
	require.NoError(t, err)

	first := codec.NewRecordBuilder().WithValue([]byte("message1")).Build().Encode()
	second := codec.NewRecordBuilder().WithOffset(1).Build().Encode()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, append(first, second...), data)
}

func TestEncodeCommand_ConfigFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfig()
	cfg.Output.Format = "base64"
	require.NoError(t, config.SaveConfig(cfg, configPath))

	want := codec.NewRecord().Encode()

	stdout, _, err := executeCommand(t, "encode", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(want)+"\n", stdout)

	// flag beats config
	stdout, _, err = executeCommand(t, "encode", "--config", configPath, "--format", "hex")
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want)+"\n", stdout)
}

func TestSizeCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "size", "--value", "message1")
	require.NoError(t, err)
	assert.Equal(t, "body_length: 14\nencoded_length: 15\n", stdout)

	stdout, _, err = executeCommand(t, "size")
	require.NoError(t, err)
	assert.Equal(t, "body_length: 6\nencoded_length: 7\n", stdout)

	_, _, err = executeCommand(t, "size", "--key", "zz", "--key-encoding", "base64")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "recordctl", "config.yaml")

	stdout, _, err := executeCommand(t, "init", "--config", configPath, "--print-key")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration written to "+configPath)
	assert.Contains(t, stdout, "API Key: ")

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Len(t, cfg.Security.APIKey, 64)

	_, _, err = executeCommand(t, "init", "--config", configPath)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = executeCommand(t, "init", "--config", configPath, "--force")
	require.NoError(t, err)

	reloaded, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.NotEqual(t, cfg.Security.APIKey, reloaded.Security.APIKey)
}

type fakeStarter struct {
	called bool
	config api.ServerConfig
	err    error
}

func (f *fakeStarter) StartServer(_ context.Context, config api.ServerConfig, _ *zap.Logger) error {
	f.called = true
	f.config = config
	return f.err
}

type fakeFactory struct {
	starter *fakeStarter
}

func (f *fakeFactory) CreateServerStarter() api.ServerStarter {
	return f.starter
}

func withFakeStarter(t *testing.T, starter *fakeStarter) {
	t.Helper()
	c := di.NewContainer()
	c.SetServerFactory(&fakeFactory{starter: starter})
	SetContainer(c)
	t.Cleanup(func() { SetContainer(nil) })
}

func TestServeCommand(t *testing.T) {
	t.Run("defaults from config", func(t *testing.T) {
		starter := &fakeStarter{}
		withFakeStarter(t, starter)

		_, _, err := executeCommand(t, "serve")
		require.NoError(t, err)
		require.True(t, starter.called)
		assert.Equal(t, api.ServerConfig{
			Port:          8080,
			Bind:          "127.0.0.1",
			DefaultFormat: "hex",
		}, starter.config)
	})

	t.Run("flags override", func(t *testing.T) {
		starter := &fakeStarter{}
		withFakeStarter(t, starter)

		_, _, err := executeCommand(t, "serve", "--port", "9000", "--bind", "0.0.0.0", "--api-key", "secret")
		require.NoError(t, err)
		assert.Equal(t, 9000, starter.config.Port)
		assert.Equal(t, "0.0.0.0", starter.config.Bind)
		assert.Equal(t, "secret", starter.config.APIKey)
	})

	t.Run("config api key", func(t *testing.T) {
		starter := &fakeStarter{}
		withFakeStarter(t, starter)

		configPath := filepath.Join(t.TempDir(), "config.yaml")
		cfg := config.DefaultConfig()
		cfg.Security.APIKey = "from-config"
		cfg.Port = 7000
		require.NoError(t, config.SaveConfig(cfg, configPath))

		_, _, err := executeCommand(t, "serve", "--config", configPath)
		require.NoError(t, err)
		assert.Equal(t, "from-config", starter.config.APIKey)
		assert.Equal(t, 7000, starter.config.Port)
	})

	t.Run("starter error", func(t *testing.T) {
		starter := &fakeStarter{err: assert.AnError}
		withFakeStarter(t, starter)

		_, _, err := executeCommand(t, "serve")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
