package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/cli/iocli"
	"github.com/iudanet/matchsync/internal/config"
	"github.com/iudanet/matchsync/internal/transport/signing"
	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

func TestResolveSecret(t *testing.T) {
	dir := t.TempDir()
	secretFile := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(secretFile, []byte("from-file\n"), 0o600))
	emptyFile := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(emptyFile, []byte("  \n"), 0o600))

	prompting := func(answer string, err error) *iocli.IOMock {
		return &iocli.IOMock{
			ReadSecretFunc: func(prompt string) (string, error) { return answer, err },
		}
	}

	tests := []struct {
		term       *iocli.IOMock
		name       string
		configured string
		file       string
		want       string
		wantErr    error
		prompt     bool
		wantPrompt int
	}{
		{name: "configured wins", term: prompting("typed", nil), configured: "from-env", file: secretFile, prompt: true, want: "from-env"},
		{name: "file", term: prompting("typed", nil), file: secretFile, prompt: true, want: "from-file"},
		{name: "empty file", term: prompting("", nil), file: emptyFile, wantErr: signing.ErrEmptySecret},
		{name: "prompt", term: prompting("typed", nil), prompt: true, want: "typed", wantPrompt: 1},
		{name: "empty prompt", term: prompting("", nil), prompt: true, wantErr: signing.ErrEmptySecret, wantPrompt: 1},
		{name: "signing off", term: prompting("typed", nil), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSecret(tt.term, tt.configured, tt.file, tt.prompt)
			assert.Len(t, tt.term.ReadSecretCalls(), tt.wantPrompt)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("prompt failure", func(t *testing.T) {
		_, err := ResolveSecret(prompting("", errors.New("no tty")), "", "", true)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ResolveSecret(prompting("", nil), "", filepath.Join(dir, "missing"), false)
		assert.Error(t, err)
	})
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs([]string{"FirstName=Ann", "Address.City=Oslo", "Note="})
	require.NoError(t, err)
	assert.Equal(t, []string{"FirstName", "Ann", "Address.City", "Oslo", "Note", ""}, pairs)

	_, err = ParsePairs([]string{"FirstName"})
	assert.Error(t, err)
	_, err = ParsePairs([]string{"=Ann"})
	assert.Error(t, err)
}

func TestPrinter(t *testing.T) {
	resp := &api.Response{
		ResponseType: api.ResponseSuccess,
		RequestType:  api.RequestGet,
		ProcessID:    "p1",
		Key:          models.NewKey("Acme", "Person", "1"),
		Data:         models.NewDataFromMap(map[string]string{"FirstName": "Ann"}),
	}

	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		p, err := NewPrinter(OutputJSON, buf)
		require.NoError(t, err)
		require.NoError(t, p.Print(resp))
		assert.Contains(t, buf.String(), `"process_id": "p1"`)
	})

	t.Run("yaml", func(t *testing.T) {
		buf := &bytes.Buffer{}
		p, err := NewPrinter(OutputYAML, buf)
		require.NoError(t, err)
		require.NoError(t, p.Print(resp))
		assert.Contains(t, buf.String(), "process_id: p1")
		assert.Contains(t, buf.String(), "FirstName: Ann")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewPrinter("xml", io.Discard)
		assert.Error(t, err)
	})
}

func TestGlobalOptions_Load(t *testing.T) {
	opts := &GlobalOptions{}
	cmd := &cobra.Command{Use: "test"}
	opts.Register(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--log-format=json", "--broker=memory"}))

	cfg, logger, err := opts.Load(cmd)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, config.BrokerMemory, cfg.Broker.Kind)

	require.NoError(t, cmd.Flags().Set("broker", "kafka"))
	_, _, err = opts.Load(cmd)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConnect_Memory(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	conn, err := Connect(ctx, cfg, "secret", logger)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	topic, err := conn.Broker().GetTopic(ctx, api.TopicRequest)
	require.NoError(t, err)
	assert.Equal(t, api.TopicRequest, topic.Name)
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("matchctl", BuildInfo{Version: "1.0.0", BuildDate: "today", GitCommit: "abc"})
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Version:    1.0.0")
	assert.Contains(t, buf.String(), "Git Commit: abc")
}
