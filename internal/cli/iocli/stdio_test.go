package iocli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdio_Print(t *testing.T) {
	out := &bytes.Buffer{}
	s := NewStdio(strings.NewReader(""), out, io.Discard)

	s.Println("hello", "world")
	s.Printf("%s=%d\n", "count", 2)
	_, err := s.Write([]byte("raw"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ncount=2\nraw", out.String())
}

func TestStdio_ReadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "line", input: "  Person  \nrest\n", want: "Person"},
		{name: "last line without newline", input: "Order", want: "Order"},
		{name: "empty input", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompts := &bytes.Buffer{}
			s := NewStdio(strings.NewReader(tt.input), io.Discard, prompts)

			got, err := s.ReadInput("Entity: ")
			assert.Equal(t, "Entity: ", prompts.String())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// не терминал: секрет читается как обычная строка
func TestStdio_ReadSecretFromPipe(t *testing.T) {
	s := NewStdio(strings.NewReader("s3cret\n"), io.Discard, io.Discard)
	got, err := s.ReadSecret("Secret: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}
