// Package iocli abstracts terminal input and output of the command line tools
package iocli

//go:generate moq -out io_mock.go . IO

// IO is the terminal seen by a command
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
