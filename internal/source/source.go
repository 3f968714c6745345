// Package source acquires program text for the compiler driver, either
// from a named file or, when no path is given, from standard input.
package source

import (
	"errors"
	"io"
	"os"
)

// Read returns the program text at path. An empty path reads all of
// standard input instead, so the driver can be used in a pipeline
// ("cat prog.sood | sood").
func Read(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.New("read stdin: " + err.Error())
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
