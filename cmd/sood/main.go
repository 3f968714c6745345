// Command sood compiles Sood source into a native binary via LLVM.
package main

import (
	"os"

	"sood/cmd/sood/cmd"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := cmd.Execute(); err != nil {
		if ec, ok := err.(exitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}
