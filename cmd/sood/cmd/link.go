package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"

	"sood/internal/codegen"
)

// emitAndLink writes ctx's module to a relocatable object file and, unless
// --stop-after-object was given, invokes the host's gcc to link it into a
// native binary at the requested output path. The object file is written
// to a temporary path and removed afterwards unless stopping after the
// object-emission step, in which case it is written directly to the
// requested output path.
func emitAndLink(log zerolog.Logger, ctx *codegen.Context) error {
	objPath := flagOutput
	if !flagStopAfterObject {
		f, err := os.CreateTemp("", filepath.Base(flagOutput)+".*.o")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not create temporary object file: %s\n", err)
			return exitError{code: 1}
		}
		objPath = f.Name()
		f.Close()
		defer os.Remove(objPath)
	}

	log.Debug().Str("object", objPath).Msg("writing object code")
	if err := ctx.WriteObject(objPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return exitError{code: 1}
	}

	if flagStopAfterObject {
		return nil
	}

	cmd := exec.Command("gcc", "-o", flagOutput, objPath)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: gcc link failed: %s\n", err)
		return exitError{code: 1}
	}

	log.Info().Str("output", flagOutput).Msg("native binary written")
	return nil
}
