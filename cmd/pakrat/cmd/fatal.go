package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pakrat-io/pakrat/pkg/origin"
	"github.com/spf13/afero"
)

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// cmdOut receives command output instead of os.Stdout during test
	cmdOut io.Writer = os.Stdout

	// diagOut receives user-facing diagnostics instead of os.Stderr
	// during test
	diagOut io.Writer = os.Stderr

	// cmdFs is patched to a memory filesystem during test
	cmdFs afero.Fs = afero.NewOsFs()

	// cmdRunner is patched to a fake command runner during test
	cmdRunner origin.Runner = origin.ExecRunner{}
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}

// diagLogger builds the logger that prefixes diagnostics with the tool
// name, the way they appear on a terminal.
func diagLogger() *log.Logger {
	return log.New(diagOut, "pakrat: ", 0)
}
