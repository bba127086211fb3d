// keepalive - Foreground mode and persistent status notification for long-running tasks
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/keepalive

package main

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/keepalive/internal/cli"
	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		if cliErr := apperrors.AsCLIError(err); cliErr != nil {
			apperrors.PrintError(cliErr)
		} else {
			fmt.Fprint(os.Stderr, apperrors.FormatSimpleError(err, apperrors.Runtime))
		}
		os.Exit(cli.ExitCode(err))
	}
}
