package main

import (
	"errors"
	"os"

	"github.com/utkrisht/uki/compiler/internal/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			term.Wprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
