package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/0xPuncker/taskboard/internal/generator"
	"github.com/0xPuncker/taskboard/internal/source"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitAcquisition = 2
	exitWrite       = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	err := newRootCmd().Execute()
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var acqErr *source.AcquisitionError
	var writeErr *generator.WriteError
	switch {
	case errors.As(err, &acqErr):
		return exitAcquisition
	case errors.As(err, &writeErr):
		return exitWrite
	default:
		return exitFailure
	}
}
