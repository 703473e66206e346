package main

import (
	"fmt"
	"os"

	kerrors "github.com/kryolite/kryogen/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var reported *reportedError
		if !kerrors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
