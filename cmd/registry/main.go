package main

import (
	"errors"
	"fmt"
	"os"

	"registrydash/cmd/registry/commands"
	apierrors "registrydash/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var appErr *apierrors.AppError
		if errors.As(err, &appErr) {
			fmt.Fprintln(os.Stderr, appErr.UserMessage())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
