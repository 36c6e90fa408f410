package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/notepad/pkg/core"
)

func main() {
	Execute()
}

// fatal reports err and exits; a missing note exits with 2 so scripts can tell it apart.
func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "notepad: %s: %v\n", msg, err)
	if errors.Is(err, core.ErrNotFound) {
		os.Exit(2)
	}
	os.Exit(1)
}
