package main

import (
	"io"
	"os"
)

var stdin io.Reader = os.Stdin

func readStdin() ([]byte, error) {
	return io.ReadAll(stdin)
}
