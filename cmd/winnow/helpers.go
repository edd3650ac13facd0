package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func checkStatusLabel(ok, warning bool) string {
	switch {
	case ok:
		return "OK"
	case warning:
		return "WARN"
	default:
		return "FAIL"
	}
}
