package ui

import (
	"fmt"
	"io"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

// OK writes a success line to w.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(symCheck+" "+msg))
}

// Fail writes a failure line to w.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render(symCross+" "+msg))
}
