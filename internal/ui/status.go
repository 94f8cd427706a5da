package ui

import (
	"fmt"
	"io"
)

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Success.Render(Current().SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Error.Render("✖ "+msg))
}
