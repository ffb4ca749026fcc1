package gui

import (
	"fmt"
	"os"
)

// bell writes the terminal bell to stderr. fyne has no portable sound
// API, so the graphical shell signals the same way the terminal one
// does.
type bell struct{}

func (bell) Beep() {
	fmt.Fprint(os.Stderr, "\a")
}
