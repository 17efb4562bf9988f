package main

import (
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var stdoutIsTerminal = sync.OnceValue(func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
})

// emphasize bolds s on a terminal and leaves piped help untouched.
func emphasize(s string) string {
	if stdoutIsTerminal() {
		return pterm.Bold.Sprint(s)
	}
	return s
}

// usageFuncs are the helpers msgs/usage-template.txt calls.
var usageFuncs = template.FuncMap{
	"bold":      emphasize,
	"upper":     strings.ToUpper,
	"boldUpper": func(s string) string { return emphasize(strings.ToUpper(s)) },
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(usageFuncs)
}
