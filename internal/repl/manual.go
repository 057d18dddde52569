package repl

import (
	"fmt"
	"strings"
)

const keywords = `Keywords:
    exit, quit           Exit the calculator
    man, help            This manual
    ls                   List the current directory
    name = expression    Store a result in a variable
    ans                  The last result
    :vars                List variables
    :modules             List loaded modules
    :history [n]         Show the last n evaluated lines
    :explain expression  Show the functions and variables an expression uses`

// Banner is printed when the interactive calculator starts.
func Banner(version string) string {
	return fmt.Sprintf(`
        _                                 _
  _ __ | |__   __ _ ___  ___  _ __ ___ __ _| | ___
 | '_ \| '_ \ / _' / __|/ _ \| '__/ __/ _' | |/ __|
 | |_) | | | | (_| \__ \ (_) | | | (_| (_| | | (__
 | .__/|_| |_|\__,_|___/\___/|_|  \___\__,_|_|\___|
 |_| %s
  > Type 'exit' to exit, or 'man' for more information.
`, version)
}

func (r *REPL) printManual() {
	fmt.Fprintln(r.out, keywords)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Modules: %s\n", strings.Join(r.reg.Modules(), ", "))
	fmt.Fprintln(r.out, "Functions:")

	funcs := r.reg.EvalContext().Functions
	for _, name := range r.reg.Functions() {
		fmt.Fprintf(r.out, "    %-16s %s\n", name, funcs[name].Description())
	}
}
