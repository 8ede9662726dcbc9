package display

import (
	"fmt"
	"io"

	"github.com/backmassage/audioconvert/internal/term"
)

// PrintBanner writes the ASCII art banner to w; bright magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	if term.Magenta != "" {
		fmt.Fprint(w, "\033[1;95m")
	}
	fmt.Fprint(w, `    _             _ _        ____                          _
   / \  _   _  __| (_) ___  / ___|___  _ ____   _____ _ __| |_
  / _ \| | | |/ _`+"`"+` | |/ _ \| |   / _ \| '_ \ \ / / _ \ '__| __|
 / ___ \ |_| | (_| | | (_) | |__| (_) | | | \ V /  __/ |  | |_
/_/   \_\__,_|\__,_|_|\___/ \____\___/|_| |_|\_/ \___|_|   \__|
`)
	if term.Magenta != "" {
		fmt.Fprintln(w, term.NC)
	}
}
