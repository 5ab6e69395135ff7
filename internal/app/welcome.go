package app

import (
	"fmt"
	"io"

	"github.com/jask/petrus/internal/terminal"
)

const banner = `
 ____      _
|  _ \ ___| |_ _ __ _   _ ___
| |_) / _ \ __| '__| | | / __|
|  __/  __/ |_| |  | |_| \__ \
|_|   \___|\__|_|   \__,_|___/
`

// Welcome prints the startup banner.
func Welcome(w io.Writer, version string) {
	fmt.Fprintln(w, terminal.Accent(banner))
	fmt.Fprintf(w, "%s %s\n", terminal.Title("DID and verifiable credential wallet"), terminal.Muted(version))
	fmt.Fprintln(w, terminal.Muted("Create DIDs, issue credentials, present and verify them."))
}
