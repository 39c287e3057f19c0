package output

import (
	"fmt"
	"io"

	"github.com/strixsec/strix/internal/modules"
)

// WriteModules lists the available modules grouped by kind.
func WriteModules(w io.Writer, discoverers []modules.SubdomainModule, checks []modules.HTTPModule) {
	fmt.Fprintln(w, "Subdomain discovery modules:")
	for _, m := range discoverers {
		fmt.Fprintf(w, "  %-28s %s\n", m.Name(), m.Description())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTTP check modules:")
	for _, m := range checks {
		fmt.Fprintf(w, "  %-28s %s\n", m.Name(), m.Description())
	}
}
