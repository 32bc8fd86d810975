package selection

import (
	"fmt"
	"strings"

	"github.com/youruser/bigcollage/internal/catalog"
)

// Summary renders the selection as plain text, one numbered line per item in
// placement order.
func Summary(s *Session) string {
	lines := []string{"# " + s.State().Title}
	for i, it := range s.sel.Items() {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, catalog.Label(it), it))
	}
	return strings.Join(lines, "\n")
}
