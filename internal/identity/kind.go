package identity

import (
	"fmt"
	"strings"

	"github.com/conn-castle/omnisharp-client/internal/messages"
)

// Kind is the managed runtime a server build targets.
type Kind int

const (
	// ClrOrMono targets the desktop CLR on Windows and the Mono interpreter elsewhere.
	// It is the zero value and therefore the default.
	ClrOrMono Kind = iota
	// CoreClr targets the cross-platform managed runtime.
	CoreClr
)

func (k Kind) String() string {
	switch k {
	case ClrOrMono:
		return "ClrOrMono"
	case CoreClr:
		return "CoreClr"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the config spellings of a Kind.
// An empty string yields the default kind.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "clrormono", "clr-or-mono", "mono", "clr":
		return ClrOrMono, nil
	case "coreclr", "core-clr", "core":
		return CoreClr, nil
	default:
		return 0, fmt.Errorf(messages.IdentityUnknownKindFmt, raw)
	}
}
