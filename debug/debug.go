// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — cold-path diagnostic logging helper
//
// Purpose:
//   - Logs rare conditions in cmd/ebrbench (a config or report error, a
//     failed CPU pin, a received interrupt) without the caller having to
//     reach for fmt.Sprintf on every call.
//
// Notes:
//   - Writes each fragment to stderr separately instead of building one
//     concatenated string first.
//
// ⚠️ Never invoke from inside a critical region — these calls are not
//    bounded-time and have no business holding up epoch advancement.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "os"

// DropError logs prefix followed by err's message, or just prefix if err
// is nil.
func DropError(prefix string, err error) {
	if err != nil {
		writeParts(prefix, ": ", err.Error(), "\n")
	} else {
		writeParts(prefix, "\n")
	}
}

// DropMessage logs prefix followed by message.
func DropMessage(prefix, message string) {
	writeParts(prefix, ": ", message, "\n")
}

func writeParts(parts ...string) {
	for _, p := range parts {
		os.Stderr.WriteString(p)
	}
}
