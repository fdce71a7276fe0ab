package layout

import (
	"strconv"
	"strings"

	"github.com/tordrt/schemasheet/internal/errs"
)

// MaxSheetNameLength is the xlsx limit on worksheet names, in characters
const MaxSheetNameLength = 31

const maxSuffixAttempts = 999

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SheetName maps an entity name onto a legal worksheet name. It is the only
// name transform used both to create sheets and to build links to them.
// Quotes are trimmed after truncation so a cut never leaves one at the end.
func SheetName(name string) string {
	name = sheetNameReplacer.Replace(name)
	name = truncate(strings.TrimLeft(name, "'"), MaxSheetNameLength)
	return strings.TrimRight(name, "'")
}

func truncate(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}

// Namer hands out unique sheet names. Worksheet names compare
// case-insensitively, so two tables that only differ after truncation or
// in case receive ~2, ~3, ... suffixes in assignment order.
type Namer struct {
	used map[string]bool
}

// NewNamer creates a namer with the given names already taken
func NewNamer(reserved ...string) *Namer {
	n := &Namer{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

// Assign returns the sheet name for entity and marks it as taken
func (n *Namer) Assign(entity string) (string, error) {
	base := SheetName(entity)
	if base == "" {
		return "", errs.Layout("entity %q has no usable sheet name", entity)
	}

	candidate := base
	for i := 2; n.used[strings.ToLower(candidate)]; i++ {
		if i > maxSuffixAttempts {
			return "", errs.Layout("sheet name %q collides with %d other entities", base, maxSuffixAttempts)
		}
		suffix := "~" + strconv.Itoa(i)
		candidate = strings.TrimRight(truncate(base, MaxSheetNameLength-len(suffix)), "'") + suffix
	}

	n.used[strings.ToLower(candidate)] = true
	return candidate, nil
}
