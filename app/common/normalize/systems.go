package normalize

import (
	"sort"
	"strings"
	"unicode"
)

var systemCodes = map[string]byte{
	"windows": 'w',
	"osx":     'm',
	"mac":     'm',
	"linux":   'l',
}

// CompressSystems encodes a set of supported systems as sorted one-letter codes,
// e.g. {"windows", "osx", "linux"} -> "lmw". Unknown systems use their first letter.
// The result does not depend on the order of systems and ignores duplicates.
func CompressSystems(systems []string) string {
	if len(systems) == 0 {
		return ""
	}

	seen := make(map[byte]struct{}, len(systems))
	codes := make([]byte, 0, len(systems))
	for _, system := range systems {
		code, ok := systemCode(system)
		if !ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return string(codes)
}

func systemCode(system string) (byte, bool) {
	name := strings.ToLower(strings.TrimSpace(system))
	if name == "" {
		return 0, false
	}
	if code, ok := systemCodes[name]; ok {
		return code, true
	}
	for _, r := range name {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return byte(r), true
		}
	}
	return 0, false
}
