package common

import (
	"path/filepath"
	"strings"
)

// SanitizeLeadingDigit prefixes names that start with a digit with "_"
// to keep identifiers valid C.
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "_" + name
	}
	return name
}

// GuardName derives the include guard macro of a header file name.
// Example: "can_cfg.h" => "CAN_CFG_H", "dir/2nd-table.h" => "_2ND_TABLE_H".
func GuardName(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	var b strings.Builder
	for _, r := range strings.ToUpper(base) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return SanitizeLeadingDigit(b.String())
}
