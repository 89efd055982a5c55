// Package opcode maps the operation-code cell of a row to the mode that
// row is parsed and emitted in.
package opcode

// Mode is the parsing/emission mode of one row.
type Mode int

const (
	None Mode = iota
	Title
	TitleSource
	TitleHeader
	Subtitle
	Description
	Define
	Typedef
	StructMember
	StructEnd
	Enum
	EnumMember
	EnumEnd
	Array
	ArrayMember
	Variable
	RawCode
	PragmaSet
	PragmaEnd
	ProjectDefine
)

// Prefix starts every operation-code token.
const Prefix = "$"

var tokens = map[string]Mode{
	"$TITLE":       Title,
	"$TITLE_C":     TitleSource,
	"$TITLE_H":     TitleHeader,
	"$SUBTITLE":    Subtitle,
	"$DESC":        Description,
	"$DEFINE":      Define,
	"$TYPEDEF":     Typedef,
	"$MEMBER":      StructMember,
	"$STRUCT_END":  StructEnd,
	"$ENUM":        Enum,
	"$ENUM_MEMBER": EnumMember,
	"$ENUM_END":    EnumEnd,
	"$ARRAY":       Array,
	"$VAR":         Variable,
	"$CODE":        RawCode,
	"$PRAGMA":      PragmaSet,
	"$PRAGMA_END":  PragmaEnd,
	"$PROJ":        ProjectDefine,
}

var names = [...]string{
	None:          "none",
	Title:         "title",
	TitleSource:   "title-source",
	TitleHeader:   "title-header",
	Subtitle:      "subtitle",
	Description:   "description",
	Define:        "define",
	Typedef:       "typedef",
	StructMember:  "struct-member",
	StructEnd:     "struct-end",
	Enum:          "enum",
	EnumMember:    "enum-member",
	EnumEnd:       "enum-end",
	Array:         "array",
	ArrayMember:   "array-member",
	Variable:      "variable",
	RawCode:       "raw-code",
	PragmaSet:     "pragma-set",
	PragmaEnd:     "pragma-end",
	ProjectDefine: "project-define",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(names) {
		return "invalid"
	}
	return names[m]
}

// IsTitle reports whether m starts a new title section.
func (m Mode) IsTitle() bool {
	return m == Title || m == TitleSource || m == TitleHeader
}

// Lookup returns the mode for an exact token.
func Lookup(token string) (Mode, bool) {
	m, ok := tokens[token]
	return m, ok
}

// Tokens returns the token for each mode that has one.
func Tokens() map[Mode]string {
	out := make(map[Mode]string, len(tokens))
	for t, m := range tokens {
		out[m] = t
	}
	return out
}
