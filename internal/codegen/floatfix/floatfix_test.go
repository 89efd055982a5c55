package floatfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3", "3.f"},
		{"0", "0.f"},
		{"3.0", "3.0f"},
		{"3.0f", "3.0f"},
		{"3.", "3.f"},
		{"3.f", "3.f"},
		{".5", ".5f"},
		{"-1.5", "-1.5f"},
		{"{1, 2.5, 3}", "{1.f, 2.5f, 3.f}"},
		{"1e5", "1e5"},
		{"1.5e3", "1.5e3"},
		{"0x10", "0x10"},
		{"ARR_2 + x1", "ARR_2 + x1"},
		{"/* 3 */ 4", "/* 3 */ 4.f"},
		{"// 3", "// 3"},
		{`"v3" 2`, `"v3" 2.f`},
		{`"a \" 3"`, `"a \" 3"`},
		{"tbl[3] * 2", "tbl[3] * 2.f"},
		{"(float *)p", "(float *)p"},
		{"(const uint8 *)buf + 1", "(const uint8 *)buf + 1.f"},
		{"/*x*/3", "/*x*/3.f"},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := Rewrite(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, Rewrite(got), "idempotent")
		})
	}
}

func TestRewriteManyPlaceholders(t *testing.T) {
	in := ""
	want := ""
	for i := 0; i < 30; i++ {
		in += "/* 1 */ 2 "
		want += "/* 1 */ 2.f "
	}
	assert.Equal(t, want, Rewrite(in))
}

func TestIsFloatType(t *testing.T) {
	cases := map[string]bool{
		"float":         true,
		"double":        true,
		"const float":   true,
		"static double": true,
		"FLOAT32":       true,
		"f32":           true,
		"float *":       false,
		"int":           false,
		"uint8":         false,
		"":              false,
	}
	for typ, want := range cases {
		assert.Equal(t, want, IsFloatType(typ), typ)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "3", Normalize("3", "int"))
	assert.Equal(t, "3.f", Normalize("3", "float"))
	assert.Equal(t, "3.0f", Normalize("3.0", "double"))
}
