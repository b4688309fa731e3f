package core

import (
	"testing"
)

func TestEscapeCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Vegetarian", "Vegetarian"},
		{"empty", "", ""},
		{"comma", "a,b", `"a,b"`},
		{"quote", `say "hi"`, `"say ""hi"""`},
		{"comma and quote", `"x",y`, `"""x"",y"`},
		{"semicolon is not escaped", "board;social", "board;social"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeCell(tt.input); got != tt.want {
				t.Errorf("EscapeCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain line",
			line: "Ann Lee,Year 1,A1234567B",
			want: []string{"Ann Lee", "Year 1", "A1234567B"},
		},
		{
			name: "empty cells kept",
			line: "a,,b,",
			want: []string{"a", "", "b", ""},
		},
		{
			name: "quoted cell with delimiter",
			line: `x,"a,b",y`,
			want: []string{"x", "a,b", "y"},
		},
		{
			name: "doubled quotes unwrapped",
			line: `x,"say ""hi"""`,
			want: []string{"x", `say "hi"`},
		},
		{
			name: "stray quote kept literally",
			line: `O"Brien,Year 1`,
			want: []string{`O"Brien`, "Year 1"},
		},
		{
			name: "unterminated quote splits on every comma",
			line: `Ann Lee,"Year 1,A1234567B,ann@x.com,81234567,None,Member,x`,
			want: []string{"Ann Lee", `"Year 1`, "A1234567B", "ann@x.com", "81234567", "None", "Member", "x"},
		},
		{
			name: "text after closing quote splits on every comma",
			line: `Ann Lee,Member,"a""b" ,c`,
			want: []string{"Ann Lee", "Member", `"a""b" `, "c"},
		},
		{
			name: "stray quote beside a quoted cell",
			line: `O"Brien,"a,b"`,
			want: []string{`O"Brien`, `"a`, `b"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLine(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cell %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitLine_InvertsFormatLine(t *testing.T) {
	cells := []string{"Ann Lee", "a,b", `"quoted"`, `mixed "x", y`, ""}

	got := SplitLine(FormatLine(cells))
	if len(got) != len(cells) {
		t.Fatalf("round trip produced %d cells, want %d", len(got), len(cells))
	}
	for i := range cells {
		if got[i] != cells[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], cells[i])
		}
	}
}

func TestCellAt(t *testing.T) {
	cells := []string{"  padded  ", "x"}

	if got := cellAt(cells, 0); got != "padded" {
		t.Errorf("cellAt(0) = %q, want %q", got, "padded")
	}
	if got := cellAt(cells, 5); got != "" {
		t.Errorf("cellAt(5) = %q, want empty", got)
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"valid ascii", []byte("hello"), "hello"},
		{"valid multibyte", []byte("Zoë"), "Zoë"},
		{"invalid byte", []byte{'a', 0xff, 'b'}, "a�b"},
		{"truncated sequence", []byte{'x', 0xe2, 0x82}, "x��"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(sanitizeUTF8(tt.input)); got != tt.want {
				t.Errorf("sanitizeUTF8() = %q, want %q", got, tt.want)
			}
		})
	}
}
