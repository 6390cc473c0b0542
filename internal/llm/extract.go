package llm

import "strings"

// FirstJSONObject locates the first balanced {...} span in raw model
// output and returns it cleaned up for parsing. Models wrap JSON in
// markdown fences, prepend commentary, slip in // comments and emit
// bare ".5" literals despite instructions not to; all of that is
// tolerated here. Returns false when no object is present.
func FirstJSONObject(raw string) (string, bool) {
	obj := balancedObject(dropFenceLines(raw))
	if obj == "" {
		return "", false
	}
	return scrubJSON(obj), true
}

// dropFenceLines removes markdown code-fence marker lines, keeping the
// fenced content itself.
func dropFenceLines(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// balancedObject returns the first brace-balanced object span,
// respecting string literals and escapes.
func balancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth, inStr, esc := 0, false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case esc:
			esc = false
		case inStr && c == '\\':
			esc = true
		case c == '"':
			inStr = !inStr
		case inStr:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// scrubJSON strips //-style and /* */ comments outside string literals
// and rewrites leading-decimal numbers (".5", "-.5") into valid JSON.
func scrubJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if esc {
				esc = false
			} else if c == '\\' {
				esc = true
			} else if c == '"' {
				inStr = false
			}
			continue
		}
		switch {
		case c == '"':
			inStr = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
		case c == '.' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' && atNumberStart(s, i):
			b.WriteString("0.")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// atNumberStart reports whether the '.' at position i begins a numeric
// literal rather than continuing one.
func atNumberStart(s string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch s[j] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':', ',', '[', '{', '-':
			return true
		default:
			return false
		}
	}
	return true
}
