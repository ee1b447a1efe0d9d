package codeclean

import (
	"regexp"
	"strings"
)

// fenceMarker opens and closes a fenced code region.
const fenceMarker = "```"

// proseMarkers are phrases that identify explanatory text around generated
// code. Matching is a case-insensitive substring test.
var proseMarkers = []string{
	"here is",
	"here's",
	"below is",
	"example usage",
	"note:",
	"explanation:",
	"this code",
	"this program",
	"this function",
	"time complexity",
	"space complexity",
}

// codeTokens mark a line as code when they appear anywhere in it.
var codeTokens = []string{
	"{", "}", "(", ")", "[", "]",
	"=", ";", ":", "->", "=>",
	"++", "--", `"""`, "'''",
}

// commentPrefixes start a comment line in the supported notations. Comment
// lines are code and are never tested for prose markers.
var commentPrefixes = []string{"#", "//", "/*"}

// keywordPrefixes mark a line as code when it starts with them.
var keywordPrefixes = []string{
	"def ", "class ", "import ", "from ", "return ", "if ", "elif ", "else ",
	"for ", "while ", "try", "except", "finally", "with ", "yield ", "raise ",
	"func ", "package ", "let ", "const ", "var ", "fn ", "public ", "private ",
	"static ", "int ", "print", "@",
}

// bareKeywords are complete statements on their own.
var bareKeywords = map[string]bool{
	"pass":     true,
	"break":    true,
	"continue": true,
	"return":   true,
	"else":     true,
	"try":      true,
	"finally":  true,
	"end":      true,
	"begin":    true,
	"done":     true,
	"fi":       true,
	"raise":    true,
	"yield":    true,
}

var (
	// statementPattern matches a call or an assignment at the start of a line.
	statementPattern = regexp.MustCompile(`^[A-Za-z_][\w.]*(\[[^\]]*\])?\s*(\(|(:|[-+*/%|&^])?=([^=]|$))`)

	doubleQuoted = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	// singleQuoted requires a non-word character before the quote so that
	// apostrophes in prose are left alone.
	singleQuoted = regexp.MustCompile(`(^|\W)'(?:[^'\\]|\\.)*'`)
)

// pythonNotations select indentation reconstruction.
var pythonNotations = map[string]bool{
	"python":  true,
	"python3": true,
	"py":      true,
}

// dedentPrefixes close the block opened by the previous clause. A line
// starting with one is emitted one level shallower.
var dedentPrefixes = []string{"else:", "elif ", "except:", "except ", "finally:"}

// IsIndentSignificant reports whether notation gets indentation rebuilt.
func IsIndentSignificant(notation string) bool {
	return pythonNotations[strings.ToLower(strings.TrimSpace(notation))]
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), fenceMarker)
}

func isComment(trimmed string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

func isProse(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	for _, m := range proseMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func looksLikeCode(trimmed string) bool {
	if bareKeywords[strings.ToLower(trimmed)] {
		return true
	}
	for _, p := range keywordPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	for _, tok := range codeTokens {
		if strings.Contains(trimmed, tok) {
			return true
		}
	}
	return false
}

func isStatement(code string) bool {
	return statementPattern.MatchString(code)
}

// stripLiterals empties quoted string literals so their text is not judged.
func stripLiterals(trimmed string) string {
	s := doubleQuoted.ReplaceAllString(trimmed, `""`)
	return singleQuoted.ReplaceAllString(s, "${1}''")
}

// bracketDelta returns opened minus closed brackets in code.
func bracketDelta(code string) int {
	n := 0
	for _, r := range code {
		switch r {
		case '(', '[', '{':
			n++
		case ')', ']', '}':
			n--
		}
	}
	return n
}

func isDedent(trimmed string) bool {
	for _, p := range dedentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
