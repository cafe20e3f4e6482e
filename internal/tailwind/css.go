package tailwind

import (
	"regexp"
	"strings"

	"github.com/torch-corp/glare/internal/packages"
)

const (
	cssMarkerStart = "/* glare:plugins:start */"
	cssMarkerEnd   = "/* glare:plugins:end */"

	tailwindImport = `@import "tailwindcss";`
)

// v3Directives must appear in the global stylesheet of a v3 project
var v3Directives = []string{
	"@tailwind base;",
	"@tailwind components;",
	"@tailwind utilities;",
}

var (
	tailwindImportRe = regexp.MustCompile(`@import\s+["']tailwindcss["'];?`)
	cssBlockRe       = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(cssMarkerStart) + `.*?` + regexp.QuoteMeta(cssMarkerEnd) + `\n?`)
)

// GlobalCSSCandidates are the stylesheets looked for, in order, for a framework
func GlobalCSSCandidates(fw packages.Framework) []string {
	if fw == packages.FrameworkNext {
		return []string{
			"app/globals.css",
			"src/app/globals.css",
			"styles/globals.css",
			"src/styles/globals.css",
		}
	}
	return []string{
		"src/index.css",
		"src/globals.css",
		"src/App.css",
		"index.css",
		"styles/globals.css",
	}
}

// DefaultGlobalCSS is created when no candidate stylesheet exists
func DefaultGlobalCSS(fw packages.Framework) string {
	if fw == packages.FrameworkNext {
		return "app/globals.css"
	}
	return "src/index.css"
}

// PatchCSSv4 adds the @plugin directives a v4 project needs after its
// `@import "tailwindcss"` line, adding that import when absent. Directives
// already present outside the glare block are not repeated.
func PatchCSSv4(content string) (string, bool) {
	outside := cssBlockRe.ReplaceAllString(content, "")

	var lines []string
	for _, p := range V4Plugins {
		if !strings.Contains(outside, `"`+p+`"`) && !strings.Contains(outside, `'`+p+`'`) {
			lines = append(lines, `@plugin "`+p+`";`)
		}
	}
	if !strings.Contains(outside, "mapping-color-system-v4/tailwindVars.css") {
		lines = append(lines, `@import "mapping-color-system-v4/tailwindVars.css";`)
	}

	result := outside
	if len(lines) > 0 {
		block := cssMarkerStart + "\n" + strings.Join(lines, "\n") + "\n" + cssMarkerEnd + "\n"
		if loc := tailwindImportRe.FindStringIndex(result); loc != nil {
			rest := strings.TrimPrefix(result[loc[1]:], "\n")
			result = result[:loc[1]] + "\n" + block + rest
		} else {
			result = tailwindImport + "\n" + block + result
		}
	}

	return result, result != content
}

// PatchCSSv3 prepends whichever @tailwind directives are missing
func PatchCSSv3(content string) (string, bool) {
	var missing []string
	for _, d := range v3Directives {
		if !strings.Contains(content, strings.TrimSuffix(d, ";")) {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return content, false
	}

	head := strings.Join(missing, "\n") + "\n"
	if content != "" {
		head += "\n"
	}
	return head + content, true
}
