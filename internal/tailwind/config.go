package tailwind

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ConfigFiles are the Tailwind config names looked for, in priority order
var ConfigFiles = []string{
	"tailwind.config.ts",
	"tailwind.config.js",
	"tailwind.config.mjs",
	"tailwind.config.cjs",
}

const (
	markerStart  = "// glare:plugins:start"
	markerEnd    = "// glare:plugins:end"
	importMarker = "// glare:import"

	mappingImport = "const { plugin, mappingVars } = require('mapping-color-system')"
	mappingSpread = "...mappingVars,"
)

const rtlVariant = `function ({ addVariant }: any) {
      addVariant("rtl", '&[dir="rtl"]');
      addVariant("ltr", '&[dir="ltr"]');
    },`

var (
	pluginsArrayRe = regexp.MustCompile(`plugins\s*:\s*\[`)
	contentArrayRe = regexp.MustCompile(`content\s*:\s*\[([^\]]*)\]`)
	quotedRe       = regexp.MustCompile("[\"'`]([^\"'`]+)[\"'`]")
	colorsRe       = regexp.MustCompile(`colors\s*:\s*\{`)
	extendRe       = regexp.MustCompile(`extend\s*:\s*\{`)
	themeRe        = regexp.MustCompile(`theme\s*:\s*\{`)
	blockRe        = regexp.MustCompile(`(?s)[ \t]*` + regexp.QuoteMeta(markerStart) + `.*?` + regexp.QuoteMeta(markerEnd) + `[ \t]*\n?`)
	importLineRe   = regexp.MustCompile(`(?m)^.*` + regexp.QuoteMeta(importMarker) + `[ \t]*\n?`)
)

// ContentGlobs returns the content globs that cover assets installed under
// installRoot, plus the conventional app/ directory.
func ContentGlobs(installRoot string) []string {
	root := strings.Trim(strings.TrimPrefix(installRoot, "./"), "/")
	var globs []string
	if root == "" || root == "." {
		globs = append(globs, "./components/**/*.{js,ts,jsx,tsx}")
	} else {
		globs = append(globs, "./"+root+"/**/*.{js,ts,jsx,tsx}")
	}
	if !strings.Contains(root, "app") {
		globs = append(globs, "./app/**/*.{js,ts,jsx,tsx}")
	}
	return globs
}

// Scaffold renders a fresh tailwind.config.ts
func Scaffold(contentGlobs []string) string {
	var b strings.Builder
	b.WriteString(mappingImport + " " + importMarker + "\n")
	b.WriteString("import type { Config } from \"tailwindcss\";\n\n")
	b.WriteString("export default {\n")
	b.WriteString("  content: [\n")
	for _, g := range contentGlobs {
		fmt.Fprintf(&b, "    %q,\n", g)
	}
	b.WriteString("  ],\n")
	b.WriteString("  theme: {\n    extend: {\n      colors: {\n        " + mappingSpread + "\n      },\n    },\n  },\n")
	b.WriteString("  plugins: [\n")
	b.WriteString(pluginBlock(Plugins, true))
	b.WriteString("  ],\n")
	b.WriteString("} satisfies Config;\n")
	return b.String()
}

// PatchConfig brings an existing v3 config up to date and reports whether
// anything changed. Lines glare owns are delimited by markers so patching is
// repeatable: the block is rebuilt from whatever the rest of the file lacks.
func PatchConfig(content string, contentGlobs []string) (string, bool) {
	outside := blockRe.ReplaceAllString(content, "")
	outside = importLineRe.ReplaceAllString(outside, "")

	var missing []Plugin
	for _, p := range Plugins {
		if !strings.Contains(outside, p.Package) {
			missing = append(missing, p)
		}
	}
	needsVariant := !strings.Contains(outside, "addVariant")
	needsImport := !strings.Contains(outside, "mapping-color-system")

	result := outside
	if needsImport {
		result = mappingImport + " " + importMarker + "\n" + result
		if !strings.Contains(result, mappingSpread) {
			result = addMappingVars(result)
		}
	}

	if len(missing) > 0 || needsVariant {
		block := pluginBlock(missing, needsVariant)
		if loc := pluginsArrayRe.FindStringIndex(result); loc != nil {
			rest := strings.TrimPrefix(strings.TrimLeft(result[loc[1]:], " \t"), "\n")
			result = result[:loc[1]] + "\n" + block + rest
		} else {
			result = insertBeforeClose(result, "  plugins: [\n"+block+"  ],\n")
		}
	}

	result = addContentGlobs(result, contentGlobs)

	return result, result != content
}

// pluginBlock renders the marker-delimited plugin entries
func pluginBlock(plugins []Plugin, withVariant bool) string {
	var b strings.Builder
	b.WriteString("    " + markerStart + "\n")
	for _, p := range plugins {
		b.WriteString("    " + p.Expr + ",\n")
	}
	if withVariant {
		b.WriteString("    " + rtlVariant + "\n")
	}
	b.WriteString("    " + markerEnd + "\n")
	return b.String()
}

// addMappingVars spreads mappingVars into theme.extend.colors, creating the
// enclosing objects where needed
func addMappingVars(content string) string {
	switch {
	case colorsRe.MatchString(content):
		return replaceFirst(colorsRe, content, "\n        "+mappingSpread)
	case extendRe.MatchString(content):
		return replaceFirst(extendRe, content, "\n      colors: {\n        "+mappingSpread+"\n      },")
	case themeRe.MatchString(content):
		return replaceFirst(themeRe, content, "\n    extend: {\n      colors: {\n        "+mappingSpread+"\n      },\n    },")
	default:
		return content
	}
}

// replaceFirst inserts text right after the first match of re
func replaceFirst(re *regexp.Regexp, content, text string) string {
	loc := re.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[1]] + text + content[loc[1]:]
}

// insertBeforeClose inserts a property before the last closing brace of the
// config object, adding a separating comma when the previous property lacks one
func insertBeforeClose(content, property string) string {
	idx := strings.LastIndex(content, "}")
	if idx < 0 {
		return content
	}

	head := strings.TrimRight(content[:idx], " \t\n")
	if !strings.HasSuffix(head, ",") && !strings.HasSuffix(head, "{") {
		head += ","
	}
	return head + "\n" + property + content[idx:]
}

// addContentGlobs adds each glob to an existing `content: [...]` array unless
// a glob already there matches the same files
func addContentGlobs(content string, globs []string) string {
	m := contentArrayRe.FindStringSubmatchIndex(content)
	if m == nil {
		return content
	}

	var existing []string
	for _, q := range quotedRe.FindAllStringSubmatch(content[m[2]:m[3]], -1) {
		existing = append(existing, strings.TrimPrefix(q[1], "./"))
	}

	var add []string
	for _, g := range globs {
		if !covered(existing, g) {
			add = append(add, g)
		}
	}
	if len(add) == 0 {
		return content
	}

	var b strings.Builder
	for _, g := range add {
		fmt.Fprintf(&b, "\n    %q,", g)
	}

	open := m[2] // just past the '['
	return content[:open] + b.String() + content[open:]
}

// covered reports whether any existing pattern matches a sample file from glob
func covered(existing []string, glob string) bool {
	sample := sampleFile(glob)
	for _, pattern := range existing {
		if pattern == strings.TrimPrefix(glob, "./") {
			return true
		}
		if ok, err := doublestar.Match(pattern, sample); err == nil && ok {
			return true
		}
	}
	return false
}

// sampleFile turns "./src/**/*.{js,ts,jsx,tsx}" into "src/components/Sample.tsx"
func sampleFile(glob string) string {
	base := strings.TrimPrefix(glob, "./")
	if i := strings.Index(base, "**"); i >= 0 {
		base = base[:i]
	} else if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[:i+1]
	}
	return base + "components/Sample.tsx"
}
