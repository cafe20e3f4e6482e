package tailwind

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/torch-corp/glare/internal/packages"
	"github.com/torch-corp/glare/internal/utils"
)

// FontLinks are the <head> links the design system's icons and type need
var FontLinks = []string{
	`<link href="https://cdn.jsdelivr.net/npm/remixicon@4.5.0/fonts/remixicon.css" rel="stylesheet" />`,
	`<link rel="stylesheet" href="https://cdn.statically.io/gh/TORCH-Corp/SF-PRO-FONT/main/font/fonts.css" />`,
	`<link rel="preload" href="https://cdn.statically.io/gh/TORCH-Corp/SF-PRO-FONT/main/font/SF-Pro.woff2" as="font" type="font/woff2" crossOrigin="" />`,
}

var (
	headOpenPattern = regexp.MustCompile(`<head(\s[^>]*)?>`)
	htmlOpenPattern = regexp.MustCompile(`<html(\s[^>]*)?>`)
)

// FontsResult describes what the fonts step did to a project
type FontsResult struct {
	// LayoutPath is empty when no layout or index.html was found
	LayoutPath string
	Present    bool
	Declined   bool
	Changed    bool
	// Manual is set when the links have to be added by hand
	Manual bool
	Backup string
}

// LayoutCandidates lists where the document <head> lives, most specific first
func LayoutCandidates(fw packages.Framework) []string {
	var out []string
	if fw == packages.FrameworkNext {
		for _, dir := range []string{"app", "src/app"} {
			for _, ext := range []string{".tsx", ".jsx", ".js"} {
				out = append(out, dir+"/layout"+ext)
			}
		}
	}
	return append(out, "index.html", "public/index.html")
}

// FindLayout returns the first existing layout candidate, or "" when none exists
func FindLayout(root string, fw packages.Framework) string {
	for _, rel := range LayoutCandidates(fw) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if utils.FileExists(p) {
			return p
		}
	}
	return ""
}

// HasFontLinks reports whether content already loads both icon and type fonts
func HasFontLinks(content string) bool {
	return strings.Contains(content, "remixicon") && strings.Contains(content, "SF-PRO-FONT")
}

// PatchFontLinks injects FontLinks into an HTML document or a JSX layout. It
// reports false when there is nowhere sensible to put them.
func PatchFontLinks(content string, html bool) (string, bool) {
	if HasFontLinks(content) {
		return content, false
	}
	if html {
		links := indentLinks("    ")
		if strings.Contains(content, "</head>") {
			return strings.Replace(content, "</head>", links+"\n  </head>", 1), true
		}
		return "<head>\n" + links + "\n</head>\n" + content, true
	}

	const indent = "        "
	links := indentLinks(indent)
	if loc := headOpenPattern.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + "\n" + links + content[loc[1]:], true
	}
	if strings.Contains(content, "</head>") {
		return strings.Replace(content, "</head>", links+"\n"+indent+"</head>", 1), true
	}
	if loc := htmlOpenPattern.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + "\n      <head>\n" + links + "\n      </head>" + content[loc[1]:], true
	}
	return content, false
}

func indentLinks(indent string) string {
	lines := make([]string, len(FontLinks))
	for i, link := range FontLinks {
		lines[i] = indent + link
	}
	return strings.Join(lines, "\n")
}

// CheckFonts locates the project's layout and reports whether it already has
// the font links, without changing anything
func CheckFonts(root string, fw packages.Framework) (*FontsResult, error) {
	res := &FontsResult{LayoutPath: FindLayout(root, fw)}
	if res.LayoutPath == "" {
		res.Manual = true
		return res, nil
	}
	data, err := os.ReadFile(res.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", res.LayoutPath, err)
	}
	res.Present = HasFontLinks(string(data))
	return res, nil
}

// AddFontLinks patches the layout found by CheckFonts, backing it up to
// .bak first
func AddFontLinks(res *FontsResult) error {
	html := strings.HasSuffix(res.LayoutPath, ".html")
	_, changed, backup, err := patchFile(res.LayoutPath, func(content string) (string, bool) {
		return PatchFontLinks(content, html)
	})
	if err != nil {
		return err
	}
	res.Changed, res.Backup = changed, backup
	res.Manual = !changed && !res.Present
	return nil
}
