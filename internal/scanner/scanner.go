// Package scanner extracts import specifiers from template source text and
// classifies them as external packages or sibling template assets.
package scanner

import (
	"regexp"
	"strings"

	"github.com/torch-corp/glare/internal/asset"
)

// Class is the classification of one import specifier
type Class int

const (
	External Class = iota
	SiblingComponent
	SiblingHook
	SiblingUtil
	SiblingLayout
	SiblingProvider
)

func (c Class) String() string {
	switch c {
	case External:
		return "external"
	case SiblingComponent:
		return "component"
	case SiblingHook:
		return "hook"
	case SiblingUtil:
		return "util"
	case SiblingLayout:
		return "layout"
	case SiblingProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// Kind returns the asset kind a sibling class refers to. ok is false for External.
func (c Class) Kind() (asset.Kind, bool) {
	switch c {
	case SiblingComponent:
		return asset.KindComponent, true
	case SiblingHook:
		return asset.KindHook, true
	case SiblingUtil:
		return asset.KindUtil, true
	case SiblingLayout:
		return asset.KindLayout, true
	case SiblingProvider:
		return asset.KindProvider, true
	default:
		return asset.Kind{}, false
	}
}

// ImportReference is one distinct import found in a file
type ImportReference struct {
	Specifier string
	Class     Class
	// Name is the npm package for External references and the template asset
	// name for siblings.
	Name string
}

// Single-line `import ... from "x"` only; multi-line and dynamic imports are not seen.
var importPattern = regexp.MustCompile(`import\s+.*?\s+from\s+['"]([^'"]+)['"]`)

// Specifiers returns the distinct import specifiers in text in order of first appearance
func Specifiers(text string) []string {
	matches := importPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	var specs []string
	for _, m := range matches {
		spec := m[1]
		if seen[spec] {
			continue
		}
		seen[spec] = true
		specs = append(specs, spec)
	}
	return specs
}

// siblingDirs maps a kind directory appearing after the relative prefix to its class
var siblingDirs = map[string]Class{
	asset.KindHook.Dir:      SiblingHook,
	asset.KindUtil.Dir:      SiblingUtil,
	asset.KindLayout.Dir:    SiblingLayout,
	asset.KindProvider.Dir:  SiblingProvider,
	asset.KindComponent.Dir: SiblingComponent,
}

// sourceExts are stripped from specifier segments to get asset names.
// Other dotted suffixes ("Button.styles") are part of the name.
var sourceExts = []string{".tsx", ".ts", ".jsx", ".js", ".mjs", ".cjs"}

// Classify classifies a single specifier found in a component. ok is false
// for relative specifiers that do not name an asset (e.g. "." or "../").
func Classify(spec string) (ImportReference, bool) {
	return ClassifyFrom(asset.KindComponent, spec)
}

// ClassifyFrom classifies a specifier found in a template of kind from. A
// relative specifier that does not go through a kind directory names an
// asset of the importer's own kind ("./useB" inside a hook is a hook).
func ClassifyFrom(from asset.Kind, spec string) (ImportReference, bool) {
	if !strings.HasPrefix(spec, ".") {
		return ImportReference{Specifier: spec, Class: External, Name: PackageName(spec)}, true
	}

	segments := relativeSegments(spec)
	if len(segments) == 0 {
		return ImportReference{}, false
	}

	if class, ok := siblingDirs[segments[0]]; ok {
		if len(segments) < 2 {
			return ImportReference{}, false
		}
		return ImportReference{Specifier: spec, Class: class, Name: AssetName(segments[1])}, true
	}

	class, ok := siblingDirs[from.Dir]
	if !ok {
		class = SiblingComponent
	}
	return ImportReference{Specifier: spec, Class: class, Name: AssetName(segments[0])}, true
}

// AssetName strips a JavaScript or TypeScript source extension from one
// specifier segment
func AssetName(segment string) string {
	for _, ext := range sourceExts {
		if name, ok := strings.CutSuffix(segment, ext); ok && name != "" {
			return name
		}
	}
	return segment
}

// Scan returns the classified, distinct imports of one component file
func Scan(text string) []ImportReference {
	return ScanFrom(asset.KindComponent, text)
}

// ScanFrom returns the classified, distinct imports of one file of a template of kind from
func ScanFrom(from asset.Kind, text string) []ImportReference {
	var refs []ImportReference
	for _, spec := range Specifiers(text) {
		if ref, ok := ClassifyFrom(from, spec); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// PackageName reduces an external specifier to the package that provides it:
// "@scope/pkg/sub" becomes "@scope/pkg", "pkg/sub" becomes "pkg".
func PackageName(spec string) string {
	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// Unsatisfied returns the external packages referenced by refs that are not
// present in deps, in order of first appearance.
func Unsatisfied(refs []ImportReference, deps map[string]string) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, ref := range refs {
		if ref.Class != External {
			continue
		}
		if _, ok := deps[ref.Name]; ok || seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true
		missing = append(missing, ref.Name)
	}
	return missing
}

// relativeSegments drops empty segments and the leading "." and ".." segments of a relative specifier
func relativeSegments(spec string) []string {
	var out []string
	for _, seg := range strings.Split(spec, "/") {
		if seg == "" || (len(out) == 0 && (seg == "." || seg == "..")) {
			continue
		}
		out = append(out, seg)
	}
	return out
}
