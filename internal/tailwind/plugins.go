// Package tailwind keeps a consumer project's Tailwind setup in step with the
// glare design system: the plugin list in tailwind.config.* for v3 projects
// and the @plugin directives in the global stylesheet for v4 projects.
package tailwind

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Plugin is one Tailwind plugin the design system depends on
type Plugin struct {
	// Package is the npm package providing the plugin
	Package string
	// Expr is the expression placed in a v3 `plugins: [...]` array
	Expr string
}

// Plugins are the v3 config plugins, in the order they are written
var Plugins = []Plugin{
	{Package: "mapping-color-system", Expr: "plugin"},
	{Package: "tailwindcss-animate", Expr: "require('tailwindcss-animate')"},
	{Package: "tailwind-scrollbar-hide", Expr: "require('tailwind-scrollbar-hide')"},
	{Package: "glare-typography", Expr: "require('glare-typography')"},
	{Package: "glare-torch-mode", Expr: "require('glare-torch-mode')"},
}

// V4Plugins are the packages referenced by @plugin directives in v4 stylesheets
var V4Plugins = []string{
	"glare-torch-mode",
	"tailwind-scrollbar-hide",
	"tailwindcss-animate",
	"glare-typography",
	"mapping-color-system-v4",
}

// BaseUtilPackages are the runtime packages the base utils (cn, types) import
var BaseUtilPackages = []string{
	"clsx",
	"tailwind-merge",
	"class-variance-authority",
}

// PluginPackages returns the npm packages a project on the given Tailwind
// major version needs installed
func PluginPackages(major int) []string {
	if major >= 4 {
		return append([]string(nil), V4Plugins...)
	}
	pkgs := make([]string, 0, len(Plugins))
	for _, p := range Plugins {
		pkgs = append(pkgs, p.Package)
	}
	return pkgs
}

// DefaultMajor is assumed when tailwindcss is not declared or its range is unreadable
const DefaultMajor = 3

// MajorVersion extracts the major version from a package.json version range
// such as "^3.4.1", "~4.0.0" or ">=3". ok is false when no version can be read.
func MajorVersion(versionRange string) (major int, ok bool) {
	v := strings.TrimSpace(versionRange)
	v = strings.TrimPrefix(v, "npm:tailwindcss@")
	v = strings.TrimLeft(v, "^~>=<v ")
	if i := strings.IndexAny(v, " |"); i >= 0 {
		v = v[:i]
	}

	parsed, err := semver.NewVersion(v)
	if err != nil {
		return DefaultMajor, false
	}
	return int(parsed.Major()), true
}
