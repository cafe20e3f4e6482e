package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/config"
	"github.com/torch-corp/glare/internal/installer"
	"github.com/torch-corp/glare/internal/packages"
	"github.com/torch-corp/glare/internal/registry"
	"github.com/torch-corp/glare/internal/tailwind"
	"github.com/torch-corp/glare/internal/ui"
)

// newOutput creates the themed output for a command's streams
func newOutput(cmd *cobra.Command) *ui.Output {
	return ui.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// PrintError writes the one user-facing line for a failed command, with a
// hint for the errors a user can fix directly
func PrintError(w io.Writer, err error) {
	out := ui.NewOutput(w, w)
	out.Error(err.Error())

	switch {
	case errors.Is(err, config.ErrConfigMissing):
		out.Muted("Run 'glare init' in your project root first.")
	case errors.Is(err, config.ErrConfigCorrupt):
		out.Muted("Fix or delete " + config.FileName + " and run 'glare init' again.")
	case errors.Is(err, packages.ErrManifestMissing):
		out.Muted("Run glare from a directory containing package.json, or pass --cwd.")
	case errors.Is(err, registry.ErrAssetNotFound):
		out.Muted("Run 'glare list' to see the available assets.")
	case errors.Is(err, installer.ErrProjectLocked):
		out.Muted("Wait for the other glare command to finish and try again.")
	}
}

func keyList(keys []asset.Key) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// reportPackages summarizes the package step of an install
func reportPackages(out *ui.Output, pkgs []string, pkgErr error) {
	if len(pkgs) == 0 {
		return
	}
	if pkgErr != nil {
		out.Warning(fmt.Sprintf("Package install failed: %v", pkgErr))
		return
	}
	out.Success("Installed packages: " + strings.Join(pkgs, ", "))
}

// reportTailwind summarizes what the Tailwind step changed
func reportTailwind(out *ui.Output, res *tailwind.Result) {
	if res == nil {
		return
	}
	if !res.Declared && !res.Assumed {
		out.Muted("tailwindcss is not in package.json, skipped Tailwind setup")
		return
	}
	if res.Assumed {
		out.Muted(fmt.Sprintf("tailwindcss is not in package.json, set up for Tailwind v%d", res.Major))
	}

	switch {
	case res.ConfigCreated:
		out.Success("Created " + res.ConfigPath)
	case res.ConfigChanged:
		out.Success("Updated " + res.ConfigPath)
	}
	switch {
	case res.CSSCreated:
		out.Success("Created " + res.CSSPath)
	case res.CSSChanged:
		out.Success("Updated " + res.CSSPath)
	}
	for _, b := range res.Backups {
		out.Muted("Backup written to " + b)
	}
	if !res.Changed() {
		out.Muted(fmt.Sprintf("Tailwind v%d setup already up to date", res.Major))
	}
}

// reportFonts summarizes the font links step, printing the links when they
// still have to be added by hand
func reportFonts(out *ui.Output, res *tailwind.FontsResult) {
	if res == nil {
		return
	}
	switch {
	case res.Present:
		out.Muted(res.LayoutPath + " already has the font links")
	case res.Changed:
		out.Success("Added font links to " + res.LayoutPath)
		if res.Backup != "" {
			out.Muted("Backup written to " + res.Backup)
		}
	}
	if !res.Manual {
		return
	}
	switch {
	case res.LayoutPath == "":
		out.Warning("Could not find a layout or index.html, add the font links to your <head>:")
	case res.Declined:
		out.Muted("Skipped font links, add them to your <head>:")
	default:
		out.Warning("Could not find where to put the font links in " + res.LayoutPath + ", add them to your <head>:")
	}
	for _, link := range tailwind.FontLinks {
		out.Muted("  " + link)
	}
}
