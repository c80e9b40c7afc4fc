// Package docs embeds user-facing documentation rendered inside the app.
package docs

import (
	_ "embed"
)

//go:embed help.md
var helpText string

// Help returns the markdown source for the help overlay.
func Help() string {
	return helpText
}
