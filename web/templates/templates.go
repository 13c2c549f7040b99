// Package templates embeds the HTML templates so the rendered views work
// from any working directory, including tests.
package templates

import "embed"

//go:embed *.html layouts/*.html
var FS embed.FS
