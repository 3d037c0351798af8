// Package web holds the static viewer page served at the site root.
package web

import "embed"

//go:embed index.html
var Assets embed.FS
