// Package web embeds the static map front end served by the API server.
package web

import "embed"

//go:embed static/index.html static/app.js static/style.css
var StaticFS embed.FS
