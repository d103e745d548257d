// Package templates embeds the server-rendered HTML views.
package templates

import _ "embed"

//go:embed dashboard.html
var Dashboard string
