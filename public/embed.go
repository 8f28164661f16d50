// Package public holds the browser client served at the site root.
package public

import "embed"

//go:embed index.html script.js styles.css
var Assets embed.FS
