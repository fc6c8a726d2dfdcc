// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
)

// Files contains the dashboard frontend served directly via HTTP.
// The built frontend is copied into pkg/embedded/static during the
// release build; the checked-in index.html is a minimal fallback so
// the binary always serves something at the root.
//
//go:embed static
var Files embed.FS
