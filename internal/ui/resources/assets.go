// Package resources holds the web UI page and stylesheet. Release builds
// embed them; builds tagged dev read them from disk.
package resources

// StaticDirectoryPath is the static directory relative to the module root.
const StaticDirectoryPath = "internal/ui/resources/static"
