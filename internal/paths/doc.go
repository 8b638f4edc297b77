// Package paths resolves where per-project configuration lives on disk.
//
// The configuration root comes from github.com/adrg/xdg, which follows the
// XDG Base Directory Specification on Linux and the native conventions on
// macOS and Windows. The root is resolved once and cached; every project
// directory is a single child of it:
//
//	root, err := paths.ConfigHome()        // ~/.config
//	dir, err := paths.ProjectDir(root, "app") // ~/.config/app
//	err = paths.EnsureDir(dir, 0)
package paths
