// Package backup makes single-level numbered copies of a file.
//
// Backing up "config.toml" produces "config.toml.bak"; if that exists,
// "config.toml.bak.1", then "config.toml.bak.2", and so on. The copy is a
// byte-for-byte duplicate with the same permission bits, and the original is
// never modified.
//
//	dst, err := backup.Create("/home/me/.config/app/config.toml")
//	// dst == "/home/me/.config/app/config.toml.bak"
//
// There is no retention policy: old backups are never removed.
package backup
