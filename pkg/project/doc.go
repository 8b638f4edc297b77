// Package project gives every application a typed configuration file that
// creates itself on first use.
//
// A project is identified by a name. Its configuration lives in
// <config root>/<name>/config.toml, where the config root is the platform
// default (see github.com/adrg/xdg). The first load writes the defaults of
// the caller's type to that file; later loads only read it, so hand edits
// survive.
//
// # Instance Mode
//
// Construct a Project and pass it to whoever needs configuration:
//
//	type Config struct {
//		Server  string `toml:"server"`
//		Retries int    `toml:"retries"`
//	}
//
//	func (c *Config) SetDefaults() { c.Server = "localhost"; c.Retries = 3 }
//
//	p, err := project.New("myapp")
//	cfg, err := project.Load[Config](p)
//
// Independent projects may be used side by side and concurrently.
//
// # Process-Wide Mode
//
// Programs with a single identity can register it once with [Use] and load
// from anywhere with [LoadCurrent]. Switching to another name afterwards is
// an error, not a silent replacement.
//
//	if err := project.Use("myapp"); err != nil { ... }
//	cfg, err := project.LoadCurrent[Config]()
//
// # Errors
//
// Nothing in this package exits the process. Failures are returned marked
// with a sentinel ([ErrCreateDir], [ErrBootstrap], [ErrParse], [ErrDecode],
// ...). Entry points that want the fail-fast behavior can wrap a load in
// [Must].
package project
