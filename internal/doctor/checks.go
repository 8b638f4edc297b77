package doctor

import (
	"fmt"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/pkg/backup"
	"github.com/thoreinstein/projkit/pkg/fileutil"
	"github.com/thoreinstein/projkit/pkg/project"
)

// Check categories.
const (
	categoryFilesystem = "filesystem"
	categoryConfig     = "config"
)

// privateBits are the group and other permission bits. Config files may hold
// credentials, so none of them should be set.
const privateBits os.FileMode = 0o077

// DirectoryCheck verifies the project directory exists and is private.
type DirectoryCheck struct {
	p *project.Project
}

// NewDirectoryCheck creates a new directory check.
func NewDirectoryCheck(p *project.Project) *DirectoryCheck {
	return &DirectoryCheck{p: p}
}

func (c *DirectoryCheck) Name() string     { return "config-directory" }
func (c *DirectoryCheck) Category() string { return categoryFilesystem }

func (c *DirectoryCheck) Run() *CheckResult {
	dir := c.p.Dir()
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return c.result(SeverityInfo, "directory not created yet; it appears on first load", "")
	case err != nil:
		return c.result(SeverityError, fmt.Sprintf("cannot stat %s: %v", dir, err), "")
	case !info.IsDir():
		return c.result(SeverityError, dir+" exists but is not a directory", "remove or rename "+dir)
	}

	perm := info.Mode().Perm()
	if perm&0o002 != 0 {
		return c.withPerm(c.result(SeverityWarning, "directory is world-writable (security risk)", "chmod 700 "+dir), perm)
	}
	if perm&privateBits != 0 {
		return c.withPerm(c.result(SeverityWarning,
			fmt.Sprintf("directory is accessible to other users (mode %s, expected 0700)", formatPermissions(perm)),
			"chmod 700 "+dir), perm)
	}
	return c.withPerm(c.result(SeverityPass, dir, ""), perm)
}

func (c *DirectoryCheck) result(s Severity, msg, hint string) *CheckResult {
	return &CheckResult{Name: c.Name(), Category: c.Category(), Status: s, Message: msg, FixHint: hint}
}

func (c *DirectoryCheck) withPerm(r *CheckResult, perm os.FileMode) *CheckResult {
	r.Details = map[string]any{"path": c.p.Dir(), "permissions": formatPermissions(perm)}
	return r
}

// FilePermissionCheck verifies the configuration file is a private regular file.
type FilePermissionCheck struct {
	p *project.Project
}

// NewFilePermissionCheck creates a new file permission check.
func NewFilePermissionCheck(p *project.Project) *FilePermissionCheck {
	return &FilePermissionCheck{p: p}
}

func (c *FilePermissionCheck) Name() string     { return "config-permissions" }
func (c *FilePermissionCheck) Category() string { return categoryFilesystem }

func (c *FilePermissionCheck) Run() *CheckResult {
	path := c.p.ConfigPath()
	r := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.Status, r.Message = SeverityInfo, "config file not created yet; defaults are written on first load"
		return r
	case err != nil:
		r.Status, r.Message = SeverityError, fmt.Sprintf("cannot stat %s: %v", path, err)
		return r
	case !info.Mode().IsRegular():
		r.Status, r.Message = SeverityError, path+" is not a regular file"
		return r
	}

	perm := info.Mode().Perm()
	r.Details = map[string]any{"path": path, "permissions": formatPermissions(perm)}

	switch {
	case perm&0o002 != 0:
		r.Status, r.Message = SeverityWarning, "file is world-writable (security risk)"
		r.FixHint = "chmod 600 " + path
	case perm&privateBits != 0:
		r.Status = SeverityWarning
		r.Message = fmt.Sprintf("file has overly permissive permissions (mode %s, expected %s)",
			formatPermissions(perm), formatPermissions(project.FilePerm))
		r.FixHint = "chmod 600 " + path
	case perm&0o400 == 0:
		r.Status, r.Message = SeverityError, "file is not readable by its owner"
		r.FixHint = "chmod 600 " + path
	default:
		r.Status, r.Message = SeverityPass, path
	}
	return r
}

// SyntaxCheck parses the configuration file as TOML and reports the position
// of the first syntax error.
type SyntaxCheck struct {
	p *project.Project
}

// NewSyntaxCheck creates a new TOML syntax check.
func NewSyntaxCheck(p *project.Project) *SyntaxCheck {
	return &SyntaxCheck{p: p}
}

func (c *SyntaxCheck) Name() string     { return "config-syntax" }
func (c *SyntaxCheck) Category() string { return categoryConfig }

func (c *SyntaxCheck) Run() *CheckResult {
	r := &CheckResult{Name: c.Name(), Category: c.Category()}

	data, err := fileutil.ReadFileWithLimit(c.p.ConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		r.Status, r.Message = SeverityInfo, "nothing to parse yet"
		return r
	}
	if err != nil {
		r.Status, r.Message = SeverityError, err.Error()
		return r
	}

	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		r.Status, r.Message = SeverityError, formatTOMLError(err)
		r.FixHint = "fix the file by hand, or reset it with: projkit config init --force"
		return r
	}

	r.Status, r.Message = SeverityPass, fmt.Sprintf("valid TOML (%d top-level keys)", len(v))
	return r
}

// DecodeCheck runs a caller-supplied decoder over the configuration file, for
// callers that know the configuration's Go type.
type DecodeCheck struct {
	p      *project.Project
	decode func(data []byte) []error
}

// NewDecodeCheck creates a check that passes when decode returns no errors.
func NewDecodeCheck(p *project.Project, decode func(data []byte) []error) *DecodeCheck {
	return &DecodeCheck{p: p, decode: decode}
}

func (c *DecodeCheck) Name() string     { return "config-values" }
func (c *DecodeCheck) Category() string { return categoryConfig }

func (c *DecodeCheck) Run() *CheckResult {
	r := &CheckResult{Name: c.Name(), Category: c.Category()}

	data, err := fileutil.ReadFileWithLimit(c.p.ConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		r.Status, r.Message = SeverityInfo, "nothing to decode yet"
		return r
	}
	if err != nil {
		r.Status, r.Message = SeverityError, err.Error()
		return r
	}

	errs := c.decode(data)
	if len(errs) == 0 {
		r.Status, r.Message = SeverityPass, "all values decode and validate"
		return r
	}

	problems := make([]string, len(errs))
	for i, e := range errs {
		problems[i] = e.Error()
	}
	r.Status = SeverityError
	r.Message = fmt.Sprintf("found %d invalid value(s)", len(errs))
	r.Details = map[string]any{"problems": problems}
	r.FixHint = "Run: projkit config edit"
	return r
}

// BackupCheck reports numbered backups of the configuration file.
type BackupCheck struct {
	p *project.Project
}

// NewBackupCheck creates a new backup inventory check.
func NewBackupCheck(p *project.Project) *BackupCheck {
	return &BackupCheck{p: p}
}

func (c *BackupCheck) Name() string     { return "config-backups" }
func (c *BackupCheck) Category() string { return categoryFilesystem }

func (c *BackupCheck) Run() *CheckResult {
	r := &CheckResult{Name: c.Name(), Category: c.Category()}

	found, err := backup.Existing(c.p.ConfigPath())
	if err != nil {
		r.Status, r.Message = SeverityWarning, err.Error()
		return r
	}
	if len(found) == 0 {
		r.Status, r.Message = SeverityPass, "no backups"
		return r
	}

	r.Status = SeverityInfo
	r.Message = fmt.Sprintf("%d backup(s), newest %s", len(found), found[len(found)-1])
	r.Details = map[string]any{"backups": found}
	return r
}

// LockCheck reports the advisory lock file left behind by first-run creation.
type LockCheck struct {
	p *project.Project
}

// NewLockCheck creates a new lock file check.
func NewLockCheck(p *project.Project) *LockCheck {
	return &LockCheck{p: p}
}

func (c *LockCheck) Name() string     { return "config-lock" }
func (c *LockCheck) Category() string { return categoryFilesystem }

func (c *LockCheck) Run() *CheckResult {
	r := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Lstat(c.p.LockPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.Status, r.Message = SeverityPass, "no lock file"
	case err != nil:
		r.Status, r.Message = SeverityWarning, err.Error()
	case !info.Mode().IsRegular():
		r.Status, r.Message = SeverityError, c.p.LockPath()+" is not a regular file; first-run creation cannot lock it"
		r.FixHint = "remove " + c.p.LockPath()
	default:
		r.Status, r.Message = SeverityInfo, "lock file present (safe to keep)"
	}
	return r
}

// formatPermissions returns a human-readable permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// formatTOMLError extracts position information from TOML decode errors.
func formatTOMLError(err error) string {
	// go-toml/v2 DecodeError includes line/column via Position() method
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s",
			row, col, decodeErr.Error())
	}

	return fmt.Sprintf("TOML error: %v", err)
}
