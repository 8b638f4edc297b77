package project

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/logging"
)

type serverConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type appConfig struct {
	Name    string        `toml:"name"`
	Retries int           `toml:"retries"`
	Ratio   float64       `toml:"ratio"`
	Verbose bool          `toml:"verbose"`
	Tags    []string      `toml:"tags"`
	Timeout time.Duration `toml:"timeout"`
	Server  serverConfig  `toml:"server"`
}

func (c *appConfig) SetDefaults() {
	c.Name = "demo"
	c.Retries = 3
	c.Ratio = 0.5
	c.Tags = []string{"alpha", "beta"}
	c.Timeout = 5 * time.Second
	c.Server = serverConfig{Host: "localhost", Port: 8080}
}

// plainConfig has no SetDefaults, so its defaults are the zero value.
type plainConfig struct {
	Enabled bool   `toml:"enabled"`
	Label   string `toml:"label"`
}

func newTestProject(t *testing.T) *Project {
	t.Helper()
	p, err := New("demo", WithConfigRoot(filepath.Join(t.TempDir(), "cfg")), WithLogger(logging.ForTest(t)))
	require.NoError(t, err)
	return p
}

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	p := newTestProject(t)
	_, err := os.Stat(p.Dir())
	require.True(t, os.IsNotExist(err), "config dir should not exist yet")

	cfg, err := Load[appConfig](p)
	require.NoError(t, err)

	assert.Equal(t, Defaults[appConfig](), cfg)

	info, err := os.Stat(p.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePerm), info.Mode().Perm())

	data, err := os.ReadFile(p.ConfigPath())
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "name = 'demo'")
	assert.Contains(t, text, "[server]")
	assert.Less(t, strings.Index(text, "name ="), strings.Index(text, "retries ="), "field order should follow the struct")
}

type envConfig struct {
	Name string            `toml:"name"`
	Env  map[string]string `toml:"env"`
}

type nilMapConfig envConfig

func (c *nilMapConfig) SetDefaults() { c.Name = "nil-map" }

type emptyMapConfig envConfig

func (c *emptyMapConfig) SetDefaults() {
	c.Name = "empty-map"
	c.Env = map[string]string{}
}

type mixedCaseMapConfig envConfig

func (c *mixedCaseMapConfig) SetDefaults() {
	c.Name = "mixed-case"
	c.Env = map[string]string{"HOME": "/root", "Path": "/bin", "lower": "x"}
}

type dottedKeyMapConfig envConfig

func (c *dottedKeyMapConfig) SetDefaults() {
	c.Name = "dotted"
	c.Env = map[string]string{"a.b": "1", "c": "2"}
}

type pointerConfig struct {
	Name  string `toml:"name"`
	Limit *int   `toml:"limit"`
}

type nilPointerConfig pointerConfig

func (c *nilPointerConfig) SetDefaults() { c.Name = "nil-pointer" }

type setPointerConfig pointerConfig

func (c *setPointerConfig) SetDefaults() {
	c.Name = "set-pointer"
	limit := 10
	c.Limit = &limit
}

type omitEmptyConfig struct {
	Name  string `toml:"name"`
	Note  string `toml:"note,omitempty"`
	Count int    `toml:"count,omitempty"`
}

func (c *omitEmptyConfig) SetDefaults() { c.Name = "omit" }

type skippedFieldConfig struct {
	Name  string `toml:"name"`
	Cache string `toml:"-"`
}

func (c *skippedFieldConfig) SetDefaults() { c.Name = "skipped" }

type nestedMapConfig struct {
	Server struct {
		Host    string            `toml:"host"`
		Headers map[string]string `toml:"headers"`
	} `toml:"server"`
}

func (c *nestedMapConfig) SetDefaults() {
	c.Server.Host = "localhost"
	c.Server.Headers = map[string]string{"X-Trace": "on"}
}

func loadsDefaults[T any](t *testing.T) {
	p := newTestProject(t)

	for range 2 {
		cfg, err := Load[T](p)
		require.NoError(t, err)
		assert.Equal(t, Defaults[T](), cfg)
	}
}

func TestLoad_FirstRunDefaultsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{name: "nil map", run: loadsDefaults[nilMapConfig]},
		{name: "empty map", run: loadsDefaults[emptyMapConfig]},
		{name: "mixed case map keys", run: loadsDefaults[mixedCaseMapConfig]},
		{name: "map key containing a dot", run: loadsDefaults[dottedKeyMapConfig]},
		{name: "nil pointer", run: loadsDefaults[nilPointerConfig]},
		{name: "set pointer", run: loadsDefaults[setPointerConfig]},
		{name: "omitempty zero values", run: loadsDefaults[omitEmptyConfig]},
		{name: "skipped field", run: loadsDefaults[skippedFieldConfig]},
		{name: "map inside a table", run: loadsDefaults[nestedMapConfig]},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

func TestLoad_MapEntriesAreOptional(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, os.MkdirAll(p.Dir(), 0o700))
	require.NoError(t, os.WriteFile(p.ConfigPath(), []byte("name = 'mixed-case'\n\n[env]\nHOME = '/home/me'\n"), 0o600))

	cfg, err := Load[mixedCaseMapConfig](p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"HOME": "/home/me"}, cfg.Env)
}

func TestLoad_MissingKeysAreNamed(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, os.MkdirAll(p.Dir(), 0o700))

	content := `name = "demo"
retries = 3
ratio = 0.5
verbose = false
tags = []
timeout = 1

[server]
host = "localhost"
`
	require.NoError(t, os.WriteFile(p.ConfigPath(), []byte(content), 0o600))

	_, err := Load[appConfig](p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode), "error = %v", err)
	assert.Contains(t, err.Error(), "server.port")
	assert.NotContains(t, err.Error(), "server.host")
}

func TestDecode_KeysMatchCaseInsensitively(t *testing.T) {
	cfg, err := Decode[serverConfig]([]byte("Host = 'h'\nPORT = 2\n"))
	require.NoError(t, err)
	assert.Equal(t, &serverConfig{Host: "h", Port: 2}, cfg)
}

func TestLoad_SecondRunDoesNotRewrite(t *testing.T) {
	p := newTestProject(t)

	first, err := Load[appConfig](p)
	require.NoError(t, err)

	before, err := os.ReadFile(p.ConfigPath())
	require.NoError(t, err)
	infoBefore, err := os.Stat(p.ConfigPath())
	require.NoError(t, err)

	second, err := Load[appConfig](p)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	after, err := os.ReadFile(p.ConfigPath())
	require.NoError(t, err)
	infoAfter, err := os.Stat(p.ConfigPath())
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Equal(t, infoBefore.ModTime(), infoAfter.ModTime())
}

func TestLoad_ReadsHandEdits(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, os.MkdirAll(p.Dir(), 0o700))

	edited := `name = "edited"
retries = 7
ratio = 1
verbose = true
tags = []
timeout = 250000000

[server]
host = "example.com"
port = 9000
extra = "ignored"
`
	require.NoError(t, os.WriteFile(p.ConfigPath(), []byte(edited), 0o600))

	cfg, err := Load[appConfig](p)
	require.NoError(t, err)

	assert.Equal(t, "edited", cfg.Name)
	assert.Equal(t, 7, cfg.Retries)
	assert.InDelta(t, 1.0, cfg.Ratio, 0)
	assert.True(t, cfg.Verbose)
	assert.Empty(t, cfg.Tags)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, serverConfig{Host: "example.com", Port: 9000}, cfg.Server)

	data, err := os.ReadFile(p.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, edited, string(data), "an existing file must never be rewritten")
}

func TestLoad_ZeroValueDefaults(t *testing.T) {
	p := newTestProject(t)

	cfg, err := Load[plainConfig](p)
	require.NoError(t, err)
	assert.Equal(t, &plainConfig{}, cfg)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "syntax error",
			content: "enabled = \nlabel = 'x'\n",
			wantErr: ErrParse,
		},
		{
			name:    "wrong value type",
			content: "enabled = true\nlabel = 42\n",
			wantErr: ErrDecode,
		},
		{
			name:    "string where bool expected",
			content: "enabled = 'yes'\nlabel = 'x'\n",
			wantErr: ErrDecode,
		},
		{
			name:    "missing key",
			content: "enabled = true\n",
			wantErr: ErrDecode,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProject(t)
			require.NoError(t, os.MkdirAll(p.Dir(), 0o700))
			require.NoError(t, os.WriteFile(p.ConfigPath(), []byte(tt.content), 0o600))

			cfg, err := Load[plainConfig](p)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "error = %v, want %v", err, tt.wantErr)
			assert.Contains(t, err.Error(), p.ConfigPath())
		})
	}
}

func TestLoad_CreateDirFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "root")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	p, err := New("demo", WithConfigRoot(blocker))
	require.NoError(t, err)

	_, err = Load[plainConfig](p)
	assert.True(t, errors.Is(err, ErrCreateDir), "error = %v", err)
}

func TestLoad_BootstrapFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	p := newTestProject(t)
	require.NoError(t, os.MkdirAll(p.Dir(), 0o700))
	require.NoError(t, os.Chmod(p.Dir(), 0o500))
	t.Cleanup(func() { _ = os.Chmod(p.Dir(), 0o700) })

	_, err := Load[plainConfig](p)
	assert.True(t, errors.Is(err, ErrBootstrap), "error = %v", err)
}

func TestBootstrap_ReportsCreation(t *testing.T) {
	p := newTestProject(t)

	created, err := Bootstrap[appConfig](p)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = Bootstrap[appConfig](p)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestBootstrap_Concurrent(t *testing.T) {
	p := newTestProject(t)

	const workers = 8
	var wg sync.WaitGroup
	created := make([]bool, workers)
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created[i], errs[i] = Bootstrap[appConfig](p)
		}()
	}
	wg.Wait()

	writers := 0
	for i := range workers {
		require.NoError(t, errs[i])
		if created[i] {
			writers++
		}
	}
	assert.Equal(t, 1, writers, "exactly one caller should write the defaults")

	cfg, err := Load[appConfig](p)
	require.NoError(t, err)
	assert.Equal(t, Defaults[appConfig](), cfg)
}

func TestIndependentProjects(t *testing.T) {
	root := t.TempDir()
	a, err := New("alpha", WithConfigRoot(root))
	require.NoError(t, err)
	b, err := New("beta", WithConfigRoot(root))
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(b.Dir(), 0o700))
	require.NoError(t, os.WriteFile(b.ConfigPath(), []byte("enabled = true\nlabel = 'beta'\n"), 0o600))

	cfgA, err := Load[plainConfig](a)
	require.NoError(t, err)
	cfgB, err := Load[plainConfig](b)
	require.NoError(t, err)

	assert.Equal(t, &plainConfig{}, cfgA)
	assert.Equal(t, &plainConfig{Enabled: true, Label: "beta"}, cfgB)
}

func TestMust(t *testing.T) {
	v := &plainConfig{Label: "ok"}
	assert.Same(t, v, Must(v, nil))
	assert.Panics(t, func() { Must[plainConfig](nil, ErrDecode) })
}

func TestDecode(t *testing.T) {
	cfg, err := Decode[serverConfig]([]byte("host = 'h'\nport = 1\n"))
	require.NoError(t, err)
	assert.Equal(t, &serverConfig{Host: "h", Port: 1}, cfg)
}
