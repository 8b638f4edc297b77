package project

import (
	"io/fs"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/projkit/internal/errors"
	"github.com/thoreinstein/projkit/internal/paths"
	"github.com/thoreinstein/projkit/pkg/fileutil"
)

// FilePerm is the permission of a freshly written default configuration.
const FilePerm = 0o600

// lockSuffix names the advisory lock file next to the configuration file.
const lockSuffix = ".lock"

// Defaulter is implemented by configuration types whose defaults differ from
// the zero value. SetDefaults is called on a zero value before it is written.
type Defaulter interface {
	SetDefaults()
}

// Defaults returns the default value of T: the zero value, refined by
// SetDefaults when *T implements Defaulter.
func Defaults[T any]() *T {
	v := new(T)
	if d, ok := any(v).(Defaulter); ok {
		d.SetDefaults()
	}
	return v
}

// Bootstrap makes sure the configuration directory and file exist, writing
// the defaults of T when the file is missing. It reports whether it wrote
// the file. An existing file is never modified.
//
// Concurrent first runs, in this process or others, are serialized by an
// advisory lock, and the file appears atomically.
func Bootstrap[T any](p *Project) (bool, error) {
	if err := paths.EnsureDir(p.dir, paths.DefaultDirPerm); err != nil {
		return false, errors.Mark(err, ErrCreateDir)
	}

	path := p.ConfigPath()
	exists, err := fileExists(path)
	if err != nil {
		return false, errors.Mark(err, ErrBootstrap)
	}
	if exists {
		return false, nil
	}

	lock := flock.New(p.LockPath())
	if err := lock.Lock(); err != nil {
		return false, errors.Mark(errors.Wrapf(err, "locking %s", lock.Path()), ErrBootstrap)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release config lock", "lock", lock.Path(), "error", err)
		}
	}()

	// someone else may have written it while we waited
	exists, err = fileExists(path)
	if err != nil {
		return false, errors.Mark(err, ErrBootstrap)
	}
	if exists {
		return false, nil
	}

	if err := fileutil.AtomicWriteTOML(path, Defaults[T](), FilePerm); err != nil {
		return false, errors.Mark(errors.Wrapf(err, "writing %s", path), ErrBootstrap)
	}
	p.logger.Debug("default config written", "path", path)
	return true, nil
}

// Load bootstraps the configuration if needed, then reads and decodes it
// into a new T. Decoding is all-or-nothing: a TOML syntax error, a value of
// the wrong type, or a key missing from the file fails the whole load.
// Keys the type does not know about are ignored.
func Load[T any](p *Project) (*T, error) {
	if _, err := Bootstrap[T](p); err != nil {
		return nil, err
	}

	path := p.ConfigPath()
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "reading %s", path), ErrRead)
	}

	cfg, err := Decode[T](data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	p.logger.Debug("config loaded", "path", path)
	return cfg, nil
}

// Must is a helper for entry points that treat a broken configuration as
// fatal. It panics if err is non-nil.
//
//	cfg := project.Must(project.Load[Config](p))
func Must[T any](v *T, err error) *T {
	if err != nil {
		panic(err)
	}
	return v
}

// Decode parses TOML data and decodes it into a new T using the same rules
// as Load.
//
// Every key that the encoding of Defaults[T]() produces must be present in
// data; fields the encoder omits (nil maps and pointers, omitempty zero
// values, fields tagged "-") are optional. Entries inside map-typed fields are
// never required. Keys keep their case, and quoted keys containing dots stay
// single keys.
func Decode[T any](data []byte) (*T, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Mark(err, ErrParse)
	}

	required, err := defaultKeys[T]()
	if err != nil {
		return nil, errors.Mark(err, ErrDecode)
	}
	if missing := missingKeys(required, doc, reflect.TypeFor[T](), ""); len(missing) > 0 {
		return nil, errors.Mark(errors.Newf("missing keys: %s", strings.Join(missing, ", ")), ErrDecode)
	}

	cfg := new(T)
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Mark(err, ErrDecode)
	}
	return cfg, nil
}

// defaultKeys returns the document the default value of T encodes to.
func defaultKeys[T any]() (map[string]any, error) {
	encoded, err := fileutil.MarshalTOML(Defaults[T]())
	if err != nil {
		return nil, errors.Wrap(err, "encoding defaults")
	}
	var doc map[string]any
	if err := toml.Unmarshal(encoded, &doc); err != nil {
		return nil, errors.Wrap(err, "re-reading encoded defaults")
	}
	return doc, nil
}

// missingKeys lists the dotted paths of keys in want that got lacks. It
// descends into tables only where t says the value is a struct, so the keys
// of map-typed fields are data, not schema.
func missingKeys(want, got map[string]any, t reflect.Type, prefix string) []string {
	var missing []string
	for _, key := range sortedKeys(want) {
		path := prefix + key
		value, ok := lookupKey(got, key)
		if !ok {
			missing = append(missing, path)
			continue
		}

		sub, isTable := want[key].(map[string]any)
		gotSub, gotTable := value.(map[string]any)
		if !isTable || !gotTable {
			continue
		}
		if ft, ok := fieldType(t, key); ok {
			missing = append(missing, missingKeys(sub, gotSub, ft, path+".")...)
		}
	}
	return missing
}

// lookupKey finds key in m, falling back to a case-insensitive match the way
// the decoder matches struct fields.
func lookupKey(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// fieldType returns the struct type of the field of t encoded under key. It
// reports false when t is not a struct or the field is not a struct, which
// stops the descent.
func fieldType(t reflect.Type, key string) (reflect.Type, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			continue
		}
		if name == "" && f.Anonymous {
			if ft, ok := fieldType(f.Type, key); ok {
				return ft, true
			}
			continue
		}
		if name == "" {
			name = f.Name
		}
		if !strings.EqualFold(name, key) {
			continue
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		return ft, ft.Kind() == reflect.Struct
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, errors.Wrapf(err, "checking %s", path)
	}
}
