package manifest

import (
	"fmt"

	"github.com/spf13/afero"
)

// Source yields one TOML configuration fragment.
type Source interface {
	Name() string
	Bytes(fs afero.Fs) ([]byte, error)
}

type fileSource string

// File makes a Source reading a TOML file from the loader's filesystem
func File(path string) Source {
	return fileSource(path)
}

func (f fileSource) Name() string {
	return string(f)
}

func (f fileSource) Bytes(fs afero.Fs) ([]byte, error) {
	return afero.ReadFile(fs, string(f))
}

type dataSource struct {
	name string
	data []byte
}

// Data makes a Source from an in-memory TOML fragment
func Data(name string, data []byte) Source {
	return dataSource{name: name, data: data}
}

func (d dataSource) Name() string {
	return d.name
}

func (d dataSource) Bytes(afero.Fs) ([]byte, error) {
	return d.data, nil
}

// Define makes a Source assigning a single value to a (possibly dotted)
// key, overriding earlier sources. The value is escaped for TOML.
func Define(name, value string) Source {
	return Data("define:"+name, []byte(fmt.Sprintf("%s = \"%s\"", name, TOMLEscape(value))))
}
