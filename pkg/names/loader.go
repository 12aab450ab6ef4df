package names

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/praetorian-inc/rangeexpr/pkg/types"
	"gopkg.in/yaml.v3"
)

// yamlNameList is the on-disk format of a name list:
//
//	names:
//	  - id
//	  - "col,1"
type yamlNameList struct {
	Names []string `yaml:"names"`
}

// Loader reads name lists from YAML files or CSV header rows.
type Loader struct {
	fs fs.FS // nil reads from the OS filesystem
}

// NewLoader creates a loader reading from the OS filesystem.
func NewLoader() *Loader {
	return &Loader{}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// Load parses a YAML name list.
func (l *Loader) Load(data []byte) (types.Names, error) {
	var list yamlNameList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(list.Names) == 0 {
		return nil, fmt.Errorf("no names found in YAML")
	}
	return types.Names(list.Names), nil
}

// LoadFile loads a YAML name list from path.
func (l *Loader) LoadFile(path string) (types.Names, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	return l.Load(data)
}

// LoadCSVHeader reads the first record of CSV data as names.
func (l *Loader) LoadCSVHeader(r io.Reader) (types.Names, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row found in CSV")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return types.Names(header), nil
}

// LoadCSVHeaderFile reads the header row of the CSV file at path.
func (l *Loader) LoadCSVHeaderFile(path string) (types.Names, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	return l.LoadCSVHeader(bytes.NewReader(data))
}

func (l *Loader) readFile(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if l.fs != nil {
		data, err = fs.ReadFile(l.fs, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}
