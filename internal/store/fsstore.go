package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	appLog "github.com/rdo34/notebook/internal/log"
	"github.com/rdo34/notebook/internal/model"
)

// FSStore implements Store as one JSON array per file on a billy filesystem.
// Relative file names are resolved against the store root; absolute names
// go to abs when it is set.
type FSStore struct {
	fs  billy.Filesystem
	abs billy.Filesystem
}

// NewFSStore creates a store rooted at dir on the OS filesystem.
func NewFSStore(dir string) (*FSStore, error) {
	if dir == "" {
		return nil, errors.New("empty dir")
	}
	return &FSStore{fs: osfs.New(dir), abs: osfs.New("/")}, nil
}

// NewFSStoreFS creates a store on an existing filesystem. Every name,
// absolute or not, stays on bfs.
func NewFSStoreFS(bfs billy.Filesystem) *FSStore {
	return &FSStore{fs: bfs}
}

// NewDefaultFSStore returns a store rooted at the working directory.
func NewDefaultFSStore() (*FSStore, error) {
	return NewFSStore(".")
}

// target picks the filesystem that owns name.
func (s *FSStore) target(name string) billy.Filesystem {
	if s.abs != nil && filepath.IsAbs(name) {
		return s.abs
	}
	return s.fs
}

// decodeField reads the exact key from obj. JSON object keys are matched
// case-sensitively here, unlike struct decoding.
func decodeField(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("missing field %q", key)
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}

func decodeRecord(msg json.RawMessage) (model.Record, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil {
		return model.Record{}, err
	}
	var r model.Record
	var err error
	if r.Date, err = decodeField(obj, "date"); err != nil {
		return model.Record{}, err
	}
	if r.Time, err = decodeField(obj, "time"); err != nil {
		return model.Record{}, err
	}
	if r.Description, err = decodeField(obj, "description"); err != nil {
		return model.Record{}, err
	}
	return r, nil
}

// Load reads every record from name in file order.
func (s *FSStore) Load(name string) ([]model.Record, error) {
	data, err := util.ReadFile(s.target(name), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: name, Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	out, err := decodeRecords(name, data)
	if err != nil {
		return nil, err
	}
	appLog.Debug("records loaded", "path", name, "count", len(out))
	return out, nil
}

func decodeRecords(name string, data []byte) ([]model.Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: name, Index: -1, Err: err}
	}
	if raw == nil {
		return nil, &ParseError{Path: name, Index: -1, Err: errors.New("top level is not an array")}
	}
	out := make([]model.Record, 0, len(raw))
	for i, msg := range raw {
		r, err := decodeRecord(msg)
		if err != nil {
			return nil, &ParseError{Path: name, Index: i, Err: err}
		}
		out = append(out, r)
	}
	return out, nil
}

// Save writes all records to name, replacing any existing content.
func (s *FSStore) Save(name string, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	if err := s.writeFile(name, records); err != nil {
		return &WriteError{Path: name, Err: err}
	}
	appLog.Debug("records saved", "path", name, "count", len(records))
	return nil
}

func (s *FSStore) writeFile(name string, records []model.Record) error {
	bfs := s.target(name)
	// billy creates missing parents on its own; the destination directory
	// must already exist.
	dir := filepath.Dir(name)
	if dir != "." {
		fi, err := bfs.Stat(dir)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}
	tmp, err := bfs.TempFile(dir, ".notebook-")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	bw := bufio.NewWriter(tmp)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		tmp.Close()
		bfs.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		bfs.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		bfs.Remove(tmpPath)
		return err
	}
	if err := bfs.Rename(tmpPath, name); err != nil {
		bfs.Remove(tmpPath)
		return err
	}
	return nil
}

var _ Store = (*FSStore)(nil)
