package config

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	fixzip "github.com/hidez8891/zip"

	"tplprint/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty debug report. When destination cannot be created
// report goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{id: uuid.New(), entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

// Report accumulates files and data to be archived when program ends.
// All methods are safe to call on nil Report, which means report was not
// requested. Not to be used concurrently.
type Report struct {
	id      uuid.UUID
	entries map[string]entry
	file    *os.File
}

// Close writes the archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

// Name returns absolute name of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// ID identifies the run report belongs to, it is recorded in the manifest.
func (r *Report) ID() string {
	if r == nil {
		return ""
	}
	return r.id.String()
}

// Store remembers file or directory to be archived under name. Content is
// read when report is closed.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}

	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData remembers data to be archived as a file under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

func (r *Report) finalize() error {
	arc := fixzip.NewWriter(r.file)
	defer arc.Close()

	names := slices.Sorted(maps.Keys(r.entries))
	if err := saveFile(arc, "MANIFEST", time.Now(), manifest(r.id, names, r.entries)); err != nil {
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if e.data != nil {
			if err := saveFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}

		info, err := os.Stat(e.actual)
		if err != nil {
			// absent files are skipped
			continue
		}
		switch {
		case info.Mode().IsRegular():
			if err := saveFromDisk(arc, name, e.actual, info.ModTime()); err != nil {
				return err
			}
		case info.IsDir():
			if err := saveDir(arc, name, e.actual); err != nil {
				return err
			}
		}
	}
	return nil
}

func manifest(id uuid.UUID, names []string, entries map[string]entry) *bytes.Buffer {
	now := time.Now()
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s %s\t%s\n", misc.GetAppName(), misc.GetVersion(), id)
	for _, name := range names {
		e := entries[name]
		if e.stamp.IsZero() {
			e.stamp = now
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", e.stamp.UTC().Format(time.UnixDate), name, e.original, e.actual)
	}
	return buf
}

func saveFile(dst *fixzip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&fixzip.FileHeader{Name: name, Method: fixzip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func saveFromDisk(dst *fixzip.Writer, name, path string, t time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return saveFile(dst, name, t, f)
}

func saveDir(dst *fixzip.Writer, name, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return saveFromDisk(dst, filepath.ToSlash(filepath.Join(name, rel)), path, info.ModTime())
	})
}
