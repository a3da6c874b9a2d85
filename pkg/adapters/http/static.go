package http

import (
	"io/fs"
	"net/http"
	"path"
	"slices"
	"strings"
)

// assetDir restricts a directory to what a browser may fetch.
// Config files (YAML, dotfiles) live next to the state document, so they are hidden.
type assetDir struct {
	root   http.FileSystem
	hidden []string
}

func (d assetDir) Open(name string) (http.File, error) {
	if hiddenAsset(name) || slices.Contains(d.hidden, path.Base(name)) {
		return nil, fs.ErrNotExist
	}

	f, err := d.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		// Directories are only reachable through their index page.
		index, err := d.root.Open(path.Join(name, "index.html"))
		if err != nil {
			f.Close()
			return nil, fs.ErrNotExist
		}
		index.Close()
	}
	return f, nil
}

func hiddenAsset(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
