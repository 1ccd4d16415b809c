package webserver

import (
	"net/http"
	"os"
)

// StaticThemes serves the theme directory read-only under prefix.
// Directory listings are answered with 404.
func StaticThemes(prefix, dir string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(fileOnlyFS{http.Dir(dir)}))
}

type fileOnlyFS struct {
	fs http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}
