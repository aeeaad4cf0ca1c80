package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// spaHandler serves the built dashboard front-end, falling back to index.html
// for client-side routes.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	cleaned := path.Clean("/" + r.URL.Path)
	target := filepath.Join(h.staticPath, filepath.FromSlash(cleaned))
	info, err := os.Stat(target)
	if err == nil && !info.IsDir() {
		http.ServeFile(w, r, target)
		return
	}

	if err == nil || os.IsNotExist(err) {
		index := filepath.Join(h.staticPath, h.indexPath)
		if _, err := os.Stat(index); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
		return
	}

	http.NotFound(w, r)
}
