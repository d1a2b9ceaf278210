package rest

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NewStaticHandler - serves the built front-end bundle from root with simple
// cache headers. Unknown paths fall back to index.html so client-side routes
// survive a refresh.
func NewStaticHandler(root string) http.Handler {
	fileServer := http.FileServer(http.Dir(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestPath := path.Clean("/" + r.URL.Path)

		filePath := filepath.Join(root, filepath.FromSlash(requestPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			requestPath = "/"
		}

		switch strings.ToLower(path.Ext(requestPath)) {
		case ".css", ".js", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico":
			w.Header().Set("Cache-Control", "public, max-age=604800")
		default:
			w.Header().Set("Cache-Control", "no-cache")
		}

		r.URL.Path = requestPath
		fileServer.ServeHTTP(w, r)
	})
}
