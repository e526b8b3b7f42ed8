package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Renderer writes a scene in one output format.
type Renderer interface {
	Render(w io.Writer, s *Scene) error
}

var renderers = map[string]Renderer{
	"dot": dotRenderer{},
	"gv":  dotRenderer{},
	"svg": svgRenderer{},
	"png": pngRenderer{},
}

// ForExtension returns the renderer for a file extension such as "png".
func ForExtension(ext string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", ext)
	}
	return r, nil
}

// WriteFiles renders s to prefix.ext for every extension and returns
// the paths written. All extensions are checked before any file is
// created.
func WriteFiles(prefix string, exts []string, s *Scene) ([]string, error) {
	rs := make([]Renderer, len(exts))
	for i, ext := range exts {
		r, err := ForExtension(ext)
		if err != nil {
			return nil, err
		}
		rs[i] = r
	}

	var paths []string
	for i, ext := range exts {
		path := prefix + "." + strings.TrimPrefix(ext, ".")
		if err := writeFile(path, rs[i], s); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		log.WithField("file", path).Info("figure saved")
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, r Renderer, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := r.Render(bw, s); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
