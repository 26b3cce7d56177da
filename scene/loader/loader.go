package loader

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/cofenberg/pixellight-sub004/asset"
	"github.com/cofenberg/pixellight-sub004/log"
	"github.com/cofenberg/pixellight-sub004/scene"
)

var logger = log.New("scene loader")

// Options control a load or save run.
type Options struct {
	// Skip properties that equal their declared default when saving.
	NoDefault bool

	// Receives the approximate load progress in [0, 1] after every visited
	// element and a final 1 once loading is done.
	Progress func(fraction float32)
}

// The Format interface is implemented by all scene file formats.
type Format interface {
	// Load a scene document into a container.
	Load(c *scene.Container, res *asset.Resource, opts Options) (Stats, error)

	// Save a container as a scene document.
	Save(c *scene.Container, w io.Writer, opts Options) (Stats, error)
}

// Select a format from a file extension such as ".scene".
func FormatFor(ext string) (Format, error) {
	switch strings.ToLower(ext) {
	case ".scene":
		return PL{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
}

// Load a scene resource into c, selecting the format by extension.
func Load(c *scene.Container, res *asset.Resource, opts Options) (Stats, error) {
	format, err := FormatFor(res.Ext())
	if err != nil {
		return Stats{}, err
	}
	return format.Load(c, res, opts)
}

// Load a scene file or URL into c.
func LoadFile(c *scene.Container, filename string, opts Options) (Stats, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return Stats{}, err
	}
	defer res.Close()
	return Load(c, res, opts)
}

// Save c to w in the native scene format.
func Save(c *scene.Container, w io.Writer, opts Options) (Stats, error) {
	return PL{}.Save(c, w, opts)
}

// Save c to a file, selecting the format by extension.
func SaveFile(c *scene.Container, filename string, opts Options) (Stats, error) {
	format, err := FormatFor(path.Ext(filename))
	if err != nil {
		return Stats{}, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return Stats{}, err
	}
	stats, err := format.Save(c, f, opts)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return stats, err
}
