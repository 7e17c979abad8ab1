// Package imgio loads source images and writes the generated assets. Writes
// go through a temporary file in the destination folder and are renamed into
// place once the encode succeeded.
package imgio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	ico "github.com/sergeymakinen/go-ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Load decodes the image at path. Any format registered above is accepted.
func Load(path string) (image.Image, error) {
	imgFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if close_err := imgFile.Close(); close_err != nil {
			slog.Error("could not close image file", "name", path, "error", close_err)
		}
	}()

	img, _, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}
	return img, nil
}

// SavePNG writes img as a PNG to path.
func SavePNG(img image.Image, path string) error {
	return save(path, func(outFile *os.File) error {
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode(outFile, img)
	})
}

// SaveICO writes imgs as a multi-resolution ICO container to path. The
// container entries keep the order and the actual pixel dimensions of imgs.
func SaveICO(imgs []image.Image, path string) error {
	return save(path, func(outFile *os.File) error {
		return ico.EncodeAll(outFile, imgs)
	})
}

func save(path string, encode func(*os.File) error) (err error) {
	destDir, destName := filepath.Split(path)
	if destDir == "" {
		destDir = "."
	}

	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
	}()

	if err = encode(outFile); err != nil {
		return fmt.Errorf("could not encode destination %q: %w", destName, err)
	}

	canRename = true
	return err
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
