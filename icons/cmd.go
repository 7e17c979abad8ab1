package icons

import (
	"fmt"
	"os"
	"path/filepath"

	"favgen/imgio"
	"favgen/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Src     string `help:"Transparent source image" default:"client/public/car-logo-transparent.png"`
	Dest    string `help:"Destination folder for the icon set" default:"client/public"`
	Favicon string `help:"Filename for the generic favicon" default:"favicon.png"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	src, err := filepath.Abs(c.Src)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(src); err == nil && info.IsDir() {
			err = fmt.Errorf("is a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid source path %q: %w", c.Src, err)
	}
	c.Src = src

	if c.Dest, err = filepath.Abs(c.Dest); err != nil {
		return fmt.Errorf("invalid destination path %q: %w", c.Dest, err)
	}
	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	img, err := imgio.Load(c.Src)
	if err != nil {
		return err
	}

	if err := WriteFavicon(img, filepath.Join(c.Dest, c.Favicon)); err != nil {
		return err
	}
	return WriteSet(img, c.Dest, worker, wait)
}
