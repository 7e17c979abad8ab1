// Package pipeline runs the full asset pipeline: background cutout, generic
// favicon, then the fixed-size icon set and ICO bundle.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"favgen/cutout"
	"favgen/icons"
	"favgen/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Src         string `help:"Generated source image" default:"attached_assets/car-logo.png"`
	Dest        string `help:"Public assets folder receiving every generated file" default:"client/public"`
	Transparent string `help:"Filename for the transparent cutout" default:"car-logo-transparent.png"`
	Favicon     string `help:"Filename for the generic favicon" default:"favicon.png"`
	cutout.RuleFlags
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

	img, err := cutout.Cut(c.Src, filepath.Join(c.Dest, c.Transparent), c.Rule())
	if err != nil {
		return err
	}

	if err := icons.WriteFavicon(img, filepath.Join(c.Dest, c.Favicon)); err != nil {
		return err
	}
	if err := icons.WriteSet(img, c.Dest, worker, wait); err != nil {
		return err
	}

	slog.Info("done", "dest", c.Dest)
	return nil
}
