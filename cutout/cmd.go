package cutout

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"favgen/imgio"

	"github.com/alecthomas/kong"
)

// RuleFlags exposes the classifier thresholds as CLI flags, defaulting to the
// values the source artwork was tuned with.
type RuleFlags struct {
	GreenFloor  int `help:"Minimum green channel for the primary keep rule" default:"100" group:"classifier"`
	ChannelLead int `help:"How far green or blue must lead red to count as subject color" default:"20" group:"classifier"`
	CyanFloor   int `help:"Minimum green and blue channels for the cyan keep rule" default:"150" group:"classifier"`
}

func (f RuleFlags) Rule() Rule {
	return Rule{
		GreenFloor:  f.GreenFloor,
		ChannelLead: f.ChannelLead,
		CyanFloor:   f.CyanFloor,
	}
}

type CLICmd struct {
	Src  string `help:"Source image to cut out" default:"attached_assets/car-logo.png"`
	Dest string `help:"Destination PNG for the transparent cutout" default:"client/public/car-logo-transparent.png"`
	RuleFlags
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

func (c *CLICmd) Run() error {
	if err := os.MkdirAll(filepath.Dir(c.Dest), 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", filepath.Dir(c.Dest), err)
	}

	_, err := Cut(c.Src, c.Dest, c.Rule())
	return err
}

// Cut loads the image at src, removes the background with rule, writes the
// cropped transparent result to dest and returns it for further processing.
func Cut(src, dest string, rule Rule) (image.Image, error) {
	img, err := imgio.Load(src)
	if err != nil {
		return nil, err
	}

	out := Matte(img, rule)
	if err := imgio.SavePNG(out, dest); err != nil {
		return nil, err
	}

	slog.Info("saved transparent cutout", "file", dest,
		"width", out.Bounds().Dx(), "height", out.Bounds().Dy())
	return out, nil
}
