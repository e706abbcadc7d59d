package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/frameless/internal/preview"
)

func runPreview(args []string) int {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/frameless/config.yaml)")
	out := fs.String("out", "frameless.png", "Output image (.png, .jpg, .gif, .bmp or .tiff)")
	scale := fs.Int("scale", 1, "Integer zoom factor")
	maximized := fs.Bool("maximized", false, "Draw the maximized state")
	title := fs.String("title", "", "Override the window title")
	hover := fs.String("hover", "", "Highlight a button: minimize, maximize or close")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless preview [--path PATH] [--out FILE] [--scale N] [--maximized] [--hover BUTTON]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Render the configured window and shadow to an image without a display.")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 || *scale < 1 || *scale > 8 {
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if *title != "" {
		cfg.Window.Title = *title
	}

	img, err := preview.Render(cfg, preview.Options{
		Maximized: *maximized,
		Hover:     *hover,
		Scale:     *scale,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := preview.Save(img, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	b := img.Bounds()
	fmt.Printf("wrote %s (%dx%d)\n", *out, b.Dx(), b.Dy())
	return 0
}
