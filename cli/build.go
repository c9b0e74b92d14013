package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samrai/greetsite/core"
	"github.com/urfave/cli/v2"
)

var BuildCommand = &cli.Command{
	Name:  "build",
	Usage: "Minify and gzip every CSS and JS file in the public directory ahead of a prod run",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config := core.LoadConfig(c.String("config"))

		if _, err := os.Stat(config.PublicDir); err != nil {
			return fmt.Errorf("public directory %s: %w", config.PublicDir, err)
		}

		m := core.NewMinifier()
		built := 0
		err := filepath.WalkDir(config.PublicDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isBuildableAsset(path) {
				return nil
			}

			rel, err := filepath.Rel(config.PublicDir, path)
			if err != nil {
				return err
			}

			out, err := core.BuildAsset(m, rel, config.PublicDir, config.OutputDir)
			if err != nil {
				return fmt.Errorf("failed to build %s: %w", rel, err)
			}

			fmt.Println("📦", filepath.ToSlash(rel), "→", out)
			built++
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Printf("✅ %d assets built into %s.\n", built, filepath.Join(config.OutputDir, "static"))
		return nil
	},
}

func isBuildableAsset(path string) bool {
	ext := filepath.Ext(path)
	if ext != ".css" && ext != ".js" {
		return false
	}
	return !strings.HasSuffix(strings.TrimSuffix(filepath.Base(path), ext), ".min")
}
