package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samrai/greetsite/resources"
	"github.com/urfave/cli/v2"
)

var starterFS fs.FS = resources.Starter

var InitCommand = &cli.Command{
	Name:  "init",
	Usage: "Write the starter config, views and public assets into the current directory",
	Action: func(c *cli.Context) error {
		targetDir, err := os.Getwd()
		if err != nil {
			return err
		}
		fmt.Println("🚀 Creating greetsite project in:", targetDir)

		written, skipped, err := copyEmbeddedDir(starterFS, resources.StarterRoot, targetDir)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		for _, path := range skipped {
			fmt.Println("⏭️  Kept existing:", path)
		}
		fmt.Printf("✅ Project created successfully (%d files written).\n", len(written))
		fmt.Println("▶  Run: greetsite dev")
		return nil
	},
}

// copyEmbeddedDir copies sourceDir from source into targetDir. Files that
// already exist are left untouched and reported as skipped.
func copyEmbeddedDir(source fs.FS, sourceDir string, targetDir string) (written, skipped []string, err error) {
	err = fs.WalkDir(source, sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, filepath.FromSlash(path))
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		targetPath := filepath.Join(targetDir, rel)

		if d.IsDir() {
			return os.MkdirAll(targetPath, os.ModePerm)
		}

		if _, err := os.Stat(targetPath); err == nil {
			skipped = append(skipped, rel)
			return nil
		}

		data, err := fs.ReadFile(source, path)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), os.ModePerm); err != nil {
			return err
		}

		if err := os.WriteFile(targetPath, data, 0644); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	})
	return written, skipped, err
}
