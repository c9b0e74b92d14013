package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/samrai/greetsite/resources"
	"github.com/urfave/cli/v2"
)

func TestCopyEmbeddedDir(t *testing.T) {
	tmpDir := t.TempDir()

	written, skipped, err := copyEmbeddedDir(resources.Starter, resources.StarterRoot, tmpDir)
	if err != nil {
		t.Fatalf("unexpected error copying embedded dir: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("expected nothing skipped, got %v", skipped)
	}

	count := 0
	err = fs.WalkDir(resources.Starter, resources.StarterRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		count++
		rel, err := filepath.Rel(resources.StarterRoot, filepath.FromSlash(path))
		if err != nil {
			return err
		}
		if _, err := os.Stat(filepath.Join(tmpDir, rel)); err != nil {
			t.Errorf("expected file %s to exist, but got error: %v", rel, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected walk error: %v", err)
	}
	if len(written) != count {
		t.Errorf("expected %d files written, got %d", count, len(written))
	}
}

func TestCopyEmbeddedDir_KeepsExistingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "greetsite.config.yml")
	_ = os.WriteFile(existing, []byte("greetingName: Mine\n"), 0644)

	source := fstest.MapFS{
		"starter/greetsite.config.yml": {Data: []byte("greetingName: Theirs\n")},
		"starter/views/pages/a.html":   {Data: []byte("a")},
	}

	written, skipped, err := copyEmbeddedDir(source, "starter", tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "greetingName: Mine\n" {
		t.Errorf("expected existing config to be kept, got %q", data)
	}
	if len(skipped) != 1 || skipped[0] != "greetsite.config.yml" {
		t.Errorf("unexpected skipped list: %v", skipped)
	}
	if len(written) != 1 || written[0] != filepath.Join("views", "pages", "a.html") {
		t.Errorf("unexpected written list: %v", written)
	}
}

func TestInitCommand_RunSuccess(t *testing.T) {
	tmpDir := t.TempDir()

	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	_ = os.Chdir(tmpDir)

	app := &cli.App{Commands: []*cli.Command{InitCommand}}

	output := captureOutput(func() {
		if err := app.Run([]string{"greetsite", "init"}); err != nil {
			t.Errorf("init command failed: %v", err)
		}
	})

	if !strings.Contains(output, "✅ Project created successfully") {
		t.Errorf("unexpected output: %s", output)
	}
	for _, file := range []string{"greetsite.config.yml", "views/pages/user/home.html", "public/css/style.css"} {
		if _, err := os.Stat(filepath.Join(tmpDir, file)); err != nil {
			t.Errorf("expected %s to exist: %v", file, err)
		}
	}
}

func TestInitCommand_FailsOnBadSource(t *testing.T) {
	tmpDir := t.TempDir()

	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	_ = os.Chdir(tmpDir)

	original := starterFS
	starterFS = fstest.MapFS{}
	defer func() { starterFS = original }()

	app := &cli.App{Commands: []*cli.Command{InitCommand}}

	var err error
	captureOutput(func() {
		err = app.Run([]string{"greetsite", "init"})
	})

	if err == nil || !strings.Contains(err.Error(), "failed to create project") {
		t.Errorf("expected failure, got %v", err)
	}
}
