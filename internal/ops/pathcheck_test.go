package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hpungsan/clipmesh/internal/config"
	"github.com/hpungsan/clipmesh/internal/errors"
)

func TestValidatePath_TraversalRejected(t *testing.T) {
	exportsDir := t.TempDir()
	cfg := config.DefaultConfig()

	tests := []struct {
		name string
		path string
	}{
		{"parent traversal", "../backup.jsonl"},
		{"deep traversal", "../../etc/backup.jsonl"},
		{"mid-path traversal", "/tmp/../etc/backup.jsonl"},
		{"hidden in path", exportsDir + "/../../shadow.jsonl"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePath(tc.path, exportsDir, cfg)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestValidatePath_ExtensionRequired(t *testing.T) {
	exportsDir := t.TempDir()
	cfg := config.DefaultConfig()

	for _, name := range []string{"backup", "backup.json", "backup.txt"} {
		t.Run(name, func(t *testing.T) {
			err := ValidatePath(filepath.Join(exportsDir, name), exportsDir, cfg)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestValidatePath_ExportsDir(t *testing.T) {
	exportsDir := t.TempDir()
	cfg := config.DefaultConfig()

	if err := ValidatePath(filepath.Join(exportsDir, "out.jsonl"), exportsDir, cfg); err != nil {
		t.Errorf("expected success inside exports dir, got: %v", err)
	}

	// Not directly in the directory.
	nested := filepath.Join(exportsDir, "sub", "out.jsonl")
	if err := ValidatePath(nested, exportsDir, cfg); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for nested path, got: %v", err)
	}

	outside := filepath.Join(t.TempDir(), "out.jsonl")
	if err := ValidatePath(outside, exportsDir, cfg); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for outside path, got: %v", err)
	}
}

func TestValidatePath_AllowedPaths(t *testing.T) {
	exportsDir := t.TempDir()
	extra := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{extra, "relative/ignored"}

	if err := ValidatePath(filepath.Join(extra, "out.jsonl"), exportsDir, cfg); err != nil {
		t.Errorf("expected success for path in AllowedPaths, got: %v", err)
	}
}

func TestValidatePath_AllowUnsafePaths(t *testing.T) {
	exportsDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	outside := filepath.Join(t.TempDir(), "deep", "out.jsonl")
	if err := ValidatePath(outside, exportsDir, cfg); err != nil {
		t.Errorf("expected success with AllowUnsafePaths=true, got: %v", err)
	}

	// Extension check still applies.
	if err := ValidatePath(filepath.Join(t.TempDir(), "out.txt"), exportsDir, cfg); err == nil {
		t.Error("expected extension error even with AllowUnsafePaths=true")
	}
}

func TestValidatePath_SymlinkRejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
	exportsDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "target.jsonl")
	if err := os.WriteFile(target, []byte("{}\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	link := filepath.Join(exportsDir, "link.jsonl")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	for _, unsafe := range []bool{false, true} {
		cfg := config.DefaultConfig()
		cfg.AllowUnsafePaths = unsafe
		if err := ValidatePath(link, exportsDir, cfg); !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("unsafe=%v: expected ErrInvalidRequest for symlink, got: %v", unsafe, err)
		}
	}
}

func TestValidatePath_Empty(t *testing.T) {
	if err := ValidatePath("", t.TempDir(), nil); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got: %v", err)
	}
}
