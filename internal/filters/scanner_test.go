package filters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"filterdesk/internal/infrastructure/errors"
	"filterdesk/internal/infrastructure/logging"
	"filterdesk/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(options ScannerOptions) *Scanner {
	if options.Extension == "" {
		options.Extension = "filter"
	}
	return NewScanner(options, logging.NewNopLogger())
}

func join(root string, rels ...string) []string {
	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(rel)))
	}
	sort.Strings(paths)
	return paths
}

func TestScan_Scenario(t *testing.T) {
	root := testutils.TempTree(t, map[string]string{
		"a.filter":     "Show",
		"sub/b.filter": "Hide",
		"sub/c.txt":    "notes",
	})

	got, err := newTestScanner(ScannerOptions{}).Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, join(root, "a.filter", "sub/b.filter"), got)
}

func TestScan_ManyFilesAtDepth(t *testing.T) {
	files := map[string]string{
		"empty/":                  "",
		"deep/er/still/empty/":    "",
		"readme.md":               "",
		"noext":                   "",
		"archive.filter.bak":      "",
		"upper.FILTER":            "",
		".filter":                 "",
		"trailing.":               "",
		"x/filter":                "",
		"x/y/z/strict.filter.txt": "",
	}

	var expected []string
	for i := 0; i < 40; i++ {
		dir := ""
		for d := 0; d < i%7; d++ {
			dir += fmt.Sprintf("level%d/", d)
		}
		rel := fmt.Sprintf("%sfile%02d.filter", dir, i)
		files[rel] = fmt.Sprintf("rule %d", i)
		expected = append(expected, rel)
	}
	root := testutils.TempTree(t, files)

	got, err := newTestScanner(ScannerOptions{}).Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, join(root, expected...), got)
}

func TestScan_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	got, err := newTestScanner(ScannerOptions{}).Scan(context.Background(), root)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestScan_RootIsFile(t *testing.T) {
	root := testutils.TempTree(t, map[string]string{"only.filter": ""})

	got, err := newTestScanner(ScannerOptions{}).Scan(context.Background(), filepath.Join(root, "only.filter"))

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestScan_EmptyTree(t *testing.T) {
	got, err := newTestScanner(ScannerOptions{}).Scan(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScan_CustomExtension(t *testing.T) {
	root := testutils.TempTree(t, map[string]string{
		"a.filter": "",
		"b.cfg":    "",
		"c/d.cfg":  "",
	})

	got, err := newTestScanner(ScannerOptions{Extension: ".cfg"}).Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, join(root, "b.cfg", "c/d.cfg"), got)
}

func TestScan_Exclude(t *testing.T) {
	root := testutils.TempTree(t, map[string]string{
		"keep.filter":              "",
		"backup/old.filter":        "",
		"nested/backup/old.filter": "",
		"nested/keep.filter":       "",
		"draft.filter":             "",
	})

	scanner := newTestScanner(ScannerOptions{Exclude: []string{"**/backup", "draft.filter"}})
	got, err := scanner.Scan(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, join(root, "keep.filter", "nested/keep.filter"), got)
}

func TestScan_Cancelled(t *testing.T) {
	root := testutils.TempTree(t, map[string]string{"a.filter": "", "b/c.filter": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := newTestScanner(ScannerOptions{}).Scan(ctx, root)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsIO(err))
}

func TestScan_UnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}

	root := testutils.TempTree(t, map[string]string{
		"a.filter":         "",
		"locked/b.filter":  "",
		"open/more.filter": "",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	got, err := newTestScanner(ScannerOptions{}).Scan(context.Background(), root)

	require.Error(t, err)
	assert.Nil(t, got, "partial results must be discarded")
	assert.True(t, errors.IsIO(err))
}

func TestScan_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	root := testutils.TempTree(t, map[string]string{
		"a/x.filter": "",
	})
	outside := testutils.TempTree(t, map[string]string{
		"y.filter": "",
	})

	// a/loop points back at its own parent
	require.NoError(t, os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "a", "loop")))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "y.filter"), filepath.Join(root, "alias.filter")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling.filter")))

	t.Run("follow", func(t *testing.T) {
		got, err := newTestScanner(ScannerOptions{FollowSymlinks: true}).Scan(context.Background(), root)

		require.NoError(t, err)
		assert.Contains(t, got, filepath.Join(root, "a", "x.filter"))
		assert.Contains(t, got, filepath.Join(root, "linked", "y.filter"))
		assert.Contains(t, got, filepath.Join(root, "alias.filter"))
		assert.Contains(t, got, filepath.Join(root, "dangling.filter"))
	})

	t.Run("no follow", func(t *testing.T) {
		got, err := newTestScanner(ScannerOptions{FollowSymlinks: false}).Scan(context.Background(), root)

		require.NoError(t, err)
		assert.Equal(t, join(root, "a/x.filter", "alias.filter", "dangling.filter"), got)
	})
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"a.filter", true},
		{"a.b.filter", true},
		{"..filter", true},
		{".filter", false},
		{"filter", false},
		{"a.Filter", false},
		{"a.filter.txt", false},
		{"a.", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasExtension(tt.name, "filter"))
		})
	}
}
