package filters

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"filterdesk/internal/infrastructure/errors"
	"filterdesk/internal/infrastructure/logging"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// OpScan names the scan operation in errors and logs
const OpScan = "scan_filter_files"

// ScannerOptions configures a Scanner
type ScannerOptions struct {
	// Extension is matched without its leading dot, case-sensitively
	Extension string
	// FollowSymlinks descends into symlinked directories, visiting each directory once
	FollowSymlinks bool
	// Exclude holds doublestar patterns matched against root-relative slash paths
	Exclude []string
}

// Scanner finds filter files below a root directory
type Scanner struct {
	options ScannerOptions
	logger  logging.Logger
}

// NewScanner creates a scanner
func NewScanner(options ScannerOptions, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	options.Extension = strings.TrimPrefix(options.Extension, ".")
	return &Scanner{
		options: options,
		logger:  logger,
	}
}

// Scan returns every file under root carrying the configured extension, sorted.
// A missing root fails with NOT_FOUND before traversal; any error during the walk
// fails the whole scan and no partial result is returned.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.HandleNotFound(OpScan, root)
		}
		return nil, errors.HandleIOError(OpScan, root, err)
	}

	matches := []string{}
	if !info.IsDir() {
		return matches, nil
	}

	var mu sync.Mutex
	conf := fastwalk.Config{Follow: s.options.FollowSymlinks}

	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		isDir := s.isDir(p, d)
		if s.excluded(root, p) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}
		if isDir || !HasExtension(d.Name(), s.options.Extension) {
			return nil
		}

		mu.Lock()
		matches = append(matches, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, errors.HandleIOError(OpScan, root, err)
	}

	sort.Strings(matches)
	s.logger.Debug("Scanned for filter files", "root", root, "count", len(matches))
	return matches, nil
}

// isDir reports whether p is a directory, resolving symlinks the way the walk does.
// A dangling symlink counts as a file.
func (s *Scanner) isDir(p string, d os.DirEntry) bool {
	if d.Type()&os.ModeSymlink == 0 {
		return d.IsDir()
	}
	target, err := os.Stat(p)
	if err != nil {
		return false
	}
	return target.IsDir()
}

func (s *Scanner) excluded(root, p string) bool {
	if len(s.options.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range s.options.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// HasExtension reports whether name ends in "."+ext. Only the text after the
// last dot counts, and a name whose only dot is the leading one has no extension.
func HasExtension(name, ext string) bool {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return false
	}
	return name[i+1:] == ext
}
