package acquire

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/conn-castle/omnisharp-client/internal/failure"
	"github.com/conn-castle/omnisharp-client/internal/identity"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

var osReadDir = os.ReadDir

// executableNames are the file names that mark a directory as an installed build.
var executableNames = []string{identity.ExecutableWindows, identity.ExecutableUnix}

// FindRuntimeByID returns the directory under root that holds build id.
// Candidates are root/id and versioned siblings named id.<suffix>; a
// candidate matches when it contains either executable name. All checks run
// concurrently and the first positive result wins, so callers must not rely
// on which candidate is reported when several match.
func FindRuntimeByID(ctx context.Context, id, root string) (string, bool, error) {
	candidates, err := candidateDirs(id, root)
	if err != nil {
		return "", false, err
	}
	if len(candidates) == 0 {
		return "", false, nil
	}

	found := make(chan string, len(candidates)*len(executableNames))
	g, gctx := errgroup.WithContext(ctx)
	for _, dir := range candidates {
		for _, name := range executableNames {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if isFile(filepath.Join(dir, name)) {
					found <- dir
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return "", false, err
	}
	close(found)

	dir, ok := <-found
	return dir, ok, nil
}

func candidateDirs(id, root string) ([]string, error) {
	entries, err := osReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, failure.FilesystemErr(messages.AcquireOpScan, root, err)
	}
	var dirs []string
	for _, entry := range entries {
		name := entry.Name()
		if name != id && !strings.HasPrefix(name, id+".") {
			continue
		}
		if !entry.IsDir() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		dirs = append(dirs, filepath.Join(root, name))
	}
	return dirs, nil
}

// installed reports whether dir itself holds either executable name.
// Versioned siblings do not count: the launch path is always dir.
func installed(dir string) bool {
	for _, name := range executableNames {
		if isFile(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := osStat(path)
	return err == nil && !info.IsDir()
}
