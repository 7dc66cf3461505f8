// Package extract unpacks downloaded server archives (zip on Windows, tar.gz
// elsewhere) and marks every extracted file executable.
package extract

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/conn-castle/omnisharp-client/internal/failure"
	"github.com/conn-castle/omnisharp-client/internal/messages"
)

// FileMode is applied to every extracted regular file.
const FileMode os.FileMode = 0o755

const dirMode os.FileMode = 0o755

// Extractor unpacks archives into a destination directory.
type Extractor struct {
	logger *zap.Logger
}

// New returns an Extractor. A nil logger discards output.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract unpacks archivePath into destDir. isWindows selects the zip format;
// otherwise the archive is read as tar.gz.
func (e *Extractor) Extract(isWindows bool, archivePath, destDir string) error {
	e.logger.Info(messages.ExtractStartLog, zap.String("archive", archivePath), zap.String("dest", destDir))

	if err := os.MkdirAll(destDir, dirMode); err != nil {
		return failure.FilesystemErr(messages.ExtractOpMkdir, destDir, err)
	}
	// Every write goes through root so links already on disk cannot carry an
	// entry outside destDir.
	root, err := os.OpenRoot(destDir)
	if err != nil {
		return failure.FilesystemErr(messages.ExtractOpMkdir, destDir, err)
	}
	defer func() { _ = root.Close() }()

	var files int
	if isWindows {
		files, err = extractZip(archivePath, root)
	} else {
		files, err = extractTarGz(archivePath, root)
	}
	if err != nil {
		return err
	}

	e.logger.Info(messages.ExtractFinishedLog, zap.String("archive", archivePath), zap.Int("files", files))
	return nil
}

func extractZip(archivePath string, root *os.Root) (int, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, failure.ExtractionErr(messages.ExtractOpOpen, archivePath, err)
	}
	defer func() { _ = reader.Close() }()

	files := 0
	for _, entry := range reader.File {
		name, err := entryPath(entry.Name)
		if err != nil {
			return files, failure.ExtractionErr(messages.ExtractOpEntry, archivePath, err)
		}
		mode := entry.Mode()
		if mode.IsDir() {
			if err := mkdirAll(root, name); err != nil {
				return files, err
			}
			continue
		}
		if mode&os.ModeSymlink != 0 {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return files, failure.ExtractionErr(messages.ExtractOpEntry, entry.Name, err)
		}
		err = writeFile(root, name, rc)
		_ = rc.Close()
		if err != nil {
			return files, err
		}
		files++
	}
	return files, nil
}

func extractTarGz(archivePath string, root *os.Root) (int, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return 0, failure.ExtractionErr(messages.ExtractOpOpen, archivePath, err)
	}
	defer func() { _ = file.Close() }()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return 0, failure.ExtractionErr(messages.ExtractOpOpen, archivePath, err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	files := 0
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, failure.ExtractionErr(messages.ExtractOpRead, archivePath, err)
		}
		if isRootEntry(header.Name) {
			continue
		}
		name, err := entryPath(header.Name)
		if err != nil {
			return files, failure.ExtractionErr(messages.ExtractOpEntry, archivePath, err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := mkdirAll(root, name); err != nil {
				return files, err
			}
		case tar.TypeReg:
			if err := writeFile(root, name, tr); err != nil {
				return files, err
			}
			files++
		case tar.TypeSymlink:
			if err := writeSymlink(root, name, header.Linkname); err != nil {
				return files, err
			}
		default:
			// Devices, fifos and hard links never appear in server releases.
		}
	}
}

func mkdirAll(root *os.Root, name string) error {
	if name == "." {
		return nil
	}
	if err := root.MkdirAll(name, dirMode); err != nil {
		return failure.FilesystemErr(messages.ExtractOpMkdir, hostPath(root, name), err)
	}
	return nil
}

func writeFile(root *os.Root, name string, r io.Reader) error {
	if err := mkdirAll(root, filepath.Dir(name)); err != nil {
		return err
	}
	out, err := root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FileMode)
	if err != nil {
		return failure.FilesystemErr(messages.ExtractOpCreate, hostPath(root, name), err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return failure.ExtractionErr(messages.ExtractOpCopy, hostPath(root, name), err)
	}
	if err := out.Close(); err != nil {
		return failure.FilesystemErr(messages.ExtractOpCreate, hostPath(root, name), err)
	}
	// OpenFile honours umask; the entry point must end up runnable.
	if err := root.Chmod(name, FileMode); err != nil {
		return failure.FilesystemErr(messages.ExtractOpChmod, hostPath(root, name), err)
	}
	return nil
}

// writeSymlink rejects link targets that name a location outside the root.
// Targets that only escape through other links are stopped later by root.
func writeSymlink(root *os.Root, name, linkname string) error {
	resolved := filepath.Join(filepath.Dir(name), linkname)
	if filepath.IsAbs(linkname) || !filepath.IsLocal(resolved) {
		return failure.ExtractionErr(messages.ExtractOpEntry, hostPath(root, name), fmt.Errorf(messages.ExtractUnsafeLinkFmt, linkname))
	}
	if err := mkdirAll(root, filepath.Dir(name)); err != nil {
		return err
	}
	_ = root.Remove(name)
	if err := root.Symlink(linkname, name); err != nil {
		return failure.FilesystemErr(messages.ExtractOpSymlink, hostPath(root, name), err)
	}
	return nil
}

func hostPath(root *os.Root, name string) string {
	return filepath.Join(root.Name(), name)
}

func isRootEntry(name string) bool {
	clean := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(name)), "./")
	return clean == "." || clean == ""
}

// entryPath turns an archive entry name into a path relative to the
// destination and rejects names that are absolute, carry a drive letter or
// climb out of the destination.
func entryPath(name string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if normalized == "" {
		return "", errors.New(messages.ExtractEmptyEntry)
	}
	if strings.HasPrefix(normalized, "/") {
		return "", fmt.Errorf(messages.ExtractUnsafeEntryFmt, name)
	}
	if len(normalized) >= 2 && normalized[1] == ':' {
		return "", fmt.Errorf(messages.ExtractUnsafeEntryFmt, name)
	}
	rel := filepath.Clean(filepath.FromSlash(normalized))
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf(messages.ExtractUnsafeEntryFmt, name)
	}
	return rel, nil
}
