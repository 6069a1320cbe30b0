// Package lproj places localized resource files into the <code>.lproj
// directories of a generated Xcode project.
package lproj

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/log"
	v2fileutil "github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/pathutil"
)

// Ext is the extension of localization directories.
const Ext = ".lproj"

// DirName returns the localization directory name of a region code.
func DirName(code string) string {
	return code + Ext
}

// RelativePath returns the project relative, forward slash separated path of a localized file.
func RelativePath(code, fileName string) string {
	return path.Join(DirName(code), fileName)
}

// Copier copies <sourceDir>/<code>.lproj/<file> into <projectDir>/<code>.lproj/<file>.
type Copier struct {
	fileManager v2fileutil.FileManager
	pathChecker pathutil.PathChecker
}

// NewCopier ...
func NewCopier(fileManager v2fileutil.FileManager, pathChecker pathutil.PathChecker) *Copier {
	return &Copier{
		fileManager: fileManager,
		pathChecker: pathChecker,
	}
}

// Locales lists the region codes that have a .lproj directory in sourceDir.
func (c *Copier) Locales(sourceDir string) ([]string, error) {
	entries, err := c.fileManager.ReadDirEntryNames(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s, error: %s", sourceDir, err)
	}

	var codes []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry, Ext) {
			continue
		}
		if isDir, err := c.pathChecker.IsDirExists(filepath.Join(sourceDir, entry)); err != nil {
			return nil, err
		} else if isDir {
			codes = append(codes, strings.TrimSuffix(entry, Ext))
		}
	}
	sort.Strings(codes)
	return codes, nil
}

// SourceExists reports whether <sourceDir>/<code>.lproj/<fileName> exists.
func (c *Copier) SourceExists(sourceDir, code, fileName string) (bool, error) {
	src := filepath.Join(sourceDir, filepath.FromSlash(RelativePath(code, fileName)))
	exists, err := c.pathChecker.IsPathExists(src)
	if err != nil {
		return false, fmt.Errorf("failed to check if %s exists, error: %s", src, err)
	}
	return exists, nil
}

// Copy copies one localized file and returns its project relative path.
// An existing destination file is replaced.
func (c *Copier) Copy(sourceDir, projectDir, code, fileName string) (string, error) {
	relativePath := RelativePath(code, fileName)
	src := filepath.Join(sourceDir, filepath.FromSlash(relativePath))
	dst := filepath.Join(projectDir, filepath.FromSlash(relativePath))

	if exists, err := c.pathChecker.IsPathExists(src); err != nil {
		return "", fmt.Errorf("failed to check if %s exists, error: %s", src, err)
	} else if !exists {
		return "", fmt.Errorf("localized file does not exist: %s", src)
	}

	file, err := c.fileManager.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s, error: %s", src, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warnf("Failed to close %s, error: %s", src, err)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s, error: %s", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("failed to create %s, error: %s", filepath.Dir(dst), err)
	}
	if err := fileutil.WriteBytesToFile(dst, content); err != nil {
		return "", fmt.Errorf("failed to write %s, error: %s", dst, err)
	}

	log.Debugf("Copied %s to %s", src, dst)
	return relativePath, nil
}
