package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/pathutil"
	"github.com/bitrise-io/go-utils/sliceutil"
	v2fileutil "github.com/bitrise-io/go-utils/v2/fileutil"
	v2pathutil "github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-xcode-localization/infoplist"
	"github.com/bitrise-steplib/steps-xcode-localization/lproj"
	"github.com/bitrise-steplib/steps-xcode-localization/pbxproj"
)

type localizedFile struct {
	Code     string
	FileName string
}

type session struct {
	opts      options
	project   *pbxproj.Project
	infoPlist *infoplist.Document
	copier    *lproj.Copier

	// rename replaces a file with its staged copy; os.Rename when nil.
	rename func(oldpath, newpath string) error
}

func run(opts options) error {
	s, err := openSession(opts)
	if err != nil {
		return reportError("open", err, "Failed to open project")
	}
	return s.run()
}

func (s *session) run() error {
	log.Infof("Adding languages")
	s.addLanguages()

	files, err := s.plannedFiles()
	if err != nil {
		return reportError("locales", err, "Failed to list localized files")
	}

	if len(files) > 0 {
		log.Infof("Adding localized files")
		if err := s.addLocalizedFiles(files); err != nil {
			return reportError("localize", err, "Failed to add localized files")
		}
	}

	if err := s.save(); err != nil {
		return reportError("write", err, "Failed to write project")
	}
	return nil
}

func openSession(opts options) (*session, error) {
	data, err := fileutil.ReadBytesFromFile(opts.ProjectFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s, error: %s", opts.ProjectFile, err)
	}

	project, err := pbxproj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s, error: %s", opts.ProjectFile, err)
	}
	project.MainTargetName = opts.TargetName
	project.ContainerGroupName = opts.ContainerGroup
	project.RegionPolicy = opts.RegionPolicy
	log.Printf("%d objects in %s", project.Len(), opts.ProjectFile)

	var doc *infoplist.Document
	if opts.InfoPlistPath != "" {
		doc, err = infoplist.Open(opts.InfoPlistPath)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warnf("No Info.plist found, %s will not be updated", infoplist.LocalizationsKey)
	}

	return &session{
		opts:      opts,
		project:   project,
		infoPlist: doc,
		copier:    lproj.NewCopier(v2fileutil.NewFileManager(), v2pathutil.NewPathChecker()),
	}, nil
}

func (s *session) addLanguages() {
	if s.opts.ClearKnownRegions {
		log.Debugf("Clearing known regions: %v", s.project.KnownRegions())
		s.project.ClearKnownRegions()
	}

	for _, code := range s.opts.Languages {
		s.project.AddKnownRegion(code)
		log.Printf("- %s", colorstring.Green(code))
	}

	if s.opts.DevelopmentRegion != "" {
		s.project.SetDevelopmentRegion(s.opts.DevelopmentRegion)
	}

	if s.infoPlist == nil {
		return
	}
	if s.opts.ClearKnownRegions {
		s.infoPlist.SetLocalizations(s.opts.Languages)
	} else {
		for _, code := range s.opts.Languages {
			s.infoPlist.AddLocalization(code)
		}
	}
	if s.opts.DevelopmentRegion != "" {
		s.infoPlist.SetDevelopmentRegion(s.opts.DevelopmentRegion)
	}
}

// plannedFiles pairs every configured language that has a .lproj directory in the locales dir
// with every localized file name. Every planned source file has to exist.
func (s *session) plannedFiles() ([]localizedFile, error) {
	if s.opts.LocalesDir == "" {
		return nil, nil
	}

	available, err := s.copier.Locales(s.opts.LocalesDir)
	if err != nil {
		return nil, err
	}

	var files []localizedFile
	var missing []string
	for _, code := range s.opts.Languages {
		if !sliceutil.IsStringInSlice(code, available) {
			log.Warnf("No %s in %s, skipping", lproj.DirName(code), s.opts.LocalesDir)
			continue
		}
		for _, fileName := range s.opts.LocalizedFiles {
			exist, err := s.copier.SourceExists(s.opts.LocalesDir, code, fileName)
			if err != nil {
				return nil, err
			}
			if !exist {
				missing = append(missing, lproj.RelativePath(code, fileName))
				continue
			}
			files = append(files, localizedFile{Code: code, FileName: fileName})
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("localized files missing from %s: %s", s.opts.LocalesDir, strings.Join(missing, ", "))
	}
	return files, nil
}

// addLocalizedFiles registers every file in the graph before touching the disk,
// so a graph failure leaves the project directory untouched. Files and .lproj
// directories created by a failed copy are removed again.
func (s *session) addLocalizedFiles(files []localizedFile) error {
	for _, file := range files {
		relPath := lproj.RelativePath(file.Code, file.FileName)
		if err := s.project.AddLocaleVariantFile(file.FileName, file.Code, relPath); err != nil {
			return fmt.Errorf("failed to add %s, error: %s", relPath, err)
		}
	}

	var created []string
	rollback := func() {
		for i := len(created) - 1; i >= 0; i-- {
			if err := os.RemoveAll(created[i]); err != nil {
				log.Warnf("Failed to remove %s: %s", created[i], err)
			}
		}
	}

	for _, file := range files {
		newPaths, err := s.newPaths(file)
		if err != nil {
			rollback()
			return err
		}

		pth, err := s.copier.Copy(s.opts.LocalesDir, s.opts.ProjectDir, file.Code, file.FileName)
		if err != nil {
			created = append(created, newPaths...)
			rollback()
			return err
		}
		created = append(created, newPaths...)
		log.Printf("- %s", pth)
	}
	return nil
}

// newPaths returns the destination .lproj directory or file that copying file would create.
func (s *session) newPaths(file localizedFile) ([]string, error) {
	dir := filepath.Join(s.opts.ProjectDir, lproj.DirName(file.Code))
	if exist, err := pathutil.IsPathExists(dir); err != nil {
		return nil, fmt.Errorf("failed to check if dir (%s) exists, error: %s", dir, err)
	} else if !exist {
		return []string{dir}, nil
	}

	pth := filepath.Join(dir, file.FileName)
	if exist, err := pathutil.IsPathExists(pth); err != nil {
		return nil, fmt.Errorf("failed to check if file (%s) exists, error: %s", pth, err)
	} else if !exist {
		return []string{pth}, nil
	}
	return nil, nil
}

// save stages every output next to its destination and renames them only once all are staged.
// The project file is replaced first; when a later rename fails the files already replaced
// get their original content back.
func (s *session) save() error {
	var staged []stagedFile

	cleanup := func(files []stagedFile) {
		for _, f := range files {
			if err := os.Remove(f.tmpPath); err != nil && !os.IsNotExist(err) {
				log.Warnf("Failed to remove %s: %s", f.tmpPath, err)
			}
		}
	}

	data, err := s.project.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize project, error: %s", err)
	}
	f, err := stageFile(s.opts.ProjectFile, data)
	if err != nil {
		return err
	}
	staged = append(staged, f)

	if s.infoPlist != nil {
		data, err := s.infoPlist.Bytes()
		if err != nil {
			cleanup(staged)
			return fmt.Errorf("failed to encode Info.plist, error: %s", err)
		}
		f, err := stageFile(s.opts.InfoPlistPath, data)
		if err != nil {
			cleanup(staged)
			return err
		}
		staged = append(staged, f)
	}

	rename := s.rename
	if rename == nil {
		rename = os.Rename
	}

	for i, f := range staged {
		if err := rename(f.tmpPath, f.path); err != nil {
			cleanup(staged[i:])
			restore(staged[:i])
			return fmt.Errorf("failed to replace %s, error: %s", f.path, err)
		}
	}
	for _, f := range staged {
		log.Donef("Updated %s", f.path)
	}
	return nil
}

func restore(files []stagedFile) {
	for _, f := range files {
		if err := fileutil.WriteBytesToFile(f.path, f.original); err != nil {
			log.Errorf("Failed to restore %s: %s", f.path, err)
		}
	}
}

type stagedFile struct {
	path     string
	tmpPath  string
	original []byte
}

func stageFile(pth string, data []byte) (stagedFile, error) {
	info, err := os.Stat(pth)
	if err != nil {
		return stagedFile{}, fmt.Errorf("failed to stat %s, error: %s", pth, err)
	}
	original, err := fileutil.ReadBytesFromFile(pth)
	if err != nil {
		return stagedFile{}, fmt.Errorf("failed to read %s, error: %s", pth, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(pth), "."+filepath.Base(pth)+".*")
	if err != nil {
		return stagedFile{}, fmt.Errorf("failed to create temp file for %s, error: %s", pth, err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		return stagedFile{}, fmt.Errorf("failed to close %s, error: %s", tmpPath, err)
	}

	if err := fileutil.WriteBytesToFile(tmpPath, data); err != nil {
		_ = os.Remove(tmpPath)
		return stagedFile{}, fmt.Errorf("failed to write %s, error: %s", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		_ = os.Remove(tmpPath)
		return stagedFile{}, fmt.Errorf("failed to set permissions of %s, error: %s", tmpPath, err)
	}
	return stagedFile{path: pth, tmpPath: tmpPath, original: original}, nil
}
