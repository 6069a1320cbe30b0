package main

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/pathutil"
	"github.com/bitrise-io/go-xcode/xcodeproject/xcodeproj"
)

const pbxprojFileName = "project.pbxproj"

// projectFilePath accepts either the .xcodeproj bundle or the project.pbxproj inside it.
func projectFilePath(projectPath string) (string, error) {
	pth, err := pathutil.AbsPath(projectPath)
	if err != nil {
		return "", fmt.Errorf("failed to expand path (%s), error: %s", projectPath, err)
	}

	if xcodeproj.IsXcodeProj(pth) {
		pth = filepath.Join(pth, pbxprojFileName)
	} else if filepath.Base(pth) != pbxprojFileName || !xcodeproj.IsXcodeProj(filepath.Dir(pth)) {
		return "", fmt.Errorf("not an Xcode project (%s): expected a %s bundle or its %s", projectPath, xcodeproj.XcodeProjExtension, pbxprojFileName)
	}

	if exist, err := pathutil.IsPathExists(pth); err != nil {
		return "", fmt.Errorf("failed to check if file (%s) exists, error: %s", pth, err)
	} else if !exist {
		return "", fmt.Errorf("project file does not exist: %s", pth)
	}
	return pth, nil
}

// projectRootDir is the directory holding the .xcodeproj bundle; .lproj directories are created there.
func projectRootDir(pbxprojPth string) string {
	return filepath.Dir(filepath.Dir(pbxprojPth))
}
