package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/pathutil"
	"github.com/bitrise-io/go-utils/sliceutil"
	"github.com/bitrise-steplib/steps-xcode-localization/pbxproj"
)

const defaultLocalizedFile = "InfoPlist.strings"

type options struct {
	ProjectFile       string
	ProjectDir        string
	InfoPlistPath     string
	Languages         []string
	LocalesDir        string
	LocalizedFiles    []string
	TargetName        string
	ContainerGroup    string
	ClearKnownRegions bool
	RegionPolicy      pbxproj.RegionPolicy
	DevelopmentRegion string
}

func newOptions(cfg config) (options, error) {
	projectFile, err := projectFilePath(cfg.ProjectPath)
	if err != nil {
		return options{}, err
	}
	projectDir := projectRootDir(projectFile)

	languages := parseList(cfg.Languages)
	if len(languages) == 0 {
		return options{}, fmt.Errorf("no languages specified")
	}

	files := parseList(cfg.LocalizedFiles)
	if len(files) == 0 {
		files = []string{defaultLocalizedFile}
	}

	infoPlistPath, err := infoPlistPath(cfg.InfoPlistPath, projectDir)
	if err != nil {
		return options{}, err
	}

	var localesDir string
	if strings.TrimSpace(cfg.LocalesDir) != "" {
		localesDir, err = pathutil.AbsPath(cfg.LocalesDir)
		if err != nil {
			return options{}, fmt.Errorf("failed to expand path (%s), error: %s", cfg.LocalesDir, err)
		}
		if exist, err := pathutil.IsDirExists(localesDir); err != nil {
			return options{}, fmt.Errorf("failed to check if dir (%s) exists, error: %s", localesDir, err)
		} else if !exist {
			return options{}, fmt.Errorf("locales dir does not exist: %s", localesDir)
		}
	}

	containerGroup := cfg.ContainerGroup
	if containerGroup == "" {
		containerGroup = pbxproj.DefaultContainerGroupName
	}

	policy := pbxproj.KeepDuplicateRegions
	if cfg.DedupeKnownRegions == "yes" {
		policy = pbxproj.SkipDuplicateRegions
	}

	return options{
		ProjectFile:       projectFile,
		ProjectDir:        projectDir,
		InfoPlistPath:     infoPlistPath,
		Languages:         languages,
		LocalesDir:        localesDir,
		LocalizedFiles:    files,
		TargetName:        cfg.TargetName,
		ContainerGroup:    containerGroup,
		ClearKnownRegions: cfg.ClearKnownRegions != "no",
		RegionPolicy:      policy,
		DevelopmentRegion: strings.TrimSpace(cfg.DevelopmentRegion),
	}, nil
}

// parseList splits a newline, comma or pipe separated input and drops empty and repeated items.
func parseList(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == ',' || r == '|'
	})

	var items []string
	for _, field := range fields {
		item := strings.TrimSpace(field)
		if item == "" || sliceutil.IsStringInSlice(item, items) {
			continue
		}
		items = append(items, item)
	}
	return items
}

// infoPlistPath falls back to <project dir>/Info.plist, the layout Unity exports.
// An empty result means the Info.plist is not updated.
func infoPlistPath(input, projectDir string) (string, error) {
	if strings.TrimSpace(input) != "" {
		pth, err := pathutil.AbsPath(input)
		if err != nil {
			return "", fmt.Errorf("failed to expand path (%s), error: %s", input, err)
		}
		if exist, err := pathutil.IsPathExists(pth); err != nil {
			return "", fmt.Errorf("failed to check if file (%s) exists, error: %s", pth, err)
		} else if !exist {
			return "", fmt.Errorf("Info.plist does not exist: %s", pth)
		}
		return pth, nil
	}

	pth := filepath.Join(projectDir, "Info.plist")
	if exist, err := pathutil.IsPathExists(pth); err != nil {
		return "", fmt.Errorf("failed to check if file (%s) exists, error: %s", pth, err)
	} else if !exist {
		return "", nil
	}
	return pth, nil
}
