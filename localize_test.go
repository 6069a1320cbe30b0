package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-steplib/steps-xcode-localization/infoplist"
	"github.com/bitrise-steplib/steps-xcode-localization/pbxproj"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	projectFile string
	projectDir  string
	infoPlist   string
	localesDir  string
}

func createWorkspace(t *testing.T) workspace {
	t.Helper()

	tmpDir := t.TempDir()
	projectFile := createProject(t, filepath.Join(tmpDir, "build"))
	projectDir := projectRootDir(projectFile)

	infoPlist := filepath.Join(projectDir, "Info.plist")
	require.NoError(t, os.WriteFile(infoPlist, []byte(infoPlistContent), 0644))

	localesDir := filepath.Join(tmpDir, "locales")
	for code, content := range map[string]string{
		"de": `"CFBundleDisplayName" = "Spiel";`,
		"fr": `"CFBundleDisplayName" = "Jeu";`,
	} {
		dir := filepath.Join(localesDir, code+".lproj")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "InfoPlist.strings"), []byte(content), 0644))
	}

	return workspace{
		projectFile: projectFile,
		projectDir:  projectDir,
		infoPlist:   infoPlist,
		localesDir:  localesDir,
	}
}

func openProject(t *testing.T, pth string) *pbxproj.Project {
	t.Helper()

	data, err := os.ReadFile(pth)
	require.NoError(t, err)
	project, err := pbxproj.Parse(data)
	require.NoError(t, err)
	return project
}

func TestRun(t *testing.T) {
	ws := createWorkspace(t)

	opts, err := newOptions(config{
		ProjectPath:       filepath.Dir(ws.projectFile),
		Languages:         "de\nfr\nja",
		LocalesDir:        ws.localesDir,
		DevelopmentRegion: "de",
	})
	require.NoError(t, err)
	require.Equal(t, ws.infoPlist, opts.InfoPlistPath)

	require.NoError(t, run(opts))

	t.Log("localized files are copied into the project")
	{
		content, err := os.ReadFile(filepath.Join(ws.projectDir, "de.lproj", "InfoPlist.strings"))
		require.NoError(t, err)
		require.Equal(t, `"CFBundleDisplayName" = "Spiel";`, string(content))

		_, err = os.Stat(filepath.Join(ws.projectDir, "fr.lproj", "InfoPlist.strings"))
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(ws.projectDir, "ja.lproj"))
		require.True(t, os.IsNotExist(err))
	}

	t.Log("the project lists the regions and the variant group")
	{
		project := openProject(t, ws.projectFile)
		require.Equal(t, []string{"de", "fr", "ja"}, project.KnownRegions())
		require.Equal(t, "de", project.DevelopmentRegion())

		group, ok := project.VariantGroupByName("InfoPlist.strings")
		require.True(t, ok)
		require.Len(t, group.Children, 2)

		for _, pth := range []string{"de.lproj/InfoPlist.strings", "fr.lproj/InfoPlist.strings"} {
			ref, ok := project.FileReferenceByPath(pth)
			require.True(t, ok, pth)
			require.True(t, group.HasChild(ref.GUID), pth)
		}

		target, err := project.MainTarget()
		require.NoError(t, err)
		buildFile, ok := project.BuildFileForSource(target.GUID, group.GUID)
		require.True(t, ok)

		phase, err := project.ResourcesBuildPhase(target.GUID)
		require.NoError(t, err)
		require.Contains(t, phase.Files, buildFile.GUID)

		container, ok := project.GroupByName(pbxproj.DefaultContainerGroupName)
		require.True(t, ok)
		require.True(t, container.HasChild(group.GUID))
	}

	t.Log("Info.plist lists the languages")
	{
		doc, err := infoplist.Open(ws.infoPlist)
		require.NoError(t, err)
		require.Equal(t, []string{"de", "fr", "ja"}, doc.Localizations())
		require.Equal(t, "de", doc.DevelopmentRegion())
	}

	t.Log("no temporary files are left behind")
	{
		entries, err := os.ReadDir(filepath.Dir(ws.projectFile))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, pbxprojFileName, entries[0].Name())
	}
}

func TestRun_KeepsExistingRegions(t *testing.T) {
	ws := createWorkspace(t)

	opts, err := newOptions(config{
		ProjectPath:        ws.projectFile,
		Languages:          "en,de",
		ClearKnownRegions:  "no",
		DedupeKnownRegions: "yes",
	})
	require.NoError(t, err)
	require.NoError(t, run(opts))

	project := openProject(t, ws.projectFile)
	require.Equal(t, []string{"en", "Base", "de"}, project.KnownRegions())
	_, ok := project.VariantGroupByName("InfoPlist.strings")
	require.False(t, ok)

	doc, err := infoplist.Open(ws.infoPlist)
	require.NoError(t, err)
	require.Equal(t, []string{"en", "de"}, doc.Localizations())
}

func TestRun_FailureLeavesProjectUntouched(t *testing.T) {
	ws := createWorkspace(t)

	originalProject, err := os.ReadFile(ws.projectFile)
	require.NoError(t, err)
	originalInfoPlist, err := os.ReadFile(ws.infoPlist)
	require.NoError(t, err)

	opts, err := newOptions(config{
		ProjectPath:    ws.projectFile,
		Languages:      "de",
		LocalesDir:     ws.localesDir,
		ContainerGroup: "Missing",
	})
	require.NoError(t, err)
	require.Error(t, run(opts))

	project, err := os.ReadFile(ws.projectFile)
	require.NoError(t, err)
	require.Equal(t, string(originalProject), string(project))

	infoPlist, err := os.ReadFile(ws.infoPlist)
	require.NoError(t, err)
	require.Equal(t, string(originalInfoPlist), string(infoPlist))

	_, err = os.Stat(filepath.Join(ws.projectDir, "de.lproj"))
	require.True(t, os.IsNotExist(err))
}

func TestRun_MissingLocalizedFile(t *testing.T) {
	ws := createWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(ws.localesDir, "de.lproj", "Localizable.strings"), []byte(`"play" = "Spielen";`), 0644))

	originalProject, err := os.ReadFile(ws.projectFile)
	require.NoError(t, err)

	opts, err := newOptions(config{
		ProjectPath:    ws.projectFile,
		Languages:      "de,fr",
		LocalesDir:     ws.localesDir,
		LocalizedFiles: "InfoPlist.strings\nLocalizable.strings",
	})
	require.NoError(t, err)

	err = run(opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "fr.lproj/Localizable.strings")

	project, err := os.ReadFile(ws.projectFile)
	require.NoError(t, err)
	require.Equal(t, string(originalProject), string(project))

	for _, code := range []string{"de", "fr"} {
		_, err := os.Stat(filepath.Join(ws.projectDir, code+".lproj"))
		require.True(t, os.IsNotExist(err), code)
	}
}

func TestSave_RestoresReplacedFiles(t *testing.T) {
	ws := createWorkspace(t)

	originalProject, err := os.ReadFile(ws.projectFile)
	require.NoError(t, err)
	originalInfoPlist, err := os.ReadFile(ws.infoPlist)
	require.NoError(t, err)

	opts, err := newOptions(config{ProjectPath: ws.projectFile, Languages: "de"})
	require.NoError(t, err)

	s, err := openSession(opts)
	require.NoError(t, err)

	var renamed []string
	s.rename = func(oldpath, newpath string) error {
		if newpath == ws.infoPlist {
			return errors.New("no space left on device")
		}
		renamed = append(renamed, newpath)
		return os.Rename(oldpath, newpath)
	}

	require.Error(t, s.run())
	require.Equal(t, []string{ws.projectFile}, renamed)

	project, err := os.ReadFile(ws.projectFile)
	require.NoError(t, err)
	require.Equal(t, string(originalProject), string(project))

	infoPlist, err := os.ReadFile(ws.infoPlist)
	require.NoError(t, err)
	require.Equal(t, string(originalInfoPlist), string(infoPlist))

	t.Log("staged copies are removed")
	{
		entries, err := os.ReadDir(filepath.Dir(ws.projectFile))
		require.NoError(t, err)
		require.Len(t, entries, 1)

		entries, err = os.ReadDir(ws.projectDir)
		require.NoError(t, err)
		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		require.ElementsMatch(t, []string{"Info.plist", "Unity-iPhone.xcodeproj"}, names)
	}
}
