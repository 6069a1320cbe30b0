package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const infoPlistContent = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleDevelopmentRegion</key>
	<string>en</string>
	<key>CFBundleLocalizations</key>
	<array>
		<string>en</string>
	</array>
	<key>CFBundleName</key>
	<string>ProductName</string>
</dict>
</plist>
`

// createProject lays out <dir>/Unity-iPhone.xcodeproj/project.pbxproj from the pbxproj fixture.
func createProject(t *testing.T, dir string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("pbxproj", "testdata", "project.pbxproj"))
	require.NoError(t, err)

	projectDir := filepath.Join(dir, "Unity-iPhone.xcodeproj")
	require.NoError(t, os.MkdirAll(projectDir, 0755))

	pth := filepath.Join(projectDir, pbxprojFileName)
	require.NoError(t, os.WriteFile(pth, data, 0644))
	return pth
}

func TestProjectFilePath(t *testing.T) {
	tmpDir := t.TempDir()
	projectFile := createProject(t, tmpDir)

	otherFile := filepath.Join(tmpDir, pbxprojFileName)
	require.NoError(t, os.WriteFile(otherFile, []byte("{}"), 0644))

	emptyProject := filepath.Join(tmpDir, "Empty.xcodeproj")
	require.NoError(t, os.MkdirAll(emptyProject, 0755))

	workspace := filepath.Join(tmpDir, "Unity-iPhone.xcworkspace")
	require.NoError(t, os.MkdirAll(workspace, 0755))
	workspaceFile := filepath.Join(workspace, pbxprojFileName)
	require.NoError(t, os.WriteFile(workspaceFile, []byte("{}"), 0644))

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "project bundle", input: filepath.Dir(projectFile), want: projectFile},
		{name: "project bundle with trailing separator", input: filepath.Dir(projectFile) + string(filepath.Separator), want: projectFile},
		{name: "project file", input: projectFile, want: projectFile},
		{name: "pbxproj outside a project bundle", input: otherFile, wantErr: true},
		{name: "project bundle without project file", input: emptyProject, wantErr: true},
		{name: "plain directory", input: tmpDir, wantErr: true},
		{name: "workspace", input: workspace, wantErr: true},
		{name: "pbxproj inside a workspace", input: workspaceFile, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := projectFilePath(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestProjectRootDir(t *testing.T) {
	require.Equal(t, filepath.Join("ios", "build"), projectRootDir(filepath.Join("ios", "build", "Unity-iPhone.xcodeproj", pbxprojFileName)))
}
