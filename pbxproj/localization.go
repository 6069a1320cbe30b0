package pbxproj

import "strings"

// AddLocaleVariantFile registers path as the code variant of the localized
// resource groupName, for example ("InfoPlist.strings", "en", "en.lproj/InfoPlist.strings").
//
// The variant group is created on first use, listed in the container group
// and built into the main target's resources phase exactly once. Calling it
// again with the same arguments changes nothing.
//
// Every lookup is resolved before the graph is touched: on error the project
// is left as it was.
func (p *Project) AddLocaleVariantFile(groupName, code, path string) error {
	path = strings.ReplaceAll(path, `\`, "/")

	target, err := p.MainTarget()
	if err != nil {
		return err
	}

	variantGroup, hasVariantGroup := p.VariantGroupByName(groupName)
	needsBuildFile := true
	if hasVariantGroup {
		_, found := p.BuildFileForSource(target.GUID, variantGroup.GUID)
		needsBuildFile = !found
	}

	var container *Group
	var resources *BuildPhase
	if needsBuildFile {
		name := p.containerGroupName()
		group, ok := p.GroupByName(name)
		if !ok {
			return &NotFoundError{Kind: GroupIsa, Key: name}
		}
		container = group

		phase, err := p.ResourcesBuildPhase(target.GUID)
		if err != nil {
			return err
		}
		resources = phase
	}

	fileRef, hasFileRef := p.FileReferenceByPath(path)

	count := 0
	for _, missing := range []bool{!hasVariantGroup, needsBuildFile, !hasFileRef} {
		if missing {
			count++
		}
	}
	guids, err := p.reserveGUIDs(count)
	if err != nil {
		return err
	}
	next := func() string {
		guid := guids[0]
		guids = guids[1:]
		return guid
	}

	if !hasVariantGroup {
		variantGroup = &VariantGroup{Group: Group{
			GUID:       next(),
			Name:       groupName,
			Path:       groupName,
			SourceTree: SourceTreeGroup,
		}}
		p.add(variantGroup)
	}

	if needsBuildFile {
		if !container.HasChild(variantGroup.GUID) {
			container.Children = append(container.Children, variantGroup.GUID)
		}
		buildFile := &BuildFile{GUID: next(), FileRef: variantGroup.GUID}
		p.add(buildFile)
		p.AddFileToResourcesBuildPhase(resources.GUID, buildFile.GUID)
	}

	if !hasFileRef {
		fileRef = &FileReference{
			GUID:              next(),
			Name:              code,
			Path:              path,
			SourceTree:        SourceTreeSourceRoot,
			LastKnownFileType: LastKnownFileType(path),
		}
		p.add(fileRef)
	}

	if !variantGroup.HasChild(fileRef.GUID) {
		variantGroup.Children = append(variantGroup.Children, fileRef.GUID)
	}
	return nil
}
