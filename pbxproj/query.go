package pbxproj

// Lookups scan the graph in enumeration order; pbxproj indexes objects by GUID only.

// FileReferenceByPath returns the first file reference whose path equals path.
func (p *Project) FileReferenceByPath(path string) (*FileReference, bool) {
	for _, guid := range p.order {
		if ref, ok := p.objects[guid].(*FileReference); ok && ref.Path == path {
			return ref, true
		}
	}
	return nil, false
}

// GroupByName returns the first PBXGroup named name. Variant groups are not considered.
func (p *Project) GroupByName(name string) (*Group, bool) {
	for _, guid := range p.order {
		if group, ok := p.objects[guid].(*Group); ok && group.Name == name {
			return group, true
		}
	}
	return nil, false
}

// VariantGroupByName returns the first variant group named name.
func (p *Project) VariantGroupByName(name string) (*VariantGroup, bool) {
	for _, guid := range p.order {
		if group, ok := p.objects[guid].(*VariantGroup); ok && group.Name == name {
			return group, true
		}
	}
	return nil, false
}

// VariantGroups returns every variant group in enumeration order.
func (p *Project) VariantGroups() []*VariantGroup {
	var groups []*VariantGroup
	for _, guid := range p.order {
		if group, ok := p.objects[guid].(*VariantGroup); ok {
			groups = append(groups, group)
		}
	}
	return groups
}

// FileReferences returns every file reference in enumeration order.
func (p *Project) FileReferences() []*FileReference {
	var refs []*FileReference
	for _, guid := range p.order {
		if ref, ok := p.objects[guid].(*FileReference); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// BuildFiles returns every build file in enumeration order, whichever phase lists it.
func (p *Project) BuildFiles() []*BuildFile {
	var files []*BuildFile
	for _, guid := range p.order {
		if file, ok := p.objects[guid].(*BuildFile); ok {
			files = append(files, file)
		}
	}
	return files
}

// Targets returns the targets listed by the project object, in project order.
func (p *Project) Targets() []*Target {
	var targets []*Target
	for _, guid := range p.root().Targets {
		if target, ok := p.objects[guid].(*Target); ok {
			targets = append(targets, target)
		}
	}
	return targets
}

// TargetByName returns the first target of the project named name.
func (p *Project) TargetByName(name string) (*Target, bool) {
	for _, target := range p.Targets() {
		if target.Name == name {
			return target, true
		}
	}
	return nil, false
}

// MainTarget resolves MainTargetName, or the first target when it is empty.
func (p *Project) MainTarget() (*Target, error) {
	if p.MainTargetName == "" {
		targets := p.Targets()
		if len(targets) == 0 {
			return nil, &NotFoundError{Kind: NativeTargetIsa, Key: "<first target>"}
		}
		return targets[0], nil
	}

	target, ok := p.TargetByName(p.MainTargetName)
	if !ok {
		return nil, &NotFoundError{Kind: NativeTargetIsa, Key: p.MainTargetName}
	}
	return target, nil
}

// BuildPhase returns the build phase with the given GUID.
func (p *Project) BuildPhase(guid string) (*BuildPhase, bool) {
	phase, ok := p.objects[guid].(*BuildPhase)
	return phase, ok
}

// ResourcesBuildPhase returns the resources phase of the target.
func (p *Project) ResourcesBuildPhase(targetGUID string) (*BuildPhase, error) {
	target, ok := p.objects[targetGUID].(*Target)
	if !ok {
		return nil, &NotFoundError{Kind: NativeTargetIsa, Key: targetGUID}
	}

	for _, guid := range target.BuildPhases {
		if phase, ok := p.BuildPhase(guid); ok && phase.IsResources() {
			return phase, nil
		}
	}
	return nil, &NotFoundError{Kind: ResourcesBuildPhaseIsa, Key: target.Name}
}

// BuildFileForSource returns the build file of the target's build phases that refers to fileRefGUID.
func (p *Project) BuildFileForSource(targetGUID, fileRefGUID string) (*BuildFile, bool) {
	target, ok := p.objects[targetGUID].(*Target)
	if !ok {
		return nil, false
	}

	for _, phaseGUID := range target.BuildPhases {
		phase, ok := p.BuildPhase(phaseGUID)
		if !ok {
			continue
		}
		for _, fileGUID := range phase.Files {
			if file, ok := p.objects[fileGUID].(*BuildFile); ok && file.FileRef == fileRefGUID {
				return file, true
			}
		}
	}
	return nil, false
}

// Contains reports whether an object with the given GUID exists.
func (p *Project) Contains(guid string) bool {
	_, ok := p.objects[guid]
	return ok
}
