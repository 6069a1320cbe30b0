package pbxproj

// AddFileToResourcesBuildPhase appends fileGUID to the resources build phase
// identified by buildPhaseGUID. A missing phase is not an error: the call
// is a no-op and reports false. The file is appended even when the phase
// already lists it; callers that need a single entry check BuildFileForSource first.
func (p *Project) AddFileToResourcesBuildPhase(buildPhaseGUID, fileGUID string) bool {
	added := false
	for _, guid := range p.order {
		phase, ok := p.objects[guid].(*BuildPhase)
		if !ok || !phase.IsResources() || phase.GUID != buildPhaseGUID {
			continue
		}
		phase.Files = append(phase.Files, fileGUID)
		added = true
	}
	return added
}
