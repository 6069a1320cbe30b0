package pbxproj

import "github.com/bitrise-io/go-utils/sliceutil"

// RegionPolicy decides whether AddKnownRegion may list a code twice.
type RegionPolicy int

const (
	// KeepDuplicateRegions appends every code, even if it is already listed.
	KeepDuplicateRegions RegionPolicy = iota
	// SkipDuplicateRegions appends a code only if it is not listed yet.
	SkipDuplicateRegions
)

// KnownRegions returns a copy of the project's known regions in insertion order.
// An empty knownRegions list is attached to the project object if it has none.
func (p *Project) KnownRegions() []string {
	root := p.knownRegionsOwner()
	return append([]string{}, root.KnownRegions...)
}

// ClearKnownRegions removes every known region.
func (p *Project) ClearKnownRegions() {
	root := p.knownRegionsOwner()
	root.KnownRegions = root.KnownRegions[:0]
}

// AddKnownRegion appends code to the known regions. Region order is kept,
// Xcode resolves the default locale from it.
func (p *Project) AddKnownRegion(code string) {
	root := p.knownRegionsOwner()
	if p.RegionPolicy == SkipDuplicateRegions && sliceutil.IsStringInSlice(code, root.KnownRegions) {
		return
	}
	root.KnownRegions = append(root.KnownRegions, code)
}

// DevelopmentRegion returns the developmentRegion of the project object.
func (p *Project) DevelopmentRegion() string {
	return p.root().DevelopmentRegion
}

// SetDevelopmentRegion ...
func (p *Project) SetDevelopmentRegion(code string) {
	p.root().DevelopmentRegion = code
}

func (p *Project) knownRegionsOwner() *projectObject {
	root := p.root()
	root.hasKnownRegions = true
	return root
}
