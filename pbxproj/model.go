package pbxproj

import (
	"strings"

	"github.com/bitrise-io/go-utils/sliceutil"
	"github.com/bitrise-io/go-xcode/xcodeproject/serialized"
)

// Object kinds the editor understands.
const (
	FileReferenceIsa       = "PBXFileReference"
	GroupIsa               = "PBXGroup"
	VariantGroupIsa        = "PBXVariantGroup"
	BuildFileIsa           = "PBXBuildFile"
	ResourcesBuildPhaseIsa = "PBXResourcesBuildPhase"
	NativeTargetIsa        = "PBXNativeTarget"
	ProjectIsa             = "PBXProject"
)

// Source trees
const (
	SourceTreeGroup      = "<group>"
	SourceTreeSourceRoot = "SOURCE_ROOT"
)

type object interface {
	guid() string
	encode() serialized.Object
}

// FileReference represents a single file on disk.
type FileReference struct {
	GUID              string
	Name              string
	Path              string
	SourceTree        string
	LastKnownFileType string

	attrs serialized.Object
}

func (f *FileReference) guid() string { return f.GUID }

func (f *FileReference) encode() serialized.Object {
	obj := cloneAttrs(f.attrs)
	obj["isa"] = FileReferenceIsa
	setString(obj, "name", f.Name)
	setString(obj, "path", f.Path)
	setString(obj, "sourceTree", f.SourceTree)
	setString(obj, "lastKnownFileType", f.LastKnownFileType)
	return obj
}

// Group is a folder-like container of file references and other groups.
type Group struct {
	GUID       string
	Name       string
	Path       string
	SourceTree string
	Children   []string

	attrs serialized.Object
}

func (g *Group) guid() string { return g.GUID }

func (g *Group) encode() serialized.Object {
	return g.encodeAs(GroupIsa)
}

func (g *Group) encodeAs(isa string) serialized.Object {
	obj := cloneAttrs(g.attrs)
	obj["isa"] = isa
	setString(obj, "name", g.Name)
	setString(obj, "path", g.Path)
	setString(obj, "sourceTree", g.SourceTree)
	obj["children"] = stringList(g.Children)
	return obj
}

// HasChild ...
func (g *Group) HasChild(guid string) bool {
	return sliceutil.IsStringInSlice(guid, g.Children)
}

// VariantGroup holds the per-locale variants of one logical resource.
type VariantGroup struct {
	Group
}

func (v *VariantGroup) encode() serialized.Object {
	return v.encodeAs(VariantGroupIsa)
}

// BuildFile links a file reference or group to a build phase.
type BuildFile struct {
	GUID    string
	FileRef string

	attrs serialized.Object
}

func (b *BuildFile) guid() string { return b.GUID }

func (b *BuildFile) encode() serialized.Object {
	obj := cloneAttrs(b.attrs)
	obj["isa"] = BuildFileIsa
	setString(obj, "fileRef", b.FileRef)
	return obj
}

// BuildPhase is any of the PBX*BuildPhase objects; only the file list is modelled.
type BuildPhase struct {
	GUID  string
	Isa   string
	Files []string

	attrs serialized.Object
}

func (b *BuildPhase) guid() string { return b.GUID }

func (b *BuildPhase) encode() serialized.Object {
	obj := cloneAttrs(b.attrs)
	obj["isa"] = b.Isa
	obj["files"] = stringList(b.Files)
	return obj
}

// IsResources reports whether the phase copies its files into the product bundle.
func (b *BuildPhase) IsResources() bool {
	return b.Isa == ResourcesBuildPhaseIsa
}

// Target ...
type Target struct {
	GUID        string
	Isa         string
	Name        string
	BuildPhases []string

	attrs serialized.Object
}

func (t *Target) guid() string { return t.GUID }

func (t *Target) encode() serialized.Object {
	obj := cloneAttrs(t.attrs)
	obj["isa"] = t.Isa
	setString(obj, "name", t.Name)
	obj["buildPhases"] = stringList(t.BuildPhases)
	return obj
}

// projectObject is the PBXProject root object.
type projectObject struct {
	GUID              string
	Targets           []string
	DevelopmentRegion string
	KnownRegions      []string
	hasKnownRegions   bool

	attrs serialized.Object
}

func (p *projectObject) guid() string { return p.GUID }

func (p *projectObject) encode() serialized.Object {
	obj := cloneAttrs(p.attrs)
	obj["isa"] = ProjectIsa
	obj["targets"] = stringList(p.Targets)
	setString(obj, "developmentRegion", p.DevelopmentRegion)
	if p.hasKnownRegions {
		obj["knownRegions"] = stringList(p.KnownRegions)
	}
	return obj
}

// rawObject carries every object kind the editor does not model.
type rawObject struct {
	GUID  string
	attrs serialized.Object
}

func (r *rawObject) guid() string { return r.GUID }

func (r *rawObject) encode() serialized.Object {
	return cloneAttrs(r.attrs)
}

func decodeObject(guid string, obj serialized.Object) (object, error) {
	isa, err := obj.String("isa")
	if err != nil {
		return nil, malformedf(err, "object %s has no isa", guid)
	}

	switch {
	case isa == FileReferenceIsa:
		return decodeFileReference(guid, obj)
	case isa == GroupIsa:
		return decodeGroup(guid, obj)
	case isa == VariantGroupIsa:
		group, err := decodeGroup(guid, obj)
		if err != nil {
			return nil, err
		}
		return &VariantGroup{Group: *group}, nil
	case isa == BuildFileIsa:
		fileRef, err := optionalString(obj, "fileRef")
		if err != nil {
			return nil, malformedf(err, "invalid %s %s", isa, guid)
		}
		return &BuildFile{GUID: guid, FileRef: fileRef, attrs: obj}, nil
	case strings.HasSuffix(isa, "BuildPhase"):
		files, err := optionalStringSlice(obj, "files")
		if err != nil {
			return nil, malformedf(err, "invalid %s %s", isa, guid)
		}
		return &BuildPhase{GUID: guid, Isa: isa, Files: files, attrs: obj}, nil
	case strings.HasSuffix(isa, "Target") && strings.HasPrefix(isa, "PBX"):
		return decodeTarget(guid, isa, obj)
	case isa == ProjectIsa:
		return decodeProjectObject(guid, obj)
	default:
		return &rawObject{GUID: guid, attrs: obj}, nil
	}
}

func decodeFileReference(guid string, obj serialized.Object) (*FileReference, error) {
	ref := &FileReference{GUID: guid, attrs: obj}
	for key, value := range map[string]*string{
		"name":              &ref.Name,
		"path":              &ref.Path,
		"sourceTree":        &ref.SourceTree,
		"lastKnownFileType": &ref.LastKnownFileType,
	} {
		s, err := optionalString(obj, key)
		if err != nil {
			return nil, malformedf(err, "invalid %s %s", FileReferenceIsa, guid)
		}
		*value = s
	}
	return ref, nil
}

func decodeGroup(guid string, obj serialized.Object) (*Group, error) {
	group := &Group{GUID: guid, attrs: obj}
	for key, value := range map[string]*string{
		"name":       &group.Name,
		"path":       &group.Path,
		"sourceTree": &group.SourceTree,
	} {
		s, err := optionalString(obj, key)
		if err != nil {
			return nil, malformedf(err, "invalid group %s", guid)
		}
		*value = s
	}

	children, err := optionalStringSlice(obj, "children")
	if err != nil {
		return nil, malformedf(err, "invalid group %s", guid)
	}
	group.Children = children
	return group, nil
}

func decodeTarget(guid, isa string, obj serialized.Object) (*Target, error) {
	name, err := optionalString(obj, "name")
	if err != nil {
		return nil, malformedf(err, "invalid %s %s", isa, guid)
	}
	phases, err := optionalStringSlice(obj, "buildPhases")
	if err != nil {
		return nil, malformedf(err, "invalid %s %s", isa, guid)
	}
	return &Target{GUID: guid, Isa: isa, Name: name, BuildPhases: phases, attrs: obj}, nil
}

func decodeProjectObject(guid string, obj serialized.Object) (*projectObject, error) {
	targets, err := optionalStringSlice(obj, "targets")
	if err != nil {
		return nil, malformedf(err, "invalid %s %s", ProjectIsa, guid)
	}
	developmentRegion, err := optionalString(obj, "developmentRegion")
	if err != nil {
		return nil, malformedf(err, "invalid %s %s", ProjectIsa, guid)
	}

	project := &projectObject{GUID: guid, Targets: targets, DevelopmentRegion: developmentRegion, attrs: obj}
	if _, err := obj.Value("knownRegions"); err == nil {
		regions, err := obj.StringSlice("knownRegions")
		if err != nil {
			return nil, malformedf(err, "invalid knownRegions of %s", guid)
		}
		project.KnownRegions = regions
		project.hasKnownRegions = true
	}
	return project, nil
}

func optionalString(obj serialized.Object, key string) (string, error) {
	value, err := obj.String(key)
	if err != nil {
		if serialized.IsKeyNotFoundError(err) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func optionalStringSlice(obj serialized.Object, key string) ([]string, error) {
	value, err := obj.StringSlice(key)
	if err != nil {
		if serialized.IsKeyNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

func cloneAttrs(attrs serialized.Object) serialized.Object {
	obj := serialized.Object{}
	for key, value := range attrs {
		obj[key] = value
	}
	return obj
}

// setString leaves absent keys absent unless there is a value to write.
func setString(obj serialized.Object, key, value string) {
	if value == "" {
		if _, ok := obj[key]; !ok {
			return
		}
	}
	obj[key] = value
}

func stringList(values []string) []interface{} {
	list := make([]interface{}, 0, len(values))
	for _, value := range values {
		list = append(list, value)
	}
	return list
}
