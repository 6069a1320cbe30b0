// Package pbxproj edits the object graph of an Xcode project.pbxproj file.
//
// Only the objects needed to register localized resources are modelled:
// file references, groups, variant groups, build files, build phases,
// targets and the project's known regions. Every other object, and every
// attribute of the modelled objects the editor does not touch, is written
// back unchanged.
package pbxproj

import (
	"sort"

	"github.com/bitrise-io/go-xcode/xcodeproject/serialized"
	"howett.net/plist"
)

const (
	// DefaultContainerGroupName is the main group of Unity generated projects.
	DefaultContainerGroupName = "CustomTemplate"

	utf8Header = "// !$*UTF8*$!\n"
)

// Project is an in-memory project graph. It is not safe for concurrent use.
type Project struct {
	// MainTargetName selects the target localized resources are built into;
	// the first target of the project is used when empty.
	MainTargetName string
	// ContainerGroupName names the group new variant groups are listed in.
	ContainerGroupName string
	// RegionPolicy decides how AddKnownRegion treats an already listed code.
	RegionPolicy RegionPolicy

	header     serialized.Object
	rootObject string
	objects    map[string]object
	order      []string

	generateGUID GUIDGenerator
}

// Parse decodes a project.pbxproj document.
func Parse(data []byte) (*Project, error) {
	var raw map[string]interface{}
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, malformedf(err, "failed to decode property list")
	}
	return newProject(serialized.Object(raw))
}

func newProject(raw serialized.Object) (*Project, error) {
	rootObject, err := raw.String("rootObject")
	if err != nil {
		return nil, malformedf(err, "missing rootObject")
	}
	objects, err := raw.Object("objects")
	if err != nil {
		return nil, malformedf(err, "missing objects")
	}

	p := &Project{
		ContainerGroupName: DefaultContainerGroupName,
		header:             serialized.Object{},
		rootObject:         rootObject,
		objects:            map[string]object{},
	}
	for key, value := range raw {
		if key != "objects" && key != "rootObject" {
			p.header[key] = value
		}
	}

	guids := make([]string, 0, len(objects))
	for guid := range objects {
		guids = append(guids, guid)
	}
	sort.Strings(guids)
	for _, guid := range guids {
		obj, err := objects.Object(guid)
		if err != nil {
			return nil, malformedf(err, "object %s is not a dictionary", guid)
		}
		decoded, err := decodeObject(guid, obj)
		if err != nil {
			return nil, err
		}
		p.add(decoded)
	}

	if _, ok := p.objects[rootObject].(*projectObject); !ok {
		return nil, malformedf(nil, "rootObject %s is not a %s", rootObject, ProjectIsa)
	}
	return p, nil
}

// Serialize encodes the graph back into project.pbxproj text.
func (p *Project) Serialize() ([]byte, error) {
	objects := map[string]interface{}{}
	for _, guid := range p.order {
		objects[guid] = map[string]interface{}(p.objects[guid].encode())
	}

	root := map[string]interface{}{}
	for key, value := range p.header {
		root[key] = value
	}
	root["objects"] = objects
	root["rootObject"] = p.rootObject

	data, err := plist.MarshalIndent(root, plist.OpenStepFormat, "\t")
	if err != nil {
		return nil, err
	}
	return append([]byte(utf8Header), append(data, '\n')...), nil
}

// Len returns the number of objects in the graph.
func (p *Project) Len() int {
	return len(p.objects)
}

// SetGUIDGenerator replaces the identifier source used for new objects.
func (p *Project) SetGUIDGenerator(generate GUIDGenerator) {
	p.generateGUID = generate
}

// Enumeration order is parse order (ascending GUID) followed by creation order.
func (p *Project) add(obj object) {
	p.objects[obj.guid()] = obj
	p.order = append(p.order, obj.guid())
}

func (p *Project) root() *projectObject {
	return p.objects[p.rootObject].(*projectObject)
}

func (p *Project) containerGroupName() string {
	if p.ContainerGroupName == "" {
		return DefaultContainerGroupName
	}
	return p.ContainerGroupName
}
