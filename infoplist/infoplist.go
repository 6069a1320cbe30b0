// Package infoplist edits the localization keys of an app's Info.plist.
package infoplist

import (
	"fmt"

	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/sliceutil"
	"howett.net/plist"
)

// Keys
const (
	LocalizationsKey     = "CFBundleLocalizations"
	DevelopmentRegionKey = "CFBundleDevelopmentRegion"
)

// Document is a decoded Info.plist that remembers the format it was read in.
type Document struct {
	format int
	root   map[string]interface{}
}

// Parse decodes an Info.plist in any of the XML, binary or OpenStep formats.
func Parse(data []byte) (*Document, error) {
	var root map[string]interface{}
	format, err := plist.Unmarshal(data, &root)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Info.plist, error: %s", err)
	}
	if root == nil {
		root = map[string]interface{}{}
	}
	return &Document{format: format, root: root}, nil
}

// Open reads and decodes the Info.plist at pth.
func Open(pth string) (*Document, error) {
	data, err := fileutil.ReadBytesFromFile(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s, error: %s", pth, err)
	}
	return Parse(data)
}

// Bytes encodes the document in its original format.
func (d *Document) Bytes() ([]byte, error) {
	if d.format == plist.BinaryFormat {
		return plist.Marshal(d.root, d.format)
	}
	return plist.MarshalIndent(d.root, d.format, "\t")
}

// Localizations returns the CFBundleLocalizations entries.
func (d *Document) Localizations() []string {
	values, ok := d.root[LocalizationsKey].([]interface{})
	if !ok {
		return nil
	}

	var codes []string
	for _, value := range values {
		if code, ok := value.(string); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// SetLocalizations replaces CFBundleLocalizations with codes, dropping repeated codes.
func (d *Document) SetLocalizations(codes []string) {
	list := []interface{}{}
	var seen []string
	for _, code := range codes {
		if sliceutil.IsStringInSlice(code, seen) {
			continue
		}
		seen = append(seen, code)
		list = append(list, code)
	}
	d.root[LocalizationsKey] = list
}

// AddLocalization appends code to CFBundleLocalizations unless it is already listed.
func (d *Document) AddLocalization(code string) {
	codes := d.Localizations()
	if sliceutil.IsStringInSlice(code, codes) {
		return
	}
	d.SetLocalizations(append(codes, code))
}

// DevelopmentRegion returns CFBundleDevelopmentRegion, empty when unset.
func (d *Document) DevelopmentRegion() string {
	region, _ := d.root[DevelopmentRegionKey].(string)
	return region
}

// SetDevelopmentRegion ...
func (d *Document) SetDevelopmentRegion(code string) {
	d.root[DevelopmentRegionKey] = code
}
