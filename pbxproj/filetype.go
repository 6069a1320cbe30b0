package pbxproj

import (
	"path"
	"strings"
)

var fileTypesByExtension = map[string]string{
	".strings":     "text.plist.strings",
	".stringsdict": "text.plist.stringsdict",
	".xcstrings":   "text.json.xcstrings",
	".storyboard":  "file.storyboard",
	".xib":         "file.xib",
	".plist":       "text.plist.xml",
	".json":        "text.json",
	".txt":         "text",
	".html":        "text.html",
	".png":         "image.png",
	".jpg":         "image.jpeg",
	".jpeg":        "image.jpeg",
	".pdf":         "image.pdf",
	".mp3":         "audio.mp3",
	".wav":         "audio.wav",
}

// LastKnownFileType guesses the Xcode file type from the extension of pth.
func LastKnownFileType(pth string) string {
	if fileType, ok := fileTypesByExtension[strings.ToLower(path.Ext(pth))]; ok {
		return fileType
	}
	return "file"
}
