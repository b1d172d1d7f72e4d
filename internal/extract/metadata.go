package extract

import (
	"errors"
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
)

// CameraTags are the EXIF tags that indicate a real capture device
var CameraTags = []string{"Make", "Model", "DateTime", "ExposureTime", "FNumber"}

// Metadata holds the EXIF tags of an image
type Metadata struct {
	Readable bool              `json:"readable"`
	Tags     map[string]string `json:"tags,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// HasCameraInfo reports whether any camera tag is present
func (m Metadata) HasCameraInfo() bool {
	for _, tag := range CameraTags {
		if _, ok := m.Tags[tag]; ok {
			return true
		}
	}
	return false
}

// ReadMetadata extracts EXIF tags from raw image bytes.
// A missing EXIF block is readable and empty; anything else that fails is unreadable.
func ReadMetadata(data []byte) (md Metadata) {
	defer func() {
		if state := recover(); state != nil {
			md = Metadata{Error: fmt.Sprintf("exif: %v", state)}
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return Metadata{Readable: true, Tags: map[string]string{}}
		}
		return Metadata{Error: err.Error()}
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return Metadata{Error: err.Error()}
	}

	tags := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.TagName == "" {
			continue
		}
		tags[e.TagName] = e.Formatted
	}

	return Metadata{Readable: true, Tags: tags}
}
