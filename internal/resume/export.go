package resume

import (
	"encoding/json"
	"regexp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// JSON returns the document pretty-printed with two-space indentation.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// DownloadName is the file name offered for the JSON export, e.g.
// "Satya_Subudhi_resume.json".
func (d *Document) DownloadName() string {
	return whitespaceRun.ReplaceAllString(d.Personal.Name, "_") + "_resume.json"
}
