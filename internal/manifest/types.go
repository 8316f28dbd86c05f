package manifest

import "encoding/json"

// FileName is the metadata file every command package carries.
const FileName = "package.json"

// DefaultEntry is used when a package declares neither main nor bin.
const DefaultEntry = "index.js"

// PackageJSON holds the package.json fields the dispatcher reads. Unknown
// fields are ignored.
type PackageJSON struct {
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Main    string          `json:"main,omitempty"`
	Type    string          `json:"type,omitempty"`
	Bin     json.RawMessage `json:"bin,omitempty"`
}

// EntryPath returns the declared entry module relative to the package root:
// main, then a string bin, then the bin named after the package, then
// index.js.
func (p *PackageJSON) EntryPath() string {
	if p.Main != "" {
		return p.Main
	}
	if len(p.Bin) > 0 {
		var single string
		if err := json.Unmarshal(p.Bin, &single); err == nil && single != "" {
			return single
		}
		var named map[string]string
		if err := json.Unmarshal(p.Bin, &named); err == nil {
			if v := named[unscopedName(p.Name)]; v != "" {
				return v
			}
		}
	}
	return DefaultEntry
}

func unscopedName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}
