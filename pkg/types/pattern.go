package types

// OthersCategory receives every file whose extension no category claims.
const OthersCategory = "Others"

// Category groups file extensions under a folder name.
// Extensions are stored lowercase with their leading dot (".pdf").
type Category struct {
	Name       string   `json:"name" yaml:"name"`             // Folder the matched files are moved into (e.g., "Documents").
	Extensions []string `json:"extensions" yaml:"extensions"` // Extensions claimed by this category (e.g., ".pdf", ".txt").
}

// Has reports whether ext is one of the category's extensions.
// ext must already be normalized.
func (c Category) Has(ext string) bool {
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
