package segment

// Section is one titled, ordered unit of document content.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Template is a named, ordered sequence of sections describing the expected
// structure of a document. Section order is significant and survives
// persistence unchanged; templates are read-only once loaded.
type Template struct {
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}
