package loam

// NodeMetadata is the frontmatter of one dialogue node document.
// It uses "mapstructure" tags to match the YAML keys.
//
//	---
//	id: 2
//	root: true
//	answers: ["Hi!", "Hello!"]
//	edges:
//	  - to: 3
//	    keywords: [bye, "see you"]
//	---
//	An optional body becomes one more answer.
type NodeMetadata struct {
	// ID defaults to the file name (e.g. "2.md") when absent.
	ID      *int         `json:"id" mapstructure:"id"`
	Root    bool         `json:"root" mapstructure:"root"`
	Answers []string     `json:"answers" mapstructure:"answers"`
	Edges   []EdgeConfig `json:"edges" mapstructure:"edges"`
}

// EdgeConfig declares an outgoing edge. Numeric-looking keywords must be quoted.
type EdgeConfig struct {
	To       int      `json:"to" mapstructure:"to"`
	Keywords []string `json:"keywords" mapstructure:"keywords"`
}
