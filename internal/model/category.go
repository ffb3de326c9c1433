package model

// Category groups catalog products by keyword for the full search page filter.
// A product belongs to a category when any keyword occurs in its name or description.
type Category struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Keywords  []string `json:"keywords" yaml:"keywords"`
	SortOrder int      `json:"sort_order" yaml:"sort_order"`
}
