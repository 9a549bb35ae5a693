// Package inventory answers free-text questions about an agent's items
// through a paged verification protocol: pages of items plus synthesized
// probe questions are sent to the completion engine until a page yields a
// non-sentinel answer.
package inventory

// Item is one carried item. Identity is structural: two items with equal
// fields are indistinguishable to the resolver.
type Item struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Quantity    int    `yaml:"quantity"`
}
