package strategy

// Strategy selects the relevance scorer used for a search.
type Strategy string

// Strategy constants.
const (
	// Taxonomy ranks location-scoped, multi-term condition/treatment queries.
	Taxonomy Strategy = "taxonomy"
	// Name ranks nationwide single free-text "find this business" queries.
	Name Strategy = "name"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Taxonomy || s == Name
}

// OrDefault returns s, or Taxonomy when s is empty.
func (s Strategy) OrDefault() Strategy {
	if s == "" {
		return Taxonomy
	}
	return s
}
