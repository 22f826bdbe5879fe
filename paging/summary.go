package paging

import "fmt"

// NoResults is the summary of an empty result set.
const NoResults = "No results found"

// Summary describes the visible slice of the result set.
func Summary(m Meta) string {
	if m.Total <= 0 || !m.InRange() {
		return NoResults
	}
	return fmt.Sprintf("Showing %d to %d of %d results", m.From, m.To, m.Total)
}
