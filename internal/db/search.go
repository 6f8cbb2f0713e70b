package db

// SearchResult is one page of FT.SEARCH hits. Total counts every match in
// the index, so it can exceed len(Entries) when the page was truncated.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single hit: the document key and the requested RETURN
// fields. Clinic fetches ask for "$", the whole JSON document.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
