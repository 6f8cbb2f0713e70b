// Package clinicdex provides an in-process Go client for clinic search
// backed by Redis with the JSON and search modules.
//
// Records are fetched from the store by coarse criteria (state, city,
// radius around a point) and ranked in-process: free-text queries are
// corrected and expanded into canonical medical terms, scored against
// each clinic, filtered by rating, open-now and amenity predicates,
// then sorted. When filters remove everything, a broader set is returned
// and flagged instead of an empty page.
//
//	client, _ := clinicdex.New(ctx, clinicdex.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	f := clinicdex.NewFilter("zits near me open now").
//	    WithStates("CA").
//	    WithMinRating(4)
//	out, _ := client.Search(ctx, clinicdex.Criteria{State: "CA"}, f)
//	for _, r := range out.Results {
//	    fmt.Println(r.Record.Name, r.Score)
//	}
//
// Interactive callers that change filters often use a Session, which keeps
// the fetched candidates and recomputes without another round trip:
//
//	s := client.NewSession()
//	view, _ := s.Fetch(ctx, clinicdex.Criteria{City: "Austin", State: "TX"}, f)
//	view = s.Apply(f.WithSort(clinicdex.SortRating, clinicdex.Desc))
package clinicdex
