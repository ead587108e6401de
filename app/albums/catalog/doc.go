// Package catalog holds the album list shown on the manager page.
//
// Albums live only in process memory: the Store is seeded from a fixed set on
// construction and every change is lost on restart. Add and Delete suspend for
// a configurable simulated latency before they take effect.
//
//	store := catalog.NewStore(catalog.Seed(), catalog.WithLatency(time.Second))
//	draft, errs := catalog.Form{Name: "Abbey Road", Band: "The Beatles", Year: "1969", Image: data}.Validate(time.Now())
//	if errs != nil {
//		// render errs next to the form fields
//	}
//	album, err := store.Add(ctx, draft)
package catalog
