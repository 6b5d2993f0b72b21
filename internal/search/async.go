package search

import "github.com/f3rmion/emo/internal/emoji"

// Result is the outcome of an asynchronous search.
type Result struct {
	Keyword string
	Entries []emoji.Entry
	Err     error
}

// Async runs Search on its own goroutine. The returned channel receives
// exactly one Result and is then closed. A search in flight cannot be
// canceled; callers that no longer want the result just stop reading.
func Async(cat *emoji.Catalog, keyword string, opts ...Option) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		entries, err := Search(cat, keyword, opts...)
		ch <- Result{Keyword: keyword, Entries: entries, Err: err}
	}()
	return ch
}
