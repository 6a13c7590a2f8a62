package rep2html_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alnah/go-rep2html"
)

var exampleDoc = []string{
	"REP: 5",
	"Title: Guidelines",
	"Author: Jane Doe <jane@example.com>",
	"",
	"Abstract",
	"",
	"    See RFC 2822.",
}

// Example demonstrates converting a document held in memory.
func Example() {
	conv, err := rep2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), rep2html.Input{
		Path:  "rep-0005.rst",
		Lines: exampleDoc,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Title)
	fmt.Println(strings.Contains(string(result.HTML), `<a href="http://www.faqs.org/rfcs/rfc2822.html">RFC 2822</a>`))
	// Output:
	// REP 5 -- Guidelines
	// true
}

// Example_skippable shows how a batch tells non-documents from failures.
func Example_skippable() {
	conv, err := rep2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, err = conv.Convert(context.Background(), rep2html.Input{
		Path:  "README.txt",
		Lines: []string{"Just some notes.", "", "Nothing to see."},
	})
	fmt.Println(rep2html.IsSkippable(err), errors.Is(err, rep2html.ErrNotDocument))
	// Output: true true
}

// Example_parallel shows one Converter shared by several goroutines.
func Example_parallel() {
	conv, err := rep2html.NewConverter(rep2html.WithInlineStyle(true))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	workers := rep2html.ResolveWorkers(2)
	titles := make([]string, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := conv.Convert(context.Background(), rep2html.Input{Lines: exampleDoc})
			if err != nil {
				titles[i] = err.Error()
				return
			}
			titles[i] = res.DocNum
		}()
	}
	wg.Wait()

	fmt.Println(strings.Join(titles, " "))
	// Output: 0005 0005
}
