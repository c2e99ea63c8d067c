// Package mocks provides shared test doubles for the deck pipeline.
//
// MockTextGenerator stands in for a generation backend. It can return a fixed
// reply, a scripted sequence of replies (for example quota failures followed by
// success) or delegate to a function, and it records every prompt it receives:
//
//	gen := &mocks.MockTextGenerator{
//	    GenerateTextFn: func(ctx context.Context, prompt string) (string, error) {
//	        return "Slide one\nSlide two", nil
//	    },
//	}
//
// Call tracking is guarded by a mutex so the mocks can be shared by goroutines.
package mocks
