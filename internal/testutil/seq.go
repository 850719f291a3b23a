package testutil

import (
	"iter"
)

// Seq yields items in order, then err if it is not nil.
func Seq[T any](err error, items ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// CountingSeq is like Seq but records how many items were pulled.
func CountingSeq[T any](pulled *int, items ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			*pulled++
			if !yield(item, nil) {
				return
			}
		}
	}
}
