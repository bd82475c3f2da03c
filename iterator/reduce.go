package iterator

// Reduce folds it from the left, seeding the accumulator with the first
// value. It returns [ErrEmptySequence] if it is exhausted on the first pull.
// It will not return if the iterator is infinite.
func Reduce[T any](it Iterator[T], fn func(acc, v T) T) (T, error) {
	acc, ok := it.Next()
	if !ok {
		return acc, ErrEmptySequence
	}
	for {
		v, ok := it.Next()
		if !ok {
			return acc, nil
		}
		acc = fn(acc, v)
	}
}

// Fold folds it from the left, starting with initial, which is returned
// unchanged if it is empty.
func Fold[T, A any](it Iterator[T], initial A, fn func(acc A, v T) A) A {
	acc := initial
	for {
		v, ok := it.Next()
		if !ok {
			return acc
		}
		acc = fn(acc, v)
	}
}
