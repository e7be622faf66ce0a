// Package promise implements the one-shot result handoff between a spawned
// thread and the caller that joins it.
//
// The producer settles a CompletableFuture exactly once, either with a value
// or with an error. The buffered channel inside the future means the producer
// never blocks, even when nobody ever calls Get. The first Get receives the
// settled state from the channel and caches it, so later calls replay the same
// result without blocking.
//
// Example usage:
//
//	f := promise.New[int]()
//	go func() { f.Complete(42) }()
//	v, err := f.Get()
package promise
