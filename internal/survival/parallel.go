package survival

import "sync"

// runPartitions executes fn once per partition. With workers <= 1 this is a
// plain sequential fold. With workers > 1 the partitions are scattered across
// a goroutine pool and gathered at an unconditional barrier before returning.
// Partitions share no state, so fn must only write to its own output slots;
// the first error recorded aborts the call after the barrier.
func runPartitions(parts []partition, workers int, fn func(p partition) error) error {
	if workers <= 1 || len(parts) < 2 {
		for _, p := range parts {
			if err := fn(p); err != nil {
				return err
			}
		}
		return nil
	}

	if workers > len(parts) {
		workers = len(parts)
	}

	jobs := make(chan partition, len(parts))
	for _, p := range parts {
		jobs <- p
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)

	var mu sync.Mutex
	var firstErr error

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for p := range jobs {
				if err := fn(p); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

	// Barrier: all partitions finish before any result is used.
	wg.Wait()
	return firstErr
}
