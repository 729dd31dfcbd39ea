package sigcond

import (
	"fmt"
	"sync"
)

// forEachChannel runs fn for channels 0..n-1, concurrently when parallel is
// set. The first error by channel order is returned.
func forEachChannel(n int, parallel bool, fn func(ch int) error) error {
	if !parallel || n <= 1 {
		for ch := range n {
			if err := fn(ch); err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for ch := range n {
		wg.Go(func() {
			errs[ch] = fn(ch)
		})
	}
	wg.Wait()

	for ch, err := range errs {
		if err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	return nil
}
