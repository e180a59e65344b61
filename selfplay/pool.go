package selfplay

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// RunPool runs gamesPerDriver games on each of drivers concurrently, one
// goroutine per driver so each keeps its own tree and RNG stream
// uncontended, and combines every non-nil PlayGame error into one.
func RunPool(drivers []*Driver, gamesPerDriver int) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs *multierror.Error
	)

	wg.Add(len(drivers))
	for _, d := range drivers {
		go func(d *Driver) {
			defer wg.Done()
			for i := 0; i < gamesPerDriver; i++ {
				if err := d.PlayGame(); err != nil {
					mu.Lock()
					errs = multierror.Append(errs, err)
					mu.Unlock()
				}
			}
		}(d)
	}
	wg.Wait()

	return errs.ErrorOrNil()
}
