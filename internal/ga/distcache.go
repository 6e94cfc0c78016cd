package ga

import (
	"runtime"
	"sync"
)

// DistCache holds the pairwise distance matrix for one generation's members,
// computed once under exclusive access and then treated as read-only by
// speciation and niching. Grounded on the worker-pool idiom already used for
// fitness evaluation in the teacher's parallel evaluator.
type DistCache struct {
	rows [][]float64
}

func newDistCache(eval Evaluator, mems []Member, workers int) DistCache {
	n := len(mems)
	rows := make([][]float64, n)

	for i := range rows {
		rows[i] = make([]float64, n)
	}

	if n == 0 {
		return DistCache{rows: rows}
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				for j := 0; j < n; j++ {
					rows[i][j] = eval.Distance(&mems[i].State, &mems[j].State)
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	return DistCache{rows: rows}
}

func (c DistCache) at(i, j int) float64 {
	return c.rows[i][j]
}

func (c DistCache) empty() bool {
	return len(c.rows) == 0
}

// Max returns the largest pairwise distance in the cache, used as the upper
// bound for the speciation binary search.
func (c DistCache) Max() float64 {
	max := 0.0

	for _, row := range c.rows {
		for _, d := range row {
			if d > max {
				max = d
			}
		}
	}

	return max
}
