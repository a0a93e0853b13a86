package hclust

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// computePairwise fills the upper triangle of out with dist(data[i], data[j]).
func computePairwise(data [][]float64, dist func(a, b []float64) float64, out *mat.SymDense) {
	n := len(data)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out.SetSym(i, j, dist(data[i], data[j]))
		}
	}
}

// computePairwiseParallel is computePairwise spread over numWorkers
// goroutines. If numWorkers <= 1 it falls back to the single-threaded path.
//
// Each worker owns a contiguous range of source rows and writes only the
// (i, j>i) cells for those rows, so no synchronization is needed for writes
// and the result is bitwise identical to computePairwise.
func computePairwiseParallel(data [][]float64, dist func(a, b []float64) float64, numWorkers int, out *mat.SymDense) {
	n := len(data)
	if numWorkers <= 1 || n <= 1 {
		computePairwise(data, dist, out)
		return
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, n)
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := i + 1; j < n; j++ {
					out.SetSym(i, j, dist(data[i], data[j]))
				}
			}
		}(startRow, endRow)
	}

	wg.Wait()
}
