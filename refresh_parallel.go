package solver

import (
	"runtime"
	"sync"
)

// refreshParallel runs refresh's grouped-prefix blocks across a worker pool
// sized by GOMAXPROCS, then runs the scalar tail on the calling goroutine.
// Each worker owns a contiguous, lane-width-aligned chunk of [0,
// groupOffset), so no two goroutines ever write the same joint-table slot.
func refreshParallel(jt *jointTable, params solveBodyParamsTable, impulse solveBodyTable, contactPoints []ContactPoint, groupOffset, width int) {
	if groupOffset == 0 {
		refresh(jt, params, impulse, contactPoints, groupOffset, width)
		return
	}

	numBlocks := groupOffset / width
	workers := runtime.GOMAXPROCS(0)
	if workers > numBlocks {
		workers = numBlocks
	}
	if workers < 1 {
		workers = 1
	}

	blocksPerWorker := (numBlocks + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startBlock := w * blocksPerWorker
		if startBlock >= numBlocks {
			break
		}
		endBlock := startBlock + blocksPerWorker
		if endBlock > numBlocks {
			endBlock = numBlocks
		}

		wg.Add(1)
		go func(startBlock, endBlock int) {
			defer wg.Done()
			for b := startBlock; b < endBlock; b++ {
				refreshBlock(jt, params, impulse, contactPoints, b*width, width)
			}
		}(startBlock, endBlock)
	}
	wg.Wait()

	for i := groupOffset; i < jt.jointCount; i++ {
		refreshBlock(jt, params, impulse, contactPoints, i, 1)
	}
}
