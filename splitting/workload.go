// SPDX-License-Identifier: MIT

package splitting

// WorkerInfo identifies one of Count parallel workers.
// The zero value means a single in-process worker.
type WorkerInfo struct {
	ID    int
	Count int
}

// SplitWorkload returns the half-open slice [start, stop) of n work items
// owned by worker. Items are divided into ceil(n/Count) sized chunks, so the
// last workers may receive fewer (or zero) items.
func SplitWorkload(n int, worker WorkerInfo) (start, stop int) {
	if worker.Count <= 1 {
		return 0, n
	}
	per := (n + worker.Count - 1) / worker.Count
	start = min(worker.ID*per, n)
	stop = min(start+per, n)

	return start, stop
}
