package gwr

// wakeEntry is a single wake request: the scheduler keys its wake queue by
// (absolute_ns, clock registration index, insertion sequence), giving a
// deterministic tie-break when several tasks wake at the same instant.
type wakeEntry struct {
	atNS     float64
	clockReg int
	seq      uint64
	clock    *Clock
	ticks    uint64 // the clock's exact target tick_counter at atNS
	task     *taskHandle
}

// wakeHeap is a container/heap.Interface ordered by the triple above.
type wakeHeap []*wakeEntry

func (h wakeHeap) Len() int { return len(h) }

func (h wakeHeap) Less(i, j int) bool {
	if h[i].atNS != h[j].atNS {
		return h[i].atNS < h[j].atNS
	}
	if h[i].clockReg != h[j].clockReg {
		return h[i].clockReg < h[j].clockReg
	}
	return h[i].seq < h[j].seq
}

func (h wakeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *wakeHeap) Push(x any) {
	*h = append(*h, x.(*wakeEntry))
}

func (h *wakeHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
