package interp

// maxHistory is the deepest history any strategy needs.
const maxHistory = 3

type slot[M any] struct {
	m     M
	valid bool
}

// history is a tiny ring of the most recent samples, oldest first. Valid
// slots are always a prefix; pushing fills the next free slot until the
// ring is full, then shifts out the oldest.
type history[M any] struct {
	slots [maxHistory]slot[M]
	size  int
}

func newHistory[M any](size int) history[M] {
	return history[M]{size: size}
}

func (h *history[M]) len() int {
	n := 0
	for i := 0; i < h.size && h.slots[i].valid; i++ {
		n++
	}
	return n
}

func (h *history[M]) full() bool {
	return h.len() == h.size
}

func (h *history[M]) push(m M) {
	n := h.len()
	if n < h.size {
		h.slots[n] = slot[M]{m: m, valid: true}
		return
	}
	copy(h.slots[:h.size-1], h.slots[1:h.size])
	h.slots[h.size-1] = slot[M]{m: m, valid: true}
}

func (h *history[M]) at(i int) M {
	return h.slots[i].m
}

func (h *history[M]) reset() {
	h.slots = [maxHistory]slot[M]{}
}
