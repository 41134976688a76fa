package greedy

// The traceback walks from the end cell back to the origin, asking at each
// cell which predecessor the forward pass chose. Levels are never modified
// once computed, so recomputing the choice gives the same answer. Edits are
// collected end-first and reversed at the end.

func (e *linearEngine) traceback(d, k, i int) *EditScript {
	w := e.c.w
	es := NewEditScript()
	for {
		p, op, _ := e.predecessor(d, k)
		es.Append(OpMatch, i-p)
		switch op {
		case OpMismatch:
			es.Append(OpMismatch, 1)
			d -= w.mismatch
			i = p - 1
		case OpDelete:
			es.Append(OpDelete, 1)
			d -= w.gap
			k--
			i = p - 1
		case OpInsert:
			es.Append(OpInsert, 1)
			d -= w.gap
			k++
			i = p
		default:
			es.Reverse()
			return es
		}
	}
}

// affine traceback states
const (
	inMatch = iota
	inDelete
	inInsert
)

func (e *affineEngine) traceback(d, k, i int) *EditScript {
	w := e.c.w
	es := NewEditScript()
	state := inMatch
	for {
		switch state {
		case inMatch:
			p, op, _ := e.matchSource(d, k, e.c.wm.state(d, k))
			es.Append(OpMatch, i-p)
			switch op {
			case OpMismatch:
				es.Append(OpMismatch, 1)
				d -= w.mismatch
				i = p - 1
			case OpDelete:
				state, i = inDelete, p
			case OpInsert:
				state, i = inInsert, p
			default:
				es.Reverse()
				return es
			}
		case inDelete:
			_, open, _ := e.delSource(d, k)
			es.Append(OpDelete, 1)
			d -= w.gap
			if open {
				d -= w.open
				state = inMatch
			}
			k--
			i--
		case inInsert:
			_, open, _ := e.insSource(d, k)
			es.Append(OpInsert, 1)
			d -= w.gap
			if open {
				d -= w.open
				state = inMatch
			}
			k++
		}
	}
}
