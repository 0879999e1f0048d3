package reactor

// edge is the only mutable connective tissue in the graph: a directed
// dependency record between a source-side node and a target-side node. It
// lives in two intrusive lists at once — the source's dependents list and
// the target's sources list — which is why it carries two independent
// pairs of sibling pointers rather than being split into two records.
type edge struct {
	src depNode
	tgt subNode

	version uint64 // source's version as of the target's last observation
	used    bool   // scratch flag, reset and set during re-tracking

	// sibling links in src's dependents list ("who depends on src").
	prevSub, nextSub *edge

	// sibling links in tgt's sources list ("what tgt depends on").
	prevDep, nextDep *edge

	// rollback saves whatever previously occupied src's active-edge slot,
	// so prepareSources/cleanupSources can restore it across nested
	// evaluations.
	rollback *edge
}

// subscribeEdge links e into the head of e.src's dependents list. An edge
// should only be subscribed when its target is an effect or a derived with
// at least one (transitive) subscriber; callers are responsible for only
// calling this when that condition holds.
func subscribeEdge(e *edge) {
	head := e.src.subsHead()
	wasEmpty := head == nil

	e.prevSub = nil
	e.nextSub = head
	if head != nil {
		head.prevSub = e
	} else {
		e.src.setSubsTail(e)
	}
	e.src.setSubsHead(e)

	if wasEmpty {
		e.src.onFirstSubscriber()
	}
}

// unsubscribeEdge splices e out of e.src's dependents list. An edge that is
// not linked into that list is left alone.
func unsubscribeEdge(e *edge) {
	if e.prevSub == nil && e.src.subsHead() != e {
		return
	}
	if e.prevSub != nil {
		e.prevSub.nextSub = e.nextSub
	} else {
		e.src.setSubsHead(e.nextSub)
	}
	if e.nextSub != nil {
		e.nextSub.prevSub = e.prevSub
	} else {
		e.src.setSubsTail(e.prevSub)
	}
	e.prevSub, e.nextSub = nil, nil

	if e.src.subsHead() == nil {
		e.src.onLastSubscriberGone()
	}
}

// reorderToHead moves e to the head of tgt's sources list in O(1), used to
// keep that list in most-recently-observed-first order.
func reorderToHead(e *edge, tgt subNode) {
	if tgt.depsHead() == e {
		return
	}

	if e.prevDep != nil {
		e.prevDep.nextDep = e.nextDep
	} else {
		tgt.setDepsHead(e.nextDep)
	}
	if e.nextDep != nil {
		e.nextDep.prevDep = e.prevDep
	} else {
		tgt.setDepsTail(e.prevDep)
	}

	head := tgt.depsHead()
	e.prevDep = nil
	e.nextDep = head
	if head != nil {
		head.prevDep = e
	} else {
		tgt.setDepsTail(e)
	}
	tgt.setDepsHead(e)
}

// prepareSources resets the used flag on every edge in sub's sources list
// and redirects each source's active-edge slot to that edge, saving
// whatever occupied it into rollback. This lets a tracked read inside the
// upcoming formula distinguish "known dependency, not yet reused" from
// "brand new" in O(1) without touching unrelated nodes' state permanently.
func prepareSources(sub subNode) {
	for e := sub.depsHead(); e != nil; e = e.nextDep {
		e.used = false
		e.rollback = e.src.activeEdge()
		e.src.setActiveEdge(e)
	}
}

// cleanupSources walks sub's sources list once, keeping edges that were
// used this evaluation (preserving their relative order, which is already
// most-recently-observed-first) and unsubscribing/dropping the rest. Every
// edge encountered, kept or dropped, has its source's active-edge slot
// restored from rollback.
func cleanupSources(sub subNode) {
	var newHead, newTail *edge

	e := sub.depsHead()
	for e != nil {
		next := e.nextDep

		if e.used {
			e.prevDep = newTail
			e.nextDep = nil
			if newTail != nil {
				newTail.nextDep = e
			} else {
				newHead = e
			}
			newTail = e
		} else {
			unsubscribeEdge(e)
		}

		e.src.setActiveEdge(e.rollback)
		e.rollback = nil
		e = next
	}

	sub.setDepsHead(newHead)
	sub.setDepsTail(newTail)
}

// track records that sub (the current evaluator) read src, allocating a new
// edge only the first time this pair is observed within the evaluation, and
// writes src's current version into the edge once src has been brought up
// to date by the caller. It does nothing if there is no active evaluator
// (an untracked read).
func track(src depNode) {
	sub := currentEvaluator()
	if sub == nil {
		return
	}

	active := src.activeEdge()
	var e *edge

	if active != nil && active.tgt == sub {
		if active.used {
			// Already marked used this evaluation: repeated reads are free.
			e = active
		} else {
			active.used = true
			reorderToHead(active, sub)
			e = active
		}
	} else {
		e = &edge{src: src, tgt: sub, used: true}

		head := sub.depsHead()
		e.nextDep = head
		if head != nil {
			head.prevDep = e
		} else {
			sub.setDepsTail(e)
		}
		sub.setDepsHead(e)

		e.rollback = src.activeEdge()
		src.setActiveEdge(e)

		if sub.wantsUpstreamSubscription() {
			subscribeEdge(e)
		}
	}

	e.version = src.depVersion()
}
