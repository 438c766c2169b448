package scheduler

import (
	"sort"

	"github.com/rdleal/intervalst/interval"
)

// RoomIndex buckets sessions by room and keeps an interval search tree per
// room, so checking many candidates against a large venue does not rescan every
// session. Conflicts returns exactly what DetectConflicts returns over the
// indexed sessions, in insertion order.
//
// A RoomIndex is not safe for concurrent use.
type RoomIndex struct {
	sessions []Session
	rooms    map[string]*roomBucket
}

type roomBucket struct {
	tree   *interval.SearchTree[span, int]
	ranges map[span][]int
	// irregular holds sessions whose end is not after their start. The tree
	// cannot store them, so they are scanned with TimesOverlap.
	irregular []int
	all       []int
}

// span is a minute range used as the tree value; sessions sharing a range
// share one tree node.
type span struct {
	lo, hi int
}

// NewRoomIndex indexes the given sessions.
func NewRoomIndex(sessions []Session) *RoomIndex {
	idx := &RoomIndex{rooms: make(map[string]*roomBucket)}
	for _, s := range sessions {
		idx.Add(s)
	}
	return idx
}

// Add indexes one more session. Sessions without a room are kept only so
// positions stay stable; they never take part in conflicts.
func (idx *RoomIndex) Add(s Session) {
	pos := len(idx.sessions)
	idx.sessions = append(idx.sessions, s)
	if s.RoomID == nil {
		return
	}

	bucket, ok := idx.rooms[*s.RoomID]
	if !ok {
		bucket = &roomBucket{
			tree:   interval.NewSearchTree[span](func(x, y int) int { return x - y }),
			ranges: make(map[span][]int),
		}
		idx.rooms[*s.RoomID] = bucket
	}
	bucket.all = append(bucket.all, pos)

	if s.End <= s.Start {
		bucket.irregular = append(bucket.irregular, pos)
		return
	}

	key := span{lo: s.Start.Minutes(), hi: s.End.Minutes()}
	if _, ok := bucket.ranges[key]; !ok {
		if err := bucket.tree.Insert(key.lo, key.hi, key); err != nil {
			bucket.irregular = append(bucket.irregular, pos)
			return
		}
	}
	bucket.ranges[key] = append(bucket.ranges[key], pos)
}

// Len returns the number of indexed sessions.
func (idx *RoomIndex) Len() int { return len(idx.sessions) }

// Conflicts reports the room conflict for candidate against the indexed sessions.
func (idx *RoomIndex) Conflicts(candidate Session) []Conflict {
	if candidate.RoomID == nil {
		return nil
	}
	bucket, ok := idx.rooms[*candidate.RoomID]
	if !ok {
		return nil
	}

	var hits []int
	if candidate.End <= candidate.Start {
		// Degenerate candidates cannot be queried as a closed range.
		for _, pos := range bucket.all {
			other := idx.sessions[pos]
			if TimesOverlap(other.Start, other.End, candidate.Start, candidate.End) {
				hits = append(hits, pos)
			}
		}
	} else {
		// The tree may report ranges that only touch the candidate; the
		// half-open check below drops them.
		if found, ok := bucket.tree.AllIntersections(candidate.Start.Minutes(), candidate.End.Minutes()); ok {
			for _, key := range found {
				for _, pos := range bucket.ranges[key] {
					other := idx.sessions[pos]
					if TimesOverlap(other.Start, other.End, candidate.Start, candidate.End) {
						hits = append(hits, pos)
					}
				}
			}
		}
		for _, pos := range bucket.irregular {
			other := idx.sessions[pos]
			if TimesOverlap(other.Start, other.End, candidate.Start, candidate.End) {
				hits = append(hits, pos)
			}
		}
	}

	sort.Ints(hits)
	var colliding []Session
	for _, pos := range hits {
		other := idx.sessions[pos]
		if other.ID == candidate.ID {
			continue
		}
		colliding = append(colliding, other)
	}
	if len(colliding) == 0 {
		return nil
	}
	return []Conflict{{Kind: ConflictKindRoom, Message: RoomConflictMessage, Sessions: colliding}}
}

// Pair is a conflict between two sessions of the same listing.
type Pair struct {
	Session Session
	Other   Session
	Kind    ConflictKind
}

// DetectAll reports every colliding pair among sessions exactly once. Session
// is always the one appearing earlier in the input; pairs are ordered by Other.
func DetectAll(sessions []Session) []Pair {
	idx := NewRoomIndex(nil)
	var pairs []Pair
	for _, candidate := range sessions {
		for _, conflict := range idx.Conflicts(candidate) {
			for _, earlier := range conflict.Sessions {
				pairs = append(pairs, Pair{Session: earlier, Other: candidate, Kind: conflict.Kind})
			}
		}
		idx.Add(candidate)
	}
	return pairs
}
