package dataset

import "github.com/pilosa/pilosa/roaring"

// tombstone is a logical-delete bitmap over a DataSet's row indices: Erase
// marks a row dead without touching the backing slice, so multiple
// iterators can share one DataSet (§9 design note: "erase is logical --
// either a tombstone bitmap or a Vec<usize> of surviving indices -- to
// avoid reallocating during iteration").
type tombstone struct {
	dead *roaring.Bitmap
}

func newTombstone() *tombstone {
	return &tombstone{dead: roaring.NewBitmap()}
}

func (t *tombstone) markDead(rowIdx int) {
	_, _ = t.dead.Add(uint64(rowIdx))
}

func (t *tombstone) isDead(rowIdx int) bool {
	return t.dead.Contains(uint64(rowIdx))
}

func (t *tombstone) liveCount(total int) int {
	return total - int(t.dead.Count())
}
