package plan

// Union concatenates rows from both inputs (P1 invariant enforced by the
// validator: both sides must share a column-name vector).
type Union struct{ biInput }

// Intersect keeps rows present on both sides (right-built hash-set, left
// iterated for membership).
type Intersect struct{ biInput }

// Minus keeps left rows absent from the right side.
type Minus struct{ biInput }
