package dataset

import "errors"

// errNotHashable marks DataSetValue as unusable as a hash/tree key: the
// data model requires Value generally be hashable (for Dedup/GroupBy/Join
// keys), but a DataSet-valued column never legitimately appears as a group
// or join key, so callers that hit this have a validator bug upstream.
var errNotHashable = errors.New("dataset: a DataSet-valued column cannot be used as a hash key")
