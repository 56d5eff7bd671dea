package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/hashstructure"
)

// List is an ordered Value sequence (used for COLLECT(), neighbor bundles,
// path vertex/edge accumulators).
type List struct{ Values []Value }

func NewList(vs ...Value) List { return List{Values: vs} }

func (List) Kind() Kind     { return KindList }
func (List) IsNull() bool   { return false }
func (l List) String() string {
	parts := make([]string, len(l.Values))
	for i, v := range l.Values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l List) Hash() (uint64, error) {
	keys := make([]uint64, len(l.Values))
	for i, v := range l.Values {
		h, err := v.Hash()
		if err != nil {
			return 0, err
		}
		keys[i] = h
	}
	return hashstructure.Hash(keys, nil)
}
func (l List) Equal(other Value) bool {
	o, ok := other.(List)
	if !ok || len(l.Values) != len(o.Values) {
		return false
	}
	for i := range l.Values {
		if !l.Values[i].Equal(o.Values[i]) {
			return false
		}
	}
	return true
}
func (l List) Compare(other Value) (int, bool) { return 0, false }

// Map is a property-bag style Value: ordered-by-key for deterministic
// stringification, compared by deep key/value equality only.
type Map struct{ Entries map[string]Value }

func NewMap(entries map[string]Value) Map { return Map{Entries: entries} }

func (Map) Kind() Kind   { return KindMap }
func (Map) IsNull() bool { return false }
func (m Map) String() string {
	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, m.Entries[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m Map) Hash() (uint64, error) {
	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	hashes := make([]uint64, 0, len(keys)*2)
	for _, k := range keys {
		kh, err := hashstructure.Hash(k, nil)
		if err != nil {
			return 0, err
		}
		vh, err := m.Entries[k].Hash()
		if err != nil {
			return 0, err
		}
		hashes = append(hashes, kh, vh)
	}
	return hashstructure.Hash(hashes, nil)
}
func (m Map) Equal(other Value) bool {
	o, ok := other.(Map)
	if !ok || len(m.Entries) != len(o.Entries) {
		return false
	}
	for k, v := range m.Entries {
		ov, ok := o.Entries[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
func (m Map) Compare(other Value) (int, bool) { return 0, false }

// Set is an unordered, deduplicated Value collection (UNWIND source,
// COLLECT(DISTINCT ...) accumulator).
type Set struct{ Values map[uint64]Value }

func NewSet() Set { return Set{Values: map[uint64]Value{}} }

func (s *Set) Add(v Value) error {
	h, err := v.Hash()
	if err != nil {
		return err
	}
	s.Values[h] = v
	return nil
}

func (Set) Kind() Kind   { return KindSet }
func (Set) IsNull() bool { return false }
func (s Set) String() string {
	parts := make([]string, 0, len(s.Values))
	for _, v := range s.Values {
		parts = append(parts, v.String())
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}
func (s Set) Hash() (uint64, error) {
	keys := make([]uint64, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return hashstructure.Hash(keys, nil)
}
func (s Set) Equal(other Value) bool {
	o, ok := other.(Set)
	if !ok || len(s.Values) != len(o.Values) {
		return false
	}
	for k := range s.Values {
		if _, ok := o.Values[k]; !ok {
			return false
		}
	}
	return true
}
func (s Set) Compare(other Value) (int, bool) { return 0, false }

// Vertex is a graph vertex: a vid and a map of tag name -> property map.
type Vertex struct {
	VID  string
	Tags map[string]map[string]Value
}

func (Vertex) Kind() Kind     { return KindVertex }
func (Vertex) IsNull() bool   { return false }
func (v Vertex) String() string { return fmt.Sprintf("(%s)", v.VID) }
func (v Vertex) Hash() (uint64, error) { return hashstructure.Hash(v.VID, nil) }
func (v Vertex) Equal(other Value) bool {
	o, ok := other.(Vertex)
	return ok && v.VID == o.VID
}
func (v Vertex) Compare(other Value) (int, bool) { return 0, false }

// TagProp returns a property of a named tag, or (Empty, false) if the
// vertex doesn't carry that tag or property.
func (v Vertex) TagProp(tag, prop string) (Value, bool) {
	props, ok := v.Tags[tag]
	if !ok {
		return Empty{}, false
	}
	val, ok := props[prop]
	return val, ok
}

// Edge is a graph edge: (src, edgeType, ranking, dst) identity plus
// properties.
type Edge struct {
	Src, Dst string
	Type     string
	Ranking  int64
	Props    map[string]Value
}

func (Edge) Kind() Kind   { return KindEdge }
func (Edge) IsNull() bool { return false }
func (e Edge) String() string {
	return fmt.Sprintf("(%s)-[:%s@%d]->(%s)", e.Src, e.Type, e.Ranking, e.Dst)
}
func (e Edge) Key() [4]string {
	return [4]string{e.Src, e.Type, fmt.Sprintf("%d", e.Ranking), e.Dst}
}
func (e Edge) Hash() (uint64, error) { return hashstructure.Hash(e.Key(), nil) }
func (e Edge) Equal(other Value) bool {
	o, ok := other.(Edge)
	return ok && e.Key() == o.Key()
}
func (e Edge) Compare(other Value) (int, bool) { return 0, false }

func (e Edge) Prop(name string) (Value, bool) {
	v, ok := e.Props[name]
	return v, ok
}

// Path is an alternating vertex/edge walk: Vertices[0], Edges[0],
// Vertices[1], Edges[1], ... Vertices[len(Edges)].
type Path struct {
	Vertices []Vertex
	Edges    []Edge
}

func (Path) Kind() Kind   { return KindPath }
func (Path) IsNull() bool { return false }
func (p Path) String() string {
	var b strings.Builder
	for i, v := range p.Vertices {
		b.WriteString(v.String())
		if i < len(p.Edges) {
			b.WriteString(fmt.Sprintf("-[:%s]->", p.Edges[i].Type))
		}
	}
	return b.String()
}
func (p Path) Hash() (uint64, error) {
	keys := make([]string, 0, len(p.Vertices)+len(p.Edges))
	for _, v := range p.Vertices {
		keys = append(keys, v.VID)
	}
	for _, e := range p.Edges {
		keys = append(keys, fmt.Sprintf("%v", e.Key()))
	}
	return hashstructure.Hash(keys, nil)
}
func (p Path) Equal(other Value) bool {
	o, ok := other.(Path)
	if !ok || len(p.Vertices) != len(o.Vertices) || len(p.Edges) != len(o.Edges) {
		return false
	}
	for i := range p.Vertices {
		if !p.Vertices[i].Equal(o.Vertices[i]) {
			return false
		}
	}
	for i := range p.Edges {
		if !p.Edges[i].Equal(o.Edges[i]) {
			return false
		}
	}
	return true
}
func (p Path) Compare(other Value) (int, bool) { return 0, false }

// Length is the number of edges (hops) in the path.
func (p Path) Length() int { return len(p.Edges) }

// ContainsVertex reports whether vid already appears on the path, used by
// the noLoop variant of AllPaths.
func (p Path) ContainsVertex(vid string) bool {
	for _, v := range p.Vertices {
		if v.VID == vid {
			return true
		}
	}
	return false
}

// ContainsEdge reports whether an edge with the same identity already
// appears on the path (duplicate-edge rejection in AllPaths).
func (p Path) ContainsEdge(e Edge) bool {
	for _, existing := range p.Edges {
		if existing.Equal(e) {
			return true
		}
	}
	return false
}
