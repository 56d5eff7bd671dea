package storage

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sync"
	"time"

	"github.com/boltdb/bolt"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

var (
	bucketVertices = []byte("vertices")
	bucketEdges    = []byte("edges")
)

// gobVertex/gobEdge are plain, gob-friendly mirrors of value.Vertex/Edge
// (gob can't encode the Value interface directly without registering every
// concrete variant, so the fake stores property maps as string-keyed
// primitives instead -- a simplification acceptable for an in-process
// reference backend, not the real wire format).
type gobVertex struct {
	VID  string
	Tags map[string]map[string]string
}

type gobEdge struct {
	Src, Dst string
	Type     string
	Ranking  int64
	Props    map[string]string
}

// Fake is an in-process storage.Client backed by boltdb: one logical
// partition, completeness always 100, whether or not the space exists.
type Fake struct {
	mu sync.Mutex
	db *bolt.DB
}

func NewFake(path string) (*Fake, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketVertices, bucketEdges} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Fake{db: db}, nil
}

func (f *Fake) Close() error { return f.db.Close() }

func toStringProps(props map[string]value.Value) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v.String()
	}
	return out
}

func fromStringProps(props map[string]string) map[string]value.Value {
	out := make(map[string]value.Value, len(props))
	for k, v := range props {
		out[k] = value.Str(v)
	}
	return out
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func edgeKey(space string, e EdgeInsert) []byte {
	return []byte(fmt.Sprintf("%s/%s/%s/%d/%s", space, e.Src, e.Type, e.Ranking, e.Dst))
}

func (f *Fake) AddVertices(ctx context.Context, space string, vertices []VertexInsert, overwrite bool) (ExecResponse, error) {
	err := f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVertices)
		for _, v := range vertices {
			key := []byte(space + "/" + v.VID)
			var gv gobVertex
			if data := b.Get(key); data != nil {
				if err := decode(data, &gv); err != nil {
					return err
				}
			} else {
				gv = gobVertex{VID: v.VID, Tags: map[string]map[string]string{}}
			}
			if !overwrite {
				if _, exists := gv.Tags[v.Tag]; exists {
					continue
				}
			}
			gv.Tags[v.Tag] = toStringProps(v.Props)
			data, err := encode(gv)
			if err != nil {
				return err
			}
			if err := b.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
	return ExecResponse{Response{Completeness: 100}}, err
}

func (f *Fake) AddEdges(ctx context.Context, space string, edges []EdgeInsert, overwrite bool) (ExecResponse, error) {
	err := f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEdges)
		for _, e := range edges {
			key := edgeKey(space, e)
			if !overwrite && b.Get(key) != nil {
				continue
			}
			ge := gobEdge{Src: e.Src, Dst: e.Dst, Type: e.Type, Ranking: e.Ranking, Props: toStringProps(e.Props)}
			data, err := encode(ge)
			if err != nil {
				return err
			}
			if err := b.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
	return ExecResponse{Response{Completeness: 100}}, err
}

func (f *Fake) UpdateVertex(ctx context.Context, space, vid, tag string, set map[string]value.Value) (ExecResponse, error) {
	err := f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVertices)
		key := []byte(space + "/" + vid)
		var gv gobVertex
		if data := b.Get(key); data != nil {
			if err := decode(data, &gv); err != nil {
				return err
			}
		} else {
			gv = gobVertex{VID: vid, Tags: map[string]map[string]string{}}
		}
		if gv.Tags[tag] == nil {
			gv.Tags[tag] = map[string]string{}
		}
		for k, v := range set {
			gv.Tags[tag][k] = v.String()
		}
		data, err := encode(gv)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
	return ExecResponse{Response{Completeness: 100}}, err
}

func (f *Fake) UpdateEdge(ctx context.Context, space string, e EdgeInsert, set map[string]value.Value) (ExecResponse, error) {
	err := f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEdges)
		key := edgeKey(space, e)
		var ge gobEdge
		if data := b.Get(key); data != nil {
			if err := decode(data, &ge); err != nil {
				return err
			}
		} else {
			ge = gobEdge{Src: e.Src, Dst: e.Dst, Type: e.Type, Ranking: e.Ranking, Props: map[string]string{}}
		}
		for k, v := range set {
			ge.Props[k] = v.String()
		}
		data, err := encode(ge)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
	return ExecResponse{Response{Completeness: 100}}, err
}

func (f *Fake) DeleteVertices(ctx context.Context, space string, vids []string) (ExecResponse, error) {
	err := f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVertices)
		for _, vid := range vids {
			if err := b.Delete([]byte(space + "/" + vid)); err != nil {
				return err
			}
		}
		return nil
	})
	return ExecResponse{Response{Completeness: 100}}, err
}

func (f *Fake) DeleteEdges(ctx context.Context, space string, keys [][4]string) (ExecResponse, error) {
	err := f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEdges)
		for _, k := range keys {
			ei := EdgeInsert{Src: k[0], Type: k[1], Dst: k[3]}
			fmt.Sscanf(k[2], "%d", &ei.Ranking)
			if err := b.Delete(edgeKey(space, ei)); err != nil {
				return err
			}
		}
		return nil
	})
	return ExecResponse{Response{Completeness: 100}}, err
}

func (f *Fake) GetNeighbors(ctx context.Context, req GetNeighborsRequest) (GetNeighborsResponse, error) {
	edgeTypeSet := map[string]bool{}
	for _, t := range req.EdgeTypes {
		edgeTypeSet[t] = true
	}
	rows := make([]dataset.Row, 0, len(req.Vertices.Rows))
	err := f.db.View(func(tx *bolt.Tx) error {
		vb := tx.Bucket(bucketVertices)
		eb := tx.Bucket(bucketEdges)
		for _, row := range req.Vertices.Rows {
			if len(row) == 0 {
				continue
			}
			vid := row[0].String()
			src := loadVertex(vb, req.Space, vid)
			var edges []value.Value
			prefix := []byte(req.Space + "/" + vid + "/")
			c := eb.Cursor()
			for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
				var ge gobEdge
				if err := decode(v, &ge); err != nil {
					return err
				}
				if len(edgeTypeSet) > 0 && !edgeTypeSet[ge.Type] {
					continue
				}
				edges = append(edges, value.Edge{Src: ge.Src, Dst: ge.Dst, Type: ge.Type, Ranking: ge.Ranking, Props: fromStringProps(ge.Props)})
			}
			rows = append(rows, dataset.NewRow(src, value.NewList(edges...)))
		}
		return nil
	})
	if err != nil {
		return GetNeighborsResponse{}, err
	}
	return GetNeighborsResponse{
		Response: Response{Completeness: 100},
		Vertices: dataset.New([]string{"_vertex", "_edges"}, rows),
	}, nil
}

func loadVertex(b *bolt.Bucket, space, vid string) value.Vertex {
	data := b.Get([]byte(space + "/" + vid))
	if data == nil {
		return value.Vertex{VID: vid, Tags: map[string]map[string]value.Value{}}
	}
	var gv gobVertex
	if err := decode(data, &gv); err != nil {
		return value.Vertex{VID: vid, Tags: map[string]map[string]value.Value{}}
	}
	tags := make(map[string]map[string]value.Value, len(gv.Tags))
	for tag, props := range gv.Tags {
		tags[tag] = fromStringProps(props)
	}
	return value.Vertex{VID: vid, Tags: tags}
}

func (f *Fake) GetProps(ctx context.Context, req GetPropRequest) (GetPropResponse, error) {
	var rows []dataset.Row
	colName := "_vertex"
	if req.IsEdge {
		colName = "_edge"
	}
	err := f.db.View(func(tx *bolt.Tx) error {
		if req.IsEdge {
			eb := tx.Bucket(bucketEdges)
			for _, row := range req.Keys.Rows {
				e, ok := row[0].(value.Edge)
				if !ok {
					continue
				}
				key := edgeKey(req.Space, EdgeInsert{Src: e.Src, Dst: e.Dst, Type: e.Type, Ranking: e.Ranking})
				data := eb.Get(key)
				if data == nil {
					continue
				}
				var ge gobEdge
				if err := decode(data, &ge); err != nil {
					return err
				}
				rows = append(rows, dataset.NewRow(value.Edge{Src: ge.Src, Dst: ge.Dst, Type: ge.Type, Ranking: ge.Ranking, Props: fromStringProps(ge.Props)}))
			}
			return nil
		}
		vb := tx.Bucket(bucketVertices)
		for _, row := range req.Keys.Rows {
			vid := row[0].String()
			rows = append(rows, dataset.NewRow(loadVertex(vb, req.Space, vid)))
		}
		return nil
	})
	if err != nil {
		return GetPropResponse{}, err
	}
	return GetPropResponse{Response: Response{Completeness: 100}, Props: dataset.New([]string{colName}, rows)}, nil
}

func (f *Fake) LookupIndex(ctx context.Context, req LookupIndexRequest) (LookupIndexResponse, error) {
	var rows []dataset.Row
	err := f.db.View(func(tx *bolt.Tx) error {
		if req.IsEdge {
			return tx.Bucket(bucketEdges).ForEach(func(k, v []byte) error {
				var ge gobEdge
				if err := decode(v, &ge); err != nil {
					return err
				}
				rows = append(rows, dataset.NewRow(value.Edge{Src: ge.Src, Dst: ge.Dst, Type: ge.Type, Ranking: ge.Ranking, Props: fromStringProps(ge.Props)}))
				return nil
			})
		}
		return tx.Bucket(bucketVertices).ForEach(func(k, v []byte) error {
			var gv gobVertex
			if err := decode(v, &gv); err != nil {
				return err
			}
			tags := make(map[string]map[string]value.Value, len(gv.Tags))
			for tag, props := range gv.Tags {
				tags[tag] = fromStringProps(props)
			}
			rows = append(rows, dataset.NewRow(value.Vertex{VID: gv.VID, Tags: tags}))
			return nil
		})
	})
	if err != nil {
		return LookupIndexResponse{}, err
	}
	colName := "_vertex"
	if req.IsEdge {
		colName = "_edge"
	}
	return LookupIndexResponse{Response: Response{Completeness: 100}, Data: dataset.New([]string{colName}, rows)}, nil
}

var _ Client = (*Fake)(nil)
