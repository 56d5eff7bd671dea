// Package storage declares the partitioned storage-service interface
// consumed by graph-scan and DML executors (§6.1). Responses always carry
// a completeness percentage and a per-partition failure map, since the
// real service fans a request out to multiple partitions and merges
// results.
package storage

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// PartID identifies a storage partition (shard) within a space.
type PartID int32

// ErrorCode mirrors the original service's per-partition RPC status.
type ErrorCode int32

const (
	ErrorOK ErrorCode = iota
	ErrorPartNotFound
	ErrorKeyNotFound
	ErrorSpaceNotFound
)

// Response is the envelope every storage RPC returns: completeness in
// 0..100 and a map of partitions that failed outright.
type Response struct {
	Completeness int
	FailedParts  map[PartID]ErrorCode
}

func (r Response) AllFailed(totalParts int) bool {
	return totalParts > 0 && len(r.FailedParts) >= totalParts
}

type GetNeighborsRequest struct {
	Space       string
	Vertices    *dataset.DataSet // vid column
	EdgeTypes   []string
	Direction   int // 0=OUT 1=IN 2=BOTH, mirrors plan.Direction
	StatProps   []string
	VertexProps map[string][]string
	EdgeProps   map[string][]string
	Dedup       bool
	OrderBy     []string
	Limit       int64
	Filter      expreval.Expression
}

type GetNeighborsResponse struct {
	Response
	Vertices *dataset.DataSet // cols: _vertex, _edges
}

type GetPropRequest struct {
	Space  string
	Keys   *dataset.DataSet // vertices or edges, by IsEdge
	IsEdge bool
	Props  []string
	Dedup  bool
	Limit  int64
	Filter expreval.Expression
}

type GetPropResponse struct {
	Response
	Props *dataset.DataSet
}

type ExecResponse struct {
	Response
}

type LookupIndexRequest struct {
	Space         string
	SchemaID      int32
	IsEdge        bool
	ReturnColumns []string
}

type LookupIndexResponse struct {
	Response
	Data *dataset.DataSet
}

// VertexInsert is one tag's property row for InsertVertices.
type VertexInsert struct {
	VID   string
	Tag   string
	Props map[string]value.Value
}

type EdgeInsert struct {
	Src, Dst string
	Type     string
	Ranking  int64
	Props    map[string]value.Value
}

// Client is the storage service's consumed surface (§6.1). Concrete
// partitioning/serialization is out of scope (§1); storagefake.go
// implements this against an in-process boltdb store so executors have a
// real backing service to call.
type Client interface {
	GetNeighbors(ctx context.Context, req GetNeighborsRequest) (GetNeighborsResponse, error)
	GetProps(ctx context.Context, req GetPropRequest) (GetPropResponse, error)
	AddVertices(ctx context.Context, space string, vertices []VertexInsert, overwrite bool) (ExecResponse, error)
	AddEdges(ctx context.Context, space string, edges []EdgeInsert, overwrite bool) (ExecResponse, error)
	UpdateVertex(ctx context.Context, space, vid, tag string, set map[string]value.Value) (ExecResponse, error)
	UpdateEdge(ctx context.Context, space string, e EdgeInsert, set map[string]value.Value) (ExecResponse, error)
	DeleteVertices(ctx context.Context, space string, vids []string) (ExecResponse, error)
	DeleteEdges(ctx context.Context, space string, keys [][4]string) (ExecResponse, error)
	LookupIndex(ctx context.Context, req LookupIndexRequest) (LookupIndexResponse, error)
}
