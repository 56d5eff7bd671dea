package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

func NewBFSShortestPath(id int64, outputVar string, dep Node, inputVar string, from, to expreval.Expression, edgeTypes []string, maxSteps int64) *BFSShortestPath {
	n := &BFSShortestPath{
		singleInput: newSingle(id, KindBFSShortestPath, outputVar, dep, inputVar),
		FromExpr:    from,
		ToExpr:      to,
		EdgeTypes:   edgeTypes,
		MaxSteps:    maxSteps,
	}
	n.colNames = []string{"path"}
	return n
}

func NewProduceAllPaths(id int64, outputVar string, dep Node, inputVar string, maxSteps int64, noLoop bool) *ProduceAllPaths {
	n := &ProduceAllPaths{singleInput: newSingle(id, KindProduceAllPaths, outputVar, dep, inputVar), MaxSteps: maxSteps, NoLoop: noLoop}
	n.colNames = []string{"path"}
	return n
}

func NewProduceSemiShortestPath(id int64, outputVar string, dep Node, inputVar string, weightProp string) *ProduceSemiShortestPath {
	n := &ProduceSemiShortestPath{singleInput: newSingle(id, KindProduceSemiShortestPath, outputVar, dep, inputVar), WeightProp: weightProp}
	n.colNames = []string{"src", "dst", "cost", "path"}
	return n
}

func NewConjunctPath(id int64, outputVar string, left, right Node, leftVar, rightVar string, kind ConjunctPathKind, maxSteps int64) *ConjunctPath {
	n := &ConjunctPath{biInput: newBi(id, KindConjunctPath, outputVar, left, right, leftVar, rightVar), PathKind: kind, MaxSteps: maxSteps}
	n.colNames = []string{"path"}
	return n
}

func NewSubgraph(id int64, outputVar string, dep Node, inputVar string, steps int64, edgeTypes []string, filter expreval.Expression) *Subgraph {
	n := &Subgraph{singleInput: newSingle(id, KindSubgraph, outputVar, dep, inputVar), Steps: steps, EdgeTypes: edgeTypes, Filter: filter}
	n.colNames = []string{"vertices", "edges"}
	return n
}

func NewCartesianProduct(id int64, outputVar string, left, right Node, leftVar, rightVar string) *CartesianProduct {
	n := &CartesianProduct{biInput: newBi(id, KindCartesianProduct, outputVar, left, right, leftVar, rightVar)}
	n.colNames = append(append([]string{}, left.ColNames()...), right.ColNames()...)
	return n
}
