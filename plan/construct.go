package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// Constructors below wire base/singleInput/biInput fields that are
// otherwise unexported, so validate/planner build nodes through these
// rather than struct literals.

func NewStart(id int64, outputVar string) *Start {
	return &Start{noInput{base{id: id, kind: KindStart, outputVar: outputVar}}}
}

func newSingle(id int64, kind Kind, outputVar string, dep Node, inputVar string) singleInput {
	return singleInput{base: base{id: id, kind: kind, outputVar: outputVar}, dep: dep, inputVar: inputVar}
}

func newBi(id int64, kind Kind, outputVar string, left, right Node, leftVar, rightVar string) biInput {
	return biInput{base: base{id: id, kind: kind, outputVar: outputVar}, left: left, right: right, leftVar: leftVar, rightVar: rightVar}
}

func NewGetNeighbors(id int64, outputVar string, dep Node, inputVar string, srcExpr expreval.Expression, edgeTypes []string, dir Direction) *GetNeighbors {
	return &GetNeighbors{
		base:      base{id: id, kind: KindGetNeighbors, outputVar: outputVar, colNames: []string{"_vertex", "_edges"}},
		dep:       dep,
		inputVar:  inputVar,
		SrcExpr:   srcExpr,
		EdgeTypes: edgeTypes,
		Direction: dir,
	}
}

func NewGetVertices(id int64, outputVar string, dep Node, inputVar string, vidExpr expreval.Expression) *GetVertices {
	return &GetVertices{singleInput: newSingle(id, KindGetVertices, outputVar, dep, inputVar), VidExpr: vidExpr}
}

func NewGetEdges(id int64, outputVar string, dep Node, inputVar string, edgeType string, keyExpr expreval.Expression) *GetEdges {
	return &GetEdges{singleInput: newSingle(id, KindGetEdges, outputVar, dep, inputVar), EdgeType: edgeType, KeyExpr: keyExpr}
}

func NewIndexScan(id int64, outputVar string, dep Node, inputVar string, schemaID int64, isEdge bool) *IndexScan {
	return &IndexScan{singleInput: newSingle(id, KindIndexScan, outputVar, dep, inputVar), SchemaID: schemaID, IsEdge: isEdge}
}

func NewProject(id int64, outputVar string, dep Node, inputVar string, cols []YieldColumn) *Project {
	colNames := make([]string, len(cols))
	for i, c := range cols {
		colNames[i] = c.Alias
	}
	p := &Project{singleInput: newSingle(id, KindProject, outputVar, dep, inputVar), Columns: cols}
	p.colNames = colNames
	return p
}

func NewFilter(id int64, outputVar string, dep Node, inputVar string, pred expreval.Expression) *Filter {
	f := &Filter{singleInput: newSingle(id, KindFilter, outputVar, dep, inputVar), Predicate: pred}
	f.colNames = dep.ColNames()
	return f
}

func NewSort(id int64, outputVar string, dep Node, inputVar string, keys []OrderTerm) *Sort {
	s := &Sort{singleInput: newSingle(id, KindSort, outputVar, dep, inputVar), Keys: keys}
	s.colNames = dep.ColNames()
	return s
}

func NewLimit(id int64, outputVar string, dep Node, inputVar string, offset, count int64) *Limit {
	l := &Limit{singleInput: newSingle(id, KindLimit, outputVar, dep, inputVar), Offset: offset, Count: count}
	l.colNames = dep.ColNames()
	return l
}

func NewTopN(id int64, outputVar string, dep Node, inputVar string, keys []OrderTerm, offset, count int64) *TopN {
	t := &TopN{singleInput: newSingle(id, KindTopN, outputVar, dep, inputVar), Keys: keys, Offset: offset, Count: count}
	t.colNames = dep.ColNames()
	return t
}

func NewDedup(id int64, outputVar string, dep Node, inputVar string) *Dedup {
	d := &Dedup{singleInput: newSingle(id, KindDedup, outputVar, dep, inputVar)}
	d.colNames = dep.ColNames()
	return d
}

func NewAggregate(id int64, outputVar string, dep Node, inputVar string, groupKeys []expreval.Expression, items []GroupItem) *Aggregate {
	colNames := make([]string, len(items))
	for i, it := range items {
		colNames[i] = it.Alias
	}
	a := &Aggregate{singleInput: newSingle(id, KindAggregate, outputVar, dep, inputVar), GroupKeys: groupKeys, GroupItems: items}
	a.colNames = colNames
	return a
}

func NewUnwind(id int64, outputVar string, dep Node, inputVar string, listExpr expreval.Expression, alias string) *Unwind {
	u := &Unwind{singleInput: newSingle(id, KindUnwind, outputVar, dep, inputVar), ListExpr: listExpr, Alias: alias}
	u.colNames = append(append([]string{}, dep.ColNames()...), alias)
	return u
}

func NewUnion(id int64, outputVar string, left, right Node, leftVar, rightVar string) *Union {
	u := &Union{biInput: newBi(id, KindUnion, outputVar, left, right, leftVar, rightVar)}
	u.colNames = left.ColNames()
	return u
}

func NewIntersect(id int64, outputVar string, left, right Node, leftVar, rightVar string) *Intersect {
	n := &Intersect{biInput: newBi(id, KindIntersect, outputVar, left, right, leftVar, rightVar)}
	n.colNames = left.ColNames()
	return n
}

func NewMinus(id int64, outputVar string, left, right Node, leftVar, rightVar string) *Minus {
	n := &Minus{biInput: newBi(id, KindMinus, outputVar, left, right, leftVar, rightVar)}
	n.colNames = left.ColNames()
	return n
}

func NewInnerJoin(id int64, outputVar string, left, right Node, leftSide, rightSide JoinSide, hashKeys, probeKeys []expreval.Expression) *InnerJoin {
	j := &InnerJoin{
		biInput:   newBi(id, KindInnerJoin, outputVar, left, right, leftSide.Var, rightSide.Var),
		LeftSide:  leftSide,
		RightSide: rightSide,
		HashKeys:  hashKeys,
		ProbeKeys: probeKeys,
	}
	j.colNames = append(append([]string{}, left.ColNames()...), right.ColNames()...)
	return j
}

func NewLeftJoin(id int64, outputVar string, left, right Node, leftSide, rightSide JoinSide, hashKeys, probeKeys []expreval.Expression) *LeftJoin {
	j := &LeftJoin{
		biInput:   newBi(id, KindLeftJoin, outputVar, left, right, leftSide.Var, rightSide.Var),
		LeftSide:  leftSide,
		RightSide: rightSide,
		HashKeys:  hashKeys,
		ProbeKeys: probeKeys,
	}
	j.colNames = append(append([]string{}, left.ColNames()...), right.ColNames()...)
	return j
}

func NewSelect(id int64, outputVar string, dep Node, inputVar string, cond expreval.Expression, then, els Node) *Select {
	return &Select{singleInput: newSingle(id, KindSelect, outputVar, dep, inputVar), Condition: cond, Then: then, Else: els}
}

func NewLoop(id int64, outputVar string, dep Node, inputVar string, cond expreval.Expression, body Node) *Loop {
	return &Loop{singleInput: newSingle(id, KindLoop, outputVar, dep, inputVar), Condition: cond, Body: body}
}

func NewAssign(id int64, outputVar string, dep Node, inputVar, varName string, expr expreval.Expression) *Assign {
	return &Assign{singleInput: newSingle(id, KindAssign, outputVar, dep, inputVar), Var: varName, Expr: expr}
}

func NewPassThrough(id int64, outputVar string, dep Node, inputVar string) *PassThrough {
	p := &PassThrough{singleInput: newSingle(id, KindPassThrough, outputVar, dep, inputVar)}
	if dep != nil {
		p.colNames = dep.ColNames()
	}
	return p
}

func NewMultiOutputs(id int64, outputVar string, dep Node, inputVar string) *MultiOutputs {
	m := &MultiOutputs{singleInput: newSingle(id, KindMultiOutputs, outputVar, dep, inputVar)}
	if dep != nil {
		m.colNames = dep.ColNames()
	}
	return m
}

func NewSwitchSpace(id int64, outputVar string, dep Node, spaceName string) *SwitchSpace {
	return &SwitchSpace{adminNode{newSingle(id, KindSwitchSpace, outputVar, dep, "")}, spaceName}
}
