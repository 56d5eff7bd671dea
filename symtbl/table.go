// Package symtbl implements the symbol table and variable registry (C1):
// it names plan-produced datasets and tracks, for each one, its single
// producer and its set of readers, plus a lookup from plan-node id to
// node, scoped to one ExecutionPlan.
package symtbl

import (
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/plan"
)

// VarInfo is the registry's bookkeeping record for one variable: who
// produced it, who reads it, and the highest node id among its readers
// (kept up to date by BindReader).
type VarInfo struct {
	Name           string
	ProducerID     int64
	HasProducer    bool
	Readers        map[int64]bool
	LastUserNodeID int64
	// MultiVersion is set by scheduler.AnalyzeLifetimes when a reader needs
	// the variable's full history (Loop body, Join, ConjunctPath,
	// DataCollect, UnionAllVersionVar): the producer must append results
	// rather than overwrite in place.
	MultiVersion bool
}

// Table is the per-plan symbol table: name -> VarInfo, and node id -> node,
// both scoped to exactly one plan (I3).
type Table struct {
	vars  map[string]*VarInfo
	nodes map[int64]plan.Node
	anon  int
}

func New() *Table {
	return &Table{
		vars:  map[string]*VarInfo{},
		nodes: map[int64]plan.Node{},
	}
}

// NewVariable registers a variable. An empty name auto-generates one
// following the `__<NodeKind>_<id>` convention; a name already taken is a
// fail-duplicate error.
func (t *Table) NewVariable(name string, kindHint plan.Kind, nodeID int64) (*VarInfo, error) {
	if name == "" {
		t.anon++
		name = fmt.Sprintf("__%s_%d", kindHint, nodeID)
	}
	if _, exists := t.vars[name]; exists {
		return nil, fmt.Errorf("symtbl: duplicate variable %q", name)
	}
	v := &VarInfo{Name: name, Readers: map[int64]bool{}}
	t.vars[name] = v
	return v, nil
}

// BindProducer records node as the (sole) producer of var. Re-binding is
// only permitted before any read of var has been recorded (I1).
func (t *Table) BindProducer(varName string, nodeID int64) error {
	v, ok := t.vars[varName]
	if !ok {
		return fmt.Errorf("symtbl: unknown variable %q", varName)
	}
	if v.HasProducer && len(v.Readers) > 0 {
		return fmt.Errorf("symtbl: variable %q already has a producer and has been read", varName)
	}
	v.ProducerID = nodeID
	v.HasProducer = true
	return nil
}

// BindReader records that node reads var. Many-to-many, idempotent (I2:
// readers form a set).
func (t *Table) BindReader(varName string, nodeID int64) error {
	v, ok := t.vars[varName]
	if !ok {
		return fmt.Errorf("symtbl: unknown variable %q", varName)
	}
	v.Readers[nodeID] = true
	if nodeID > v.LastUserNodeID {
		v.LastUserNodeID = nodeID
	}
	return nil
}

// Resolve looks up a variable by name.
func (t *Table) Resolve(name string) (*VarInfo, bool) {
	v, ok := t.vars[name]
	return v, ok
}

// RegisterNode adds node to the plan-node-id registry (I3: every
// producer/reader referenced above must belong to this plan).
func (t *Table) RegisterNode(n plan.Node) {
	t.nodes[n.ID()] = n
}

func (t *Table) Node(id int64) (plan.Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Derivatives returns the transitive closure of readers of varName, as the
// output variable names of every node that (directly or through an
// intermediate variable) consumes it.
func (t *Table) Derivatives(varName string) []string {
	seen := map[string]bool{}
	var out []string
	var visit func(name string)
	visit = func(name string) {
		v, ok := t.vars[name]
		if !ok || seen[name] {
			return
		}
		seen[name] = true
		for nodeID := range v.Readers {
			n, ok := t.nodes[nodeID]
			if !ok {
				continue
			}
			out = append(out, n.OutputVar())
			visit(n.OutputVar())
		}
	}
	visit(varName)
	return out
}

// AllVariables returns every registered variable, for validation passes
// that need to check invariants across the whole table.
func (t *Table) AllVariables() map[string]*VarInfo {
	return t.vars
}
