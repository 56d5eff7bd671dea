// Package optimizer implements the optimizer hook (C6): an identity
// transform over the plan DAG with one required side effect -- triggering
// scheduler.AnalyzeLifetimes before the plan is handed to the scheduler --
// plus the rule-based extension point left deliberately empty (cost-based
// optimization is a non-goal). Grounded on sql/analyzer's batch-of-rules
// shape, generalized to a single identity batch since no rule is
// registered here.
package optimizer

import (
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/scheduler"
)

// Rule is the extension point a cost-based pass would register against;
// none ship in this repo (§1 non-goal).
type Rule func(ep *plan.ExecutionPlan, qctx *gqlctx.Context) (*plan.ExecutionPlan, error)

var rules []Rule

// Register adds a rule to the optimization batch, applied in registration
// order after the identity pass.
func Register(r Rule) {
	rules = append(rules, r)
}

// Run applies every registered rule in order, then lifetime-analyzes the
// (possibly rewritten) plan so the scheduler knows which variables require
// append-only publication before any node executes.
func Run(ep *plan.ExecutionPlan, qctx *gqlctx.Context) (*plan.ExecutionPlan, error) {
	var err error
	for _, r := range rules {
		ep, err = r(ep, qctx)
		if err != nil {
			return nil, err
		}
	}
	scheduler.AnalyzeLifetimes(ep, qctx.SymTbl, qctx.ExecCtx)
	return ep, nil
}
