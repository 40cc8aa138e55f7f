package binder

import "github.com/oxhq/tsgroundwork/internal/syntax"

// FlowNodeID addresses a FlowNode in a FlowGraph. NoFlow marks "no flow
// predecessor recorded" (used only for the sentinel at index 0); every
// reachable position in a bound file has a real, non-zero flow node.
type FlowNodeID int32

const NoFlow FlowNodeID = 0

// FlowKind discriminates the flow-node shapes spec.md's flow-graph
// construction enumerates: condition splits, loop back-edges, branch
// joins, assignments (the narrowing-relevant mutation a later reference
// must consult), switch-clause tests, suspension points, and the
// unreachable tombstone that throw/return transition into.
type FlowKind uint8

const (
	FlowStart FlowKind = iota
	FlowTrueCondition
	FlowFalseCondition
	FlowBranchLabel // join of two or more antecedents (if-join, switch-end)
	FlowLoopLabel   // loop head; Antecedent2 is the back-edge from the loop body's end
	FlowAssignment
	FlowSwitchClause
	FlowSuspend // await/yield point
	FlowUnreachable
)

// FlowNode is one node in the flow graph. Which fields are meaningful
// depends on Kind:
//   - FlowTrueCondition/FlowFalseCondition: Expr is the tested condition.
//   - FlowAssignment: Target is the assigned-to expression, Expr the
//     assigned value (NoNode for a plain reference narrowing like `typeof`
//     guards recorded elsewhere).
//   - FlowSwitchClause: Expr is the switch discriminant, Target the case
//     clause's test expression (NoNode for `default`).
//   - FlowBranchLabel/FlowLoopLabel: Antecedent2 holds the second/back
//     predecessor; a plain linear node leaves it NoFlow.
type FlowNode struct {
	Kind        FlowKind
	Antecedent  FlowNodeID
	Antecedent2 FlowNodeID
	Expr        syntax.NodeID
	Target      syntax.NodeID
}

// FlowGraph accumulates FlowNodes for one bound file. Node 0 is reserved
// so FlowNodeID's zero value (NoFlow) never aliases a real node.
type FlowGraph struct {
	nodes []FlowNode
}

func NewFlowGraph() *FlowGraph {
	return &FlowGraph{nodes: []FlowNode{{Kind: FlowUnreachable}}}
}

func (g *FlowGraph) add(n FlowNode) FlowNodeID {
	g.nodes = append(g.nodes, n)
	return FlowNodeID(len(g.nodes) - 1)
}

func (g *FlowGraph) Get(id FlowNodeID) FlowNode { return g.nodes[id] }

func (g *FlowGraph) Len() int32 { return int32(len(g.nodes)) }

// start appends a fresh FlowStart node with no antecedent, used once for
// each function body and for the file's top-level flow.
func (g *FlowGraph) start() FlowNodeID {
	return g.add(FlowNode{Kind: FlowStart})
}

// condition appends the true/false split for cond, returning both
// successor flow nodes in (true, false) order.
func (g *FlowGraph) condition(antecedent FlowNodeID, cond syntax.NodeID) (FlowNodeID, FlowNodeID) {
	t := g.add(FlowNode{Kind: FlowTrueCondition, Antecedent: antecedent, Expr: cond})
	f := g.add(FlowNode{Kind: FlowFalseCondition, Antecedent: antecedent, Expr: cond})
	return t, f
}

// join appends a branch label with two antecedents, the point where an
// if/else's two arms (or a switch's clauses) reconverge.
func (g *FlowGraph) join(a, b FlowNodeID) FlowNodeID {
	if a == NoFlow {
		return b
	}
	if b == NoFlow {
		return a
	}
	return g.add(FlowNode{Kind: FlowBranchLabel, Antecedent: a, Antecedent2: b})
}

// loopLabel appends a loop head; its back-edge (Antecedent2) is patched in
// by patchLoopBack once the loop body's exit flow is known, since the
// body is bound after the label is created.
func (g *FlowGraph) loopLabel(antecedent FlowNodeID) FlowNodeID {
	return g.add(FlowNode{Kind: FlowLoopLabel, Antecedent: antecedent})
}

func (g *FlowGraph) patchLoopBack(label, bodyExit FlowNodeID) {
	g.nodes[label].Antecedent2 = bodyExit
}

func (g *FlowGraph) assignment(antecedent FlowNodeID, target, value syntax.NodeID) FlowNodeID {
	return g.add(FlowNode{Kind: FlowAssignment, Antecedent: antecedent, Target: target, Expr: value})
}

func (g *FlowGraph) switchClause(antecedent FlowNodeID, discriminant, test syntax.NodeID) FlowNodeID {
	return g.add(FlowNode{Kind: FlowSwitchClause, Antecedent: antecedent, Expr: discriminant, Target: test})
}

func (g *FlowGraph) suspend(antecedent FlowNodeID, expr syntax.NodeID) FlowNodeID {
	return g.add(FlowNode{Kind: FlowSuspend, Antecedent: antecedent, Expr: expr})
}

func (g *FlowGraph) unreachable() FlowNodeID {
	return g.add(FlowNode{Kind: FlowUnreachable})
}
