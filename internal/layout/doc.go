// Package layout implements the constraint-based layout solver.
//
// Containers arrange children along a single primary axis (Row or Column)
// or on a two-axis Grid. Non-expanding children take their natural size,
// clamped to [MinSize, MaxSize]; leftover space is split among expanding
// children proportionally to ExpandWeight using the largest-remainder
// method, so shares are sum-preserving and deterministic. Space that a
// clamp cannot absorb is not redistributed.
//
// The solver never fails: impossible allocations resolve to minimum sizes
// plus an Overflow flag, and oversized leaf content is flagged Truncated.
package layout
