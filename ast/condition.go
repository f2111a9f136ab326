package ast

import "fmt"

// ConditionKind distinguishes the non-lookaround condition shapes a
// Conditional node's Condition child can take when its Kind is
// KindConditionRef. A lookaround condition is instead a full KindGroup
// child (spec.md §4.5: "condition kinds restricted (group-ref, lookaround,
// DEFINE)").
type ConditionKind uint8

const (
	ConditionByIndex ConditionKind = iota
	ConditionByName
	ConditionRecursive      // (?(R)...)
	ConditionRecursiveGroup // (?(R&name)...)
	ConditionDefine         // (?(DEFINE)...)
)

// String returns a human-readable name for k.
func (k ConditionKind) String() string {
	switch k {
	case ConditionByIndex:
		return "ByIndex"
	case ConditionByName:
		return "ByName"
	case ConditionRecursive:
		return "Recursive"
	case ConditionRecursiveGroup:
		return "RecursiveGroup"
	case ConditionDefine:
		return "Define"
	default:
		return fmt.Sprintf("ConditionKind(%d)", uint8(k))
	}
}
