// Package seq implements the slot storage behind composite containers.
//
// A [Seq] is an ordered sequence of [Elem] pointers. The pointer identity of an
// element does not change when other elements are inserted or removed, which
// lets a traversal cursor anchor on an element and re-derive its live position
// after the caller mutated the sequence between two steps.
//
// # Out-of-range Policy
//
// Seq never decides what an out-of-range index means. Mutating methods report
// whether they applied and the owning container chooses the policy: the tree
// logs an error, the flat collection prepends on negative inserts and ignores
// inserts past the end. The two policies stay separate on purpose.
//
// # Key Types
//
//   - [Seq]: the ordered element sequence
//   - [Elem]: a stable slot holding one value
package seq
