// Package class composes class-like units out of plain member specifications.
//
// A Spec lists members (data values, methods, nested classes) and an ordered base list.
// DefineClass folds the base list into a single member table, merges the spec's own
// members onto it, applies class-level and member-level decorators and binds the result
// to a constructible *Class.
//
// Composition pipeline:
//  1. Resolve the base list left to right: an optional leading *Class seeds the table,
//     every other layer (*Trait, *Decorator, Transform) is applied to the accumulator
//  2. Merge own members, binding every overriding method to the implementation it shadows
//  3. Apply class-level decorators in declared order
//  4. Apply member-level decorators to the named members of the final table
//  5. Bind the table's "constructor" entry to the new *Class
//
// Methods receive a *Call frame. Call.Super invokes the shadowed implementation of the
// running method; frames are created per invocation, so concurrent calls on one instance
// never observe each other's super binding.
package class
