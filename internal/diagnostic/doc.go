// Package diagnostic provides structured errors, warnings and notes produced while a
// composition manifest is checked.
//
// Every diagnostic carries a stable code, the subject (class, trait, decorator or proxy)
// it concerns and, where relevant, the member or list entry at fault. Callers collect
// diagnostics first and decide afterwards whether the manifest is usable.
package diagnostic
