// Package manifest loads declarative composition manifests and builds the classes,
// traits, decorators and proxies they describe.
//
// A manifest is a YAML document:
//
//	version: "1"
//	decorators:
//	  - name: quiet
//	    use: suppress
//	    where: [m]
//	    options: {fallback: err}
//	traits:
//	  - name: Mix
//	    members:
//	      tm: {method: mixTm}
//	classes:
//	  - name: A
//	    base: [Base, Mix]
//	    constructor: aInit
//	    members:
//	      f: 1
//	      m: {method: aM}
//	      area: {abstract: true}
//	      N: {class: {members: {m: {method: nM}}}}
//	    member_decorators:
//	      m: [quiet]
//	proxies:
//	  - name: AProxy
//	    of: A
//
// Method bodies, registered decorators and whole-table transforms are Go code; the
// manifest refers to them by name through a Registry. Base and decorator lists name
// other manifest entries (classes, traits, derived decorators, proxies) or registry
// entries (decorators, transforms).
//
// Validate reports structural problems as diagnostics without building anything.
// Build validates, orders the entries by dependency and defines them.
package manifest
