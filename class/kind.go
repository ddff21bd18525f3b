package class

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind tells the layer variants apart.
type Kind int

const (
	_ Kind = iota // zero value is an invalid kind

	KindClass
	KindTrait
	KindDecorator
	KindTransform

	// KindTotal is the number of kinds defined
	KindTotal = int(iota)
)
