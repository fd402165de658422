package possync

// EntityKind identifies a catalog entity kind shared by both systems
type EntityKind string

const (
	KindCategory   EntityKind = "category"
	KindProduct    EntityKind = "product"
	KindSubproduct EntityKind = "subproduct"
)

// String returns the string representation of EntityKind
func (k EntityKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a known value
func (k EntityKind) IsValid() bool {
	switch k {
	case KindCategory, KindProduct, KindSubproduct:
		return true
	default:
		return false
	}
}

// Direction controls which halves of the reconciliation run
type Direction string

const (
	DirectionOff  Direction = "off"
	DirectionPush Direction = "push"
	DirectionPull Direction = "pull"
	DirectionBoth Direction = "both"
)

// IsValid returns true if the direction is a known value
func (d Direction) IsValid() bool {
	switch d {
	case DirectionOff, DirectionPush, DirectionPull, DirectionBoth:
		return true
	default:
		return false
	}
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// ShouldPush returns true if local changes flow to the POS
func (d Direction) ShouldPush() bool {
	return d == DirectionPush || d == DirectionBoth
}

// ShouldPull returns true if POS changes flow back to the local store
func (d Direction) ShouldPull() bool {
	return d == DirectionPull || d == DirectionBoth
}
