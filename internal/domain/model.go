package domain

import "time"

// Model is a persisted entity addressable by a single integer identity.
type Model interface {
	TableName() string
	Identity() int64
}

// Patch applies a partial update to a loaded record. Absent fields are left untouched.
type Patch[T Model] interface {
	Apply(dst *T)
}

// Touchable records carry a modification_date that advances on every update.
type Touchable interface {
	Touch(now time.Time)
}

// AssociationPatch exposes collection associations to replace after the row is saved,
// keyed by gorm association name.
type AssociationPatch interface {
	Associations() map[string]any
}

// Variant is implemented by user specializations whose shared columns live
// on a users row with the same identity.
type Variant interface {
	Base() any
}
