package eos

import (
	"errors"
	"fmt"
)

// ErrUnknownKind indicates a model kind outside the closed 7-variant set.
var ErrUnknownKind = errors.New("eos: unknown model kind")

// Kind identifies one of the seven supported equation-of-state models.
// The zero value is Murnaghan.
type Kind int

const (
	// Murnaghan is the classic exponential-compression model.
	Murnaghan Kind = iota
	// BirchMurnaghan2 is the 2nd-order Birch-Murnaghan model (B0′ fixed at 4).
	BirchMurnaghan2
	// BirchMurnaghan3 is the 3rd-order Birch-Murnaghan model, the default for
	// high-pressure diffraction work and the target of the linearized fitter.
	BirchMurnaghan3
	// BirchMurnaghan4 is the 4th-order Birch-Murnaghan model with a B0″ term.
	BirchMurnaghan4
	// Vinet is the universal (Vinet) equation of state.
	Vinet
	// Tait is the Tait model; it reduces exactly to Murnaghan as B0″ → 0.
	Tait
	// NaturalStrain is the Poirier-Tarantola (natural strain) model.
	NaturalStrain

	numKinds
)

// kindNames are the display names used by the surrounding suite; ParseKind
// accepts exactly these strings.
var kindNames = [numKinds]string{
	Murnaghan:       "Murnaghan",
	BirchMurnaghan2: "Birch-Murnaghan 2nd order",
	BirchMurnaghan3: "Birch-Murnaghan 3rd order",
	BirchMurnaghan4: "Birch-Murnaghan 4th order",
	Vinet:           "Vinet",
	Tait:            "Tait",
	NaturalStrain:   "Natural Strain",
}

// Valid reports whether k is one of the seven supported kinds.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

// String returns the display name of the model kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// NumParams returns the length of the model's native parameter vector:
// 2 for BM2 (V0, B0), 4 for BM4 (V0, B0, B0′, B0″), 3 for everything else.
func (k Kind) NumParams() int {
	switch k {
	case BirchMurnaghan2:
		return 2
	case BirchMurnaghan4:
		return 4
	default:
		return 3
	}
}

// ParseKind resolves a display name back to its Kind.
// Returns ErrUnknownKind for anything outside the closed set.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
