package geom

// ReflectorType is one of the two diagonal mirror orientations.
type ReflectorType uint8

const (
	// Backslash connects the up/left corner to the down/right corner ("\").
	Backslash ReflectorType = iota
	// Slash connects the up/right corner to the down/left corner ("/").
	Slash
)

// String returns the mirror glyph.
func (t ReflectorType) String() string {
	if t == Slash {
		return "/"
	}
	return "\\"
}

// reflectTable is the only physics rule in the game. It is table-driven
// rather than computed from angles so results are exact and reproducible.
var reflectTable = [2][4]Dir{
	Backslash: {
		DirUp:    DirLeft,
		DirRight: DirDown,
		DirDown:  DirRight,
		DirLeft:  DirUp,
	},
	Slash: {
		DirUp:    DirRight,
		DirRight: DirUp,
		DirDown:  DirLeft,
		DirLeft:  DirDown,
	},
}

// Reflect returns the outgoing direction for a beam hitting a mirror of the
// given type while travelling in the incoming direction.
func Reflect(t ReflectorType, in Dir) Dir {
	return reflectTable[t][in]
}

// ReflectorTypes lists both orientations, in a stable order.
func ReflectorTypes() [2]ReflectorType {
	return [2]ReflectorType{Backslash, Slash}
}
