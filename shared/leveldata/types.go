// Package leveldata parses Tiled (TMX) arena maps into the collision data the
// client uses to expire bullets against walls. It has no dependencies on
// donburi or resolv, pure data only.
package leveldata

// Arena holds the collision-relevant data of one arena map, in world units on
// the XZ plane. Map x maps to world X and map y maps to world Z; the map is
// centred on the world origin.
type Arena struct {
	Name   string
	Width  float64 // along X
	Depth  float64 // along Z
	Walls  []Rect
	Spawns []SpawnPoint
}

// Rect is an axis-aligned wall footprint. X and Z are the min corner.
type Rect struct {
	X, Z, W, D float64
}

// SpawnPoint is a marked spawn location in world units.
type SpawnPoint struct {
	X, Z  float64
	Index int
}

// MinX returns the arena's lowest X coordinate.
func (a *Arena) MinX() float64 { return -a.Width / 2 }

// MinZ returns the arena's lowest Z coordinate.
func (a *Arena) MinZ() float64 { return -a.Depth / 2 }

// Contains reports whether (x, z) lies inside the arena bounds.
func (a *Arena) Contains(x, z float64) bool {
	return x >= a.MinX() && x <= a.MinX()+a.Width &&
		z >= a.MinZ() && z <= a.MinZ()+a.Depth
}

// OpenArena returns a wall-less arena of the given size.
func OpenArena(width, depth float64) *Arena {
	return &Arena{Name: "open", Width: width, Depth: depth}
}
