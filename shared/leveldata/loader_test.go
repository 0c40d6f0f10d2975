package leveldata

import (
	"testing"
	"testing/fstest"
)

const courtyardTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="8" height="4" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="4">
 <objectgroup id="1" name="Walls">
  <object id="1" x="0" y="0" width="128" height="16"/>
  <object id="2" x="32" y="32" width="16" height="16"/>
 </objectgroup>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="3" x="64" y="32">
   <properties>
    <property name="spawnIndex" type="int" value="1"/>
   </properties>
  </object>
 </objectgroup>
</map>
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"arenas/courtyard.tmx": &fstest.MapFile{Data: []byte(courtyardTMX)},
	}
}

func TestLoadArena(t *testing.T) {
	a, err := LoadArena(testFS(), "arenas/courtyard.tmx", 1.0/16)
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if a.Name != "courtyard" {
		t.Fatalf("Name = %q", a.Name)
	}
	if a.Width != 8 || a.Depth != 4 {
		t.Fatalf("size = %vx%v, want 8x4", a.Width, a.Depth)
	}
	if len(a.Walls) != 2 {
		t.Fatalf("walls = %d, want 2", len(a.Walls))
	}
	if got := a.Walls[0]; got != (Rect{X: -4, Z: -2, W: 8, D: 1}) {
		t.Fatalf("wall[0] = %+v", got)
	}
	if got := a.Walls[1]; got != (Rect{X: -2, Z: 0, W: 1, D: 1}) {
		t.Fatalf("wall[1] = %+v", got)
	}
	if len(a.Spawns) != 1 || a.Spawns[0].Index != 1 || a.Spawns[0].X != 0 || a.Spawns[0].Z != 0 {
		t.Fatalf("spawns = %+v", a.Spawns)
	}
}

func TestLoadArenaErrors(t *testing.T) {
	if _, err := LoadArena(testFS(), "arenas/missing.tmx", 1); err == nil {
		t.Fatalf("missing file should fail")
	}
	if _, err := LoadArena(testFS(), "arenas/courtyard.tmx", 0); err == nil {
		t.Fatalf("zero scale should fail")
	}
}

func TestLoadAllArenas(t *testing.T) {
	arenas, names, err := LoadAllArenas(testFS(), "arenas", 1.0/16)
	if err != nil {
		t.Fatalf("LoadAllArenas: %v", err)
	}
	if len(names) != 1 || names[0] != "courtyard" || arenas["courtyard"] == nil {
		t.Fatalf("names = %v", names)
	}
	if _, _, err := LoadAllArenas(testFS(), "empty", 1); err == nil {
		t.Fatalf("empty dir should fail")
	}
}

func TestLoadArenaDir(t *testing.T) {
	fsys := fstest.MapFS{"courtyard.tmx": &fstest.MapFile{Data: []byte(courtyardTMX)}}

	a, err := LoadArenaDir(fsys, ".", "", 1.0/16)
	if err != nil {
		t.Fatalf("LoadArenaDir: %v", err)
	}
	if a.Name != "courtyard" || len(a.Walls) != 2 {
		t.Fatalf("arena = %+v", a)
	}
	if a, err := LoadArenaDir(testFS(), "arenas", "courtyard", 1.0/16); err != nil || a.Name != "courtyard" {
		t.Fatalf("named load = %v, %v", a, err)
	}
	if _, err := LoadArenaDir(fsys, ".", "missing", 1.0/16); err == nil {
		t.Fatalf("unknown arena name should fail")
	}
}

func TestArenaContains(t *testing.T) {
	a := OpenArena(10, 20)
	if !a.Contains(0, 0) || !a.Contains(-5, 10) {
		t.Fatalf("points inside reported outside")
	}
	if a.Contains(5.1, 0) || a.Contains(0, -10.5) {
		t.Fatalf("points outside reported inside")
	}
}
