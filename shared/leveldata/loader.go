package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	wallsGroup  = "Walls"
	spawnsGroup = "PlayerSpawn"
)

// LoadArena parses a TMX file into an Arena. Walls come from rectangle
// objects in the "Walls" object group; spawn markers from "PlayerSpawn".
// unitsPerPixel converts Tiled pixels into world units. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
func LoadArena(fsys fs.FS, tmxPath string, unitsPerPixel float64) (*Arena, error) {
	if unitsPerPixel <= 0 {
		return nil, fmt.Errorf("load TMX %s: unitsPerPixel must be > 0", tmxPath)
	}
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	arena := &Arena{
		Name:  strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width: float64(levelMap.Width*levelMap.TileWidth) * unitsPerPixel,
		Depth: float64(levelMap.Height*levelMap.TileHeight) * unitsPerPixel,
	}
	if arena.Width <= 0 || arena.Depth <= 0 {
		return nil, fmt.Errorf("load TMX %s: empty map", tmxPath)
	}
	originX := arena.MinX()
	originZ := arena.MinZ()

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case wallsGroup:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				arena.Walls = append(arena.Walls, Rect{
					X: originX + o.X*unitsPerPixel,
					Z: originZ + o.Y*unitsPerPixel,
					W: o.Width * unitsPerPixel,
					D: o.Height * unitsPerPixel,
				})
			}
		case spawnsGroup:
			for _, o := range og.Objects {
				arena.Spawns = append(arena.Spawns, SpawnPoint{
					X:     originX + o.X*unitsPerPixel,
					Z:     originZ + o.Y*unitsPerPixel,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	sort.Slice(arena.Spawns, func(i, j int) bool {
		return arena.Spawns[i].Index < arena.Spawns[j].Index
	})

	return arena, nil
}

// LoadAllArenas discovers all .tmx files in dir within fsys and loads them,
// returning a map keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string, unitsPerPixel float64) (map[string]*Arena, []string, error) {
	pattern := path.Join(dir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*Arena, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		a, err := LoadArena(fsys, m, unitsPerPixel)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", m, err)
		}
		arenas[a.Name] = a
		names = append(names, a.Name)
	}

	sort.Strings(names)
	return arenas, names, nil
}

// LoadArenaDir loads every arena in dir and returns the one named name, or
// the first by name when name is empty.
func LoadArenaDir(fsys fs.FS, dir, name string, unitsPerPixel float64) (*Arena, error) {
	arenas, names, err := LoadAllArenas(fsys, dir, unitsPerPixel)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return arenas[names[0]], nil
	}
	a, ok := arenas[name]
	if !ok {
		return nil, fmt.Errorf("arena %q not found in %s (have %s)", name, dir, strings.Join(names, ", "))
	}
	return a, nil
}
