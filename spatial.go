package main

import "math"

// SpatialCellSize is ~2.5x the default tank radius
const SpatialCellSize = 250.0

// SpatialRecord is what the broad phase stores and returns per entity
type SpatialRecord struct {
	ID     ID
	Box    Box
	Radius float32
}

// Center returns the center of the stored circle
func (r SpatialRecord) Center() Vec2 {
	return Vec2{r.Box.X + r.Radius, r.Box.Y + r.Radius}
}

type spatialEntry struct {
	rec          SpatialRecord
	minCX, minCY int
	maxCX, maxCY int
	stamp        uint64
}

// SpatialIndex is a uniform grid for broad-phase collision queries. Entries
// live across ticks and are moved in place when their box changes. Anything
// outside the world is clamped into the edge cells.
type SpatialIndex struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]*spatialEntry
	entries  map[ID]*spatialEntry
	stamp    uint64
}

// NewSpatialIndex creates a grid covering width x height
func NewSpatialIndex(width, height float32) *SpatialIndex {
	cols := int(math.Ceil(float64(width/SpatialCellSize))) + 1
	rows := int(math.Ceil(float64(height/SpatialCellSize))) + 1
	return &SpatialIndex{
		cellSize: SpatialCellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]*spatialEntry, cols*rows),
		entries:  make(map[ID]*spatialEntry),
	}
}

func (g *SpatialIndex) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialIndex) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}

// cellRange returns the inclusive cell span a box overlaps
func (g *SpatialIndex) cellRange(b Box) (minCX, minCY, maxCX, maxCY int) {
	minCX = g.clampCol(int(math.Floor(float64(b.X / g.cellSize))))
	minCY = g.clampRow(int(math.Floor(float64(b.Y / g.cellSize))))
	maxCX = g.clampCol(int(math.Floor(float64((b.X + b.W) / g.cellSize))))
	maxCY = g.clampRow(int(math.Floor(float64((b.Y + b.H) / g.cellSize))))
	return
}

func (g *SpatialIndex) link(e *spatialEntry) {
	e.minCX, e.minCY, e.maxCX, e.maxCY = g.cellRange(e.rec.Box)
	for cy := e.minCY; cy <= e.maxCY; cy++ {
		for cx := e.minCX; cx <= e.maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], e)
		}
	}
}

func (g *SpatialIndex) unlink(e *spatialEntry) {
	for cy := e.minCY; cy <= e.maxCY; cy++ {
		for cx := e.minCX; cx <= e.maxCX; cx++ {
			idx := cy*g.cols + cx
			cell := g.cells[idx]
			for i, other := range cell {
				if other == e {
					last := len(cell) - 1
					cell[i] = cell[last]
					cell[last] = nil
					g.cells[idx] = cell[:last]
					break
				}
			}
		}
	}
}

// Insert adds a record. Inserting an existing id replaces it.
func (g *SpatialIndex) Insert(rec SpatialRecord) {
	if e, ok := g.entries[rec.ID]; ok {
		g.unlink(e)
		delete(g.entries, rec.ID)
	}
	e := &spatialEntry{rec: rec}
	g.entries[rec.ID] = e
	g.link(e)
}

// Mutate updates a record in place, relinking only when its cell span moved
func (g *SpatialIndex) Mutate(rec SpatialRecord) {
	e, ok := g.entries[rec.ID]
	if !ok {
		g.Insert(rec)
		return
	}
	minCX, minCY, maxCX, maxCY := g.cellRange(rec.Box)
	if minCX == e.minCX && minCY == e.minCY && maxCX == e.maxCX && maxCY == e.maxCY {
		e.rec = rec
		return
	}
	g.unlink(e)
	e.rec = rec
	g.link(e)
}

// Delete removes a record, reporting whether it was present
func (g *SpatialIndex) Delete(id ID) bool {
	e, ok := g.entries[id]
	if !ok {
		return false
	}
	g.unlink(e)
	delete(g.entries, id)
	return true
}

// Get returns the stored record for id
func (g *SpatialIndex) Get(id ID) (SpatialRecord, bool) {
	e, ok := g.entries[id]
	if !ok {
		return SpatialRecord{}, false
	}
	return e.rec, true
}

// Len returns the number of stored records
func (g *SpatialIndex) Len() int {
	return len(g.entries)
}

// Query appends every record sharing a cell with b to buf, each once.
// The result is a superset of the records that actually overlap b.
func (g *SpatialIndex) Query(b Box, buf []SpatialRecord) []SpatialRecord {
	g.stamp++
	minCX, minCY, maxCX, maxCY := g.cellRange(b)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for _, e := range g.cells[cy*g.cols+cx] {
				if e.stamp == g.stamp {
					continue
				}
				e.stamp = g.stamp
				buf = append(buf, e.rec)
			}
		}
	}
	return buf
}
