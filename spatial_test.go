package main

import "testing"

func recordAt(id ID, center Vec2, radius float32) SpatialRecord {
	return SpatialRecord{ID: id, Box: CircleBox(center, radius), Radius: radius}
}

func hasID(recs []SpatialRecord, id ID) bool {
	for _, r := range recs {
		if r.ID == id {
			return true
		}
	}
	return false
}

func TestSpatialIndexInsertAndQuery(t *testing.T) {
	idx := NewSpatialIndex(4000, 4000)
	idx.Insert(recordAt(1, Vec2{X: 100, Y: 100}, 50))

	if got := idx.Query(CircleBox(Vec2{X: 100, Y: 100}, 10), nil); !hasID(got, 1) {
		t.Error("expected to find record near its center")
	}
	if got := idx.Query(CircleBox(Vec2{X: 3000, Y: 3000}, 50), nil); hasID(got, 1) {
		t.Error("should not find record far away")
	}
}

func TestSpatialIndexQueryDedup(t *testing.T) {
	idx := NewSpatialIndex(4000, 4000)
	// spans several cells
	idx.Insert(recordAt(1, Vec2{X: 500, Y: 500}, 300))

	got := idx.Query(Box{X: 0, Y: 0, W: 1000, H: 1000}, nil)
	if len(got) != 1 {
		t.Errorf("got %d records, want 1", len(got))
	}
}

func TestSpatialIndexMutate(t *testing.T) {
	idx := NewSpatialIndex(4000, 4000)
	idx.Insert(recordAt(1, Vec2{X: 100, Y: 100}, 50))

	idx.Mutate(recordAt(1, Vec2{X: 2000, Y: 2000}, 50))
	if got := idx.Query(CircleBox(Vec2{X: 100, Y: 100}, 10), nil); hasID(got, 1) {
		t.Error("record should have left its old cells")
	}
	if got := idx.Query(CircleBox(Vec2{X: 2000, Y: 2000}, 10), nil); !hasID(got, 1) {
		t.Error("record should be found at its new position")
	}

	// small move inside the same cells keeps the record current
	idx.Mutate(recordAt(1, Vec2{X: 2001, Y: 2000}, 50))
	rec, ok := idx.Get(1)
	if !ok || rec.Center() != (Vec2{X: 2001, Y: 2000}) {
		t.Errorf("get = %+v, %v", rec, ok)
	}
	if idx.Len() != 1 {
		t.Errorf("len = %d, want 1", idx.Len())
	}
}

func TestSpatialIndexDelete(t *testing.T) {
	idx := NewSpatialIndex(4000, 4000)
	idx.Insert(recordAt(1, Vec2{X: 500, Y: 500}, 100))

	if !idx.Delete(1) {
		t.Error("delete of present id should report true")
	}
	if idx.Delete(1) {
		t.Error("second delete should report false")
	}
	if got := idx.Query(Box{X: 0, Y: 0, W: 4000, H: 4000}, nil); len(got) != 0 {
		t.Errorf("expected empty index, got %d", len(got))
	}
}

func TestSpatialIndexBoundaryClamp(t *testing.T) {
	idx := NewSpatialIndex(4000, 4000)
	idx.Insert(recordAt(1, Vec2{X: -500, Y: -500}, 100))
	idx.Insert(recordAt(2, Vec2{X: 9000, Y: 9000}, 100))

	if got := idx.Query(CircleBox(Vec2{}, 10), nil); !hasID(got, 1) {
		t.Error("expected to find record outside the world near the origin")
	}
	if got := idx.Query(CircleBox(Vec2{X: 4000, Y: 4000}, 10), nil); !hasID(got, 2) {
		t.Error("expected to find record beyond the far edge")
	}
}
