package main

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAnalyticsFlushOnStop(t *testing.T) {
	db := openTestDB(t)
	an := NewAnalytics(db)

	an.Track(EvtConnect, 4, "")
	an.Track(EvtConnect, 5, "")
	an.Track(EvtSpawn, 4, "Ace")
	an.Track(EvtKick, 4, "")
	an.Stop()
	an.Stop() // idempotent

	counts, err := an.EventCounts(1)
	if err != nil {
		t.Fatal(err)
	}
	if counts[EvtConnect] != 2 || counts[EvtSpawn] != 1 || counts[EvtKick] != 1 {
		t.Errorf("counts = %v", counts)
	}

	// dropped silently once stopped
	an.Track(EvtConnect, 6, "")
}

func TestAnalyticsDailyConnections(t *testing.T) {
	db := openTestDB(t)
	an := NewAnalytics(db)
	an.Track(EvtConnect, 4, "")
	an.Track(EvtConnect, 5, "")
	an.Track(EvtConnect, 4, "")
	an.Stop()

	days, err := an.DailyConnections(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].Count != 2 {
		t.Errorf("days = %+v", days)
	}
}

func TestAnalyticsRecordsArenaLifecycle(t *testing.T) {
	db := openTestDB(t)
	an := NewAnalytics(db)

	a, _ := newTestArena(t)
	a.SetRecorder(an)
	id := a.NewConnection(NewOutbox())
	a.PlayerSpawn(id, "Ace")
	a.KickConnection(id)
	an.Stop()

	counts, err := an.EventCounts(1)
	if err != nil {
		t.Fatal(err)
	}
	for _, evt := range []string{EvtConnect, EvtSpawn, EvtKick} {
		if counts[evt] != 1 {
			t.Errorf("%s count = %d, want 1", evt, counts[evt])
		}
	}
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)
	if got := db.GetSetting("missing"); got != "" {
		t.Errorf("missing setting = %q", got)
	}
	if err := db.SetSetting("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSetting("k", "v2"); err != nil {
		t.Fatal(err)
	}
	if got := db.GetSetting("k"); got != "v2" {
		t.Errorf("setting = %q, want v2", got)
	}
}

func TestAnalyticsWithoutDB(t *testing.T) {
	an := NewAnalytics(nil)
	an.Track(EvtConnect, 4, "")
	an.Stop()
	counts, err := an.EventCounts(1)
	if err != nil || counts != nil {
		t.Errorf("counts = %v, err = %v", counts, err)
	}
}
