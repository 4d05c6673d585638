package service

import (
	"fmt"
	"sync"
	"testing"
)

func TestRoster_ClaimAndRelease(t *testing.T) {
	roster := NewRoster()

	if !roster.Claim("alice") {
		t.Fatal("first claim of alice should succeed")
	}
	if roster.Claim("alice") {
		t.Fatal("second claim of alice should fail")
	}
	if !roster.Claim("bob") {
		t.Fatal("claim of bob should succeed")
	}

	roster.Release("alice")
	// 重複釋放是空操作
	roster.Release("alice")

	snapshot := roster.Snapshot()
	if len(snapshot) != 1 || snapshot[0] != "bob" {
		t.Errorf("expected snapshot [bob], got %v", snapshot)
	}
}

func TestRoster_SnapshotInsertionOrder(t *testing.T) {
	roster := NewRoster()
	names := []string{"carla", "alice", "bob"}
	for _, name := range names {
		roster.Claim(name)
	}

	snapshot := roster.Snapshot()
	if len(snapshot) != len(names) {
		t.Fatalf("expected %d names, got %d", len(names), len(snapshot))
	}
	for i, name := range names {
		if snapshot[i] != name {
			t.Errorf("expected %q at position %d, got %q", name, i, snapshot[i])
		}
	}

	// 快照必須是副本，修改它不能影響名單
	snapshot[0] = "mallory"
	if roster.Snapshot()[0] != "carla" {
		t.Error("snapshot aliases internal state")
	}
}

func TestRoster_ConcurrentClaimSameName(t *testing.T) {
	roster := NewRoster()

	const goroutines = 32
	var wg sync.WaitGroup
	results := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- roster.Claim("bob")
		}()
	}
	wg.Wait()
	close(results)

	// 不管多少個併發請求，只有一個能成功
	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly 1 successful claim, got %d", wins)
	}
	if snapshot := roster.Snapshot(); len(snapshot) != 1 {
		t.Errorf("expected 1 name in roster, got %v", snapshot)
	}
}

func TestRoster_ConcurrentDistinctClaims(t *testing.T) {
	roster := NewRoster()

	const goroutines = 32
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if !roster.Claim(fmt.Sprintf("user-%d", i)) {
				t.Errorf("claim of user-%d failed", i)
			}
		}(i)
	}
	wg.Wait()

	if got := len(roster.Snapshot()); got != goroutines {
		t.Errorf("expected %d names, got %d", goroutines, got)
	}
}
