package reconcile

import (
	"fmt"
	"sync"
	"testing"

	"fleet-tracker/core/fleet"

	"github.com/stretchr/testify/assert"
)

func TestZoneCache_MissingVersusEmpty(t *testing.T) {
	c := NewZoneCache()

	logs, ok := c.Get("BERLIN")
	assert.False(t, ok)
	assert.Nil(t, logs)
	assert.Equal(t, -1, c.Len("BERLIN"))

	c.Put("BERLIN", nil)

	logs, ok = c.Get("BERLIN")
	assert.True(t, ok)
	assert.Empty(t, logs)
	assert.Equal(t, 0, c.Len("BERLIN"))
}

func TestZoneCache_PutReplacesWholeSnapshot(t *testing.T) {
	c := NewZoneCache()
	c.Put("Z", []fleet.Log{{VehicleUUID: "v1"}, {VehicleUUID: "v2"}})
	c.Put("Z", []fleet.Log{{VehicleUUID: "v3"}})

	logs, ok := c.Get("Z")
	assert.True(t, ok)
	assert.Equal(t, []fleet.Log{{VehicleUUID: "v3"}}, logs)
}

func TestZoneCache_SnapshotsAreCopies(t *testing.T) {
	c := NewZoneCache()
	in := []fleet.Log{{VehicleUUID: "v1"}}
	c.Put("Z", in)

	in[0].VehicleUUID = "mutated"
	out, _ := c.Get("Z")
	assert.Equal(t, "v1", out[0].VehicleUUID)

	out[0].VehicleUUID = "mutated"
	again, _ := c.Get("Z")
	assert.Equal(t, "v1", again[0].VehicleUUID)
}

func TestZoneCache_Zones(t *testing.T) {
	c := NewZoneCache()
	c.Put("PARIS", nil)
	c.Put("BERLIN", nil)
	c.Put("AMSTERDAM", nil)

	assert.Equal(t, []string{"AMSTERDAM", "BERLIN", "PARIS"}, c.Zones())
}

func TestZoneCache_ConcurrentReadersNeverSeePartialSnapshots(t *testing.T) {
	c := NewZoneCache()
	snapshot := func(gen, size int) []fleet.Log {
		out := make([]fleet.Log, size)
		for i := range out {
			out[i] = fleet.Log{VehicleUUID: fmt.Sprintf("g%d", gen)}
		}
		return out
	}
	c.Put("Z", snapshot(0, 10))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for gen := 1; gen <= 200; gen++ {
			c.Put("Z", snapshot(gen, 10))
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				logs, ok := c.Get("Z")
				if !assert.True(t, ok) || !assert.Len(t, logs, 10) {
					return
				}
				for _, l := range logs {
					if !assert.Equal(t, logs[0].VehicleUUID, l.VehicleUUID) {
						return
					}
				}
				c.Len("other")
			}
		}()
	}
	wg.Wait()
}
