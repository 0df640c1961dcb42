package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fleet-tracker/core/fleet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource serves zone listings from memory.
type fakeSource struct {
	mu    sync.Mutex
	zones map[string][]fleet.Log
	err   error
	calls int
}

func (s *fakeSource) FetchZone(ctx context.Context, zone string) ([]fleet.Vehicle, []fleet.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, nil, s.err
	}
	logs := s.zones[zone]
	vehicles := make([]fleet.Vehicle, 0, len(logs))
	for _, l := range logs {
		vehicles = append(vehicles, fleet.Vehicle{UUID: l.VehicleUUID, Zone: zone})
	}
	out := make([]fleet.Log, len(logs))
	copy(out, logs)
	return vehicles, out, nil
}

func (s *fakeSource) set(zone string, logs ...fleet.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.zones == nil {
		s.zones = make(map[string][]fleet.Log)
	}
	s.zones[zone] = logs
}

// fakeResolver answers hidden-vehicle lookups from memory.
type fakeResolver struct {
	mu     sync.Mutex
	logs   map[string]fleet.Log
	err    error
	lookup []string
}

func (r *fakeResolver) Resolve(ctx context.Context, vehicleUUID string) (fleet.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookup = append(r.lookup, vehicleUUID)
	if r.err != nil {
		return fleet.Log{}, r.err
	}
	log, ok := r.logs[vehicleUUID]
	if !ok {
		return fleet.Log{}, fmt.Errorf("lookup %s: %w", vehicleUUID, fleet.ErrVehicleNotFound)
	}
	return log, nil
}

// memoryStore is an in-memory Store with insert-if-absent vehicles and append-only logs.
type memoryStore struct {
	mu        sync.Mutex
	vehicles  map[string]fleet.Vehicle
	logs      []fleet.Log
	upserts   int
	upsertErr error
	insertErr error
	latestErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{vehicles: make(map[string]fleet.Vehicle)}
}

func (s *memoryStore) UpsertVehicles(ctx context.Context, vehicles []fleet.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	for _, v := range vehicles {
		if _, ok := s.vehicles[v.UUID]; !ok {
			s.vehicles[v.UUID] = v
		}
	}
	return nil
}

func (s *memoryStore) InsertLogs(ctx context.Context, logs []fleet.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.logs = append(s.logs, logs...)
	return nil
}

func (s *memoryStore) LatestLog(ctx context.Context, vehicleUUID string) (*fleet.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	var latest *fleet.Log
	for i := range s.logs {
		l := s.logs[i]
		if l.VehicleUUID != vehicleUUID {
			continue
		}
		if latest == nil || l.Time.After(latest.Time) {
			latest = &l
		}
	}
	return latest, nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

// recordingPublisher captures published batches.
type recordingPublisher struct {
	mu      sync.Mutex
	batches map[string][]fleet.Log
	err     error
}

func (p *recordingPublisher) Publish(ctx context.Context, zone string, logs []fleet.Log) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.batches == nil {
		p.batches = make(map[string][]fleet.Log)
	}
	p.batches[zone] = append(p.batches[zone], logs...)
	return p.err
}

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func obs(vehicle string, at time.Time, lat, lng float64) fleet.Log {
	return fleet.Log{VehicleUUID: vehicle, Time: at, Lat: lat, Lng: lng, Battery: 80, Rentable: true, State: "ACTIVE"}
}

func newTestReconciler(src *fakeSource, res *fakeResolver, store *memoryStore) *Reconciler {
	return NewReconciler(src, res, store, NewZoneCache(), zap.NewNop())
}

func TestReconcile_ColdStartInsertsEverything(t *testing.T) {
	src := &fakeSource{}
	src.set("BERLIN", obs("v1", t0, 52.5, 13.4), obs("v2", t0, 52.6, 13.5))
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)

	result, err := r.Reconcile(context.Background(), "BERLIN")
	require.NoError(t, err)

	assert.True(t, result.ColdStart)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 2, store.count())
	assert.Len(t, store.vehicles, 2)

	cached, ok := r.Cache().Get("BERLIN")
	assert.True(t, ok)
	assert.Len(t, cached, 2)
}

func TestReconcile_SecondRunIsIdempotent(t *testing.T) {
	src := &fakeSource{}
	src.set("BERLIN", obs("v1", t0, 52.5, 13.4), obs("v2", t0, 52.6, 13.5))
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)

	_, err := r.Reconcile(context.Background(), "BERLIN")
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), "BERLIN")
	require.NoError(t, err)

	assert.False(t, result.ColdStart)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 2, store.count())
	assert.Equal(t, 2, store.upserts, "vehicles are upserted on every run")
}

func TestReconcile_SmallMoveIsNotPersisted(t *testing.T) {
	src := &fakeSource{}
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)
	r.Cache().Put("Z", []fleet.Log{obs("v1", t0, 10.0, 10.0)})

	// roughly 1.5 meters away
	src.set("Z", obs("v1", t0.Add(5*time.Minute), 10.00001, 10.00001))

	result, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 0, store.count())

	cached, _ := r.Cache().Get("Z")
	require.Len(t, cached, 1)
	assert.True(t, cached[0].Time.Equal(t0.Add(5*time.Minute)), "cache holds the refreshed observation")
}

func TestReconcile_LargeMoveIsPersisted(t *testing.T) {
	src := &fakeSource{}
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)
	r.Cache().Put("Z", []fleet.Log{obs("v1", t0, 10.0, 10.0)})

	// roughly 1.1 kilometers away
	src.set("Z", obs("v1", t0.Add(5*time.Minute), 10.01, 10.0))

	result, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Inserted)
	require.Len(t, store.logs, 1)
	assert.Equal(t, "v1", store.logs[0].VehicleUUID)
	assert.Equal(t, 10.01, store.logs[0].Lat)
}

func TestReconcile_SameTimestampIsNotPersisted(t *testing.T) {
	src := &fakeSource{}
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)
	r.Cache().Put("Z", []fleet.Log{obs("v1", t0, 10.0, 10.0)})

	src.set("Z", obs("v1", t0, 10.5, 10.5))

	result, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
}

func TestReconcile_HiddenVehicleIsLookedUp(t *testing.T) {
	src := &fakeSource{}
	src.set("Z", obs("v1", t0.Add(time.Minute), 10.0, 10.0))
	res := &fakeResolver{logs: map[string]fleet.Log{
		"v2": obs("v2", t0.Add(time.Minute), 10.02, 10.0),
	}}
	store := newMemoryStore()
	r := newTestReconciler(src, res, store)
	r.Cache().Put("Z", []fleet.Log{obs("v1", t0, 10.0, 10.0), obs("v2", t0, 10.0, 10.0)})

	result, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)

	assert.Equal(t, []string{"v2"}, res.lookup)
	assert.Equal(t, 1, result.Hidden)
	assert.Equal(t, 1, result.Inserted, "only the hidden vehicle moved")
	require.Len(t, store.logs, 1)
	assert.Equal(t, "v2", store.logs[0].VehicleUUID)

	cached, _ := r.Cache().Get("Z")
	vehicles := make([]string, 0, len(cached))
	for _, l := range cached {
		vehicles = append(vehicles, l.VehicleUUID)
	}
	assert.ElementsMatch(t, []string{"v1", "v2"}, vehicles)
}

func TestReconcile_HiddenVehicleStaysTrackedWhenUnchanged(t *testing.T) {
	src := &fakeSource{}
	src.set("Z")
	res := &fakeResolver{logs: map[string]fleet.Log{"v2": obs("v2", t0, 10.0, 10.0)}}
	store := newMemoryStore()
	r := newTestReconciler(src, res, store)
	r.Cache().Put("Z", []fleet.Log{obs("v2", t0, 10.0, 10.0)})

	for i := 0; i < 3; i++ {
		result, err := r.Reconcile(context.Background(), "Z")
		require.NoError(t, err)
		assert.Equal(t, 0, result.Inserted)
		assert.Equal(t, 1, r.Cache().Len("Z"))
	}
	assert.Len(t, res.lookup, 3)
}

func TestReconcile_VanishedVehicleIsDropped(t *testing.T) {
	src := &fakeSource{}
	src.set("Z", obs("v1", t0, 10.0, 10.0))
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)
	r.Cache().Put("Z", []fleet.Log{obs("v1", t0, 10.0, 10.0), obs("gone", t0, 10.0, 10.0)})

	result, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, 0, result.Hidden)
	cached, _ := r.Cache().Get("Z")
	require.Len(t, cached, 1)
	assert.Equal(t, "v1", cached[0].VehicleUUID)
}

func TestReconcile_StoreFallback(t *testing.T) {
	tests := []struct {
		name     string
		stored   []fleet.Log
		fresh    fleet.Log
		expected int
	}{
		{"NeverLogged", nil, obs("v1", t0, 10, 10), 1},
		{"SameTimestamp", []fleet.Log{obs("v1", t0, 10, 10)}, obs("v1", t0, 10.5, 10), 0},
		{"NotMoved", []fleet.Log{obs("v1", t0, 10, 10)}, obs("v1", t0.Add(time.Hour), 10, 10), 0},
		{"Moved", []fleet.Log{obs("v1", t0, 10, 10)}, obs("v1", t0.Add(time.Hour), 10.01, 10), 1},
		{
			name:     "ComparesWithMostRecent",
			stored:   []fleet.Log{obs("v1", t0, 10, 10), obs("v1", t0.Add(30*time.Minute), 10.01, 10)},
			fresh:    obs("v1", t0.Add(time.Hour), 10.01, 10),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{}
			src.set("Z", tt.fresh)
			store := newMemoryStore()
			store.logs = append(store.logs, tt.stored...)
			r := newTestReconciler(src, &fakeResolver{}, store)

			result, err := r.Reconcile(context.Background(), "Z")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Inserted)
			assert.Equal(t, len(tt.stored)+tt.expected, store.count())
		})
	}
}

func TestReconcile_DuplicateCacheEntriesAreProcessedOnce(t *testing.T) {
	src := &fakeSource{}
	src.set("Z", obs("v1", t0.Add(time.Minute), 10.01, 10))
	res := &fakeResolver{}
	store := newMemoryStore()
	r := newTestReconciler(src, res, store)
	r.Cache().Put("Z", []fleet.Log{obs("v1", t0, 10, 10), obs("v1", t0, 10, 10)})

	result, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)

	assert.Empty(t, res.lookup)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, r.Cache().Len("Z"))
}

func TestReconcile_DuplicateFreshLogsKeepFirst(t *testing.T) {
	src := &fakeSource{}
	src.set("Z", obs("v1", t0, 10, 10), obs("v1", t0.Add(time.Minute), 11, 11))
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)

	result, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 10.0, store.logs[0].Lat)
}

func TestReconcile_FailuresLeaveCacheUntouched(t *testing.T) {
	boom := errors.New("boom")
	previous := []fleet.Log{obs("v1", t0, 10, 10), obs("v2", t0, 10, 10)}

	tests := []struct {
		name  string
		setup func(src *fakeSource, res *fakeResolver, store *memoryStore)
	}{
		{"FetchError", func(src *fakeSource, res *fakeResolver, store *memoryStore) { src.err = boom }},
		{"UpsertError", func(src *fakeSource, res *fakeResolver, store *memoryStore) { store.upsertErr = boom }},
		{"ResolverError", func(src *fakeSource, res *fakeResolver, store *memoryStore) { res.err = boom }},
		{"LatestLogError", func(src *fakeSource, res *fakeResolver, store *memoryStore) { store.latestErr = boom }},
		{"InsertError", func(src *fakeSource, res *fakeResolver, store *memoryStore) { store.insertErr = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{}
			// v2 is hidden, v3 is new and needs the store fallback
			src.set("Z", obs("v1", t0.Add(time.Minute), 10.01, 10), obs("v3", t0, 10, 10))
			res := &fakeResolver{logs: map[string]fleet.Log{"v2": obs("v2", t0.Add(time.Minute), 10.01, 10)}}
			store := newMemoryStore()
			tt.setup(src, res, store)

			r := newTestReconciler(src, res, store)
			r.Cache().Put("Z", previous)

			result, err := r.Reconcile(context.Background(), "Z")
			assert.Nil(t, result)
			assert.ErrorIs(t, err, boom)

			cached, ok := r.Cache().Get("Z")
			assert.True(t, ok)
			assert.Equal(t, previous, cached)
		})
	}
}

func TestReconcile_PublishesInsertedLogs(t *testing.T) {
	src := &fakeSource{}
	src.set("Z", obs("v1", t0, 10, 10))
	pub := &recordingPublisher{}
	r := newTestReconciler(src, &fakeResolver{}, newMemoryStore())
	r.SetPublisher(pub)

	_, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)
	assert.Len(t, pub.batches["Z"], 1)

	// Nothing new, nothing published.
	_, err = r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)
	assert.Len(t, pub.batches["Z"], 1)
}

func TestReconcile_PublishFailureIsNotFatal(t *testing.T) {
	src := &fakeSource{}
	src.set("Z", obs("v1", t0, 10, 10))
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)
	r.SetPublisher(&recordingPublisher{err: errors.New("broker down")})

	result, err := r.Reconcile(context.Background(), "Z")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, r.Cache().Len("Z"))
}

func TestReconcile_ConcurrentZonesDoNotInterfere(t *testing.T) {
	src := &fakeSource{}
	src.set("A", obs("a1", t0, 1, 1), obs("a2", t0, 1, 2))
	src.set("B", obs("b1", t0, 2, 1), obs("b2", t0, 2, 2), obs("b3", t0, 2, 3))
	store := newMemoryStore()
	r := newTestReconciler(src, &fakeResolver{}, store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		for _, zone := range []string{"A", "B"} {
			wg.Add(1)
			go func(zone string) {
				defer wg.Done()
				_, err := r.Reconcile(context.Background(), zone)
				assert.NoError(t, err)
			}(zone)
		}
	}
	wg.Wait()

	a, _ := r.Cache().Get("A")
	b, _ := r.Cache().Get("B")
	assert.ElementsMatch(t, []string{"a1", "a2"}, vehicleIDs(a))
	assert.ElementsMatch(t, []string{"b1", "b2", "b3"}, vehicleIDs(b))
}

func vehicleIDs(logs []fleet.Log) []string {
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.VehicleUUID)
	}
	return out
}
