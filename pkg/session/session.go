// Package session owns the published static and realtime snapshots and runs
// the ingestion pipelines that replace them.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/findmybus/findmybus/pkg/config"
	"github.com/findmybus/findmybus/pkg/ctdf"
	"github.com/findmybus/findmybus/pkg/dataimporter/formats/gtfs"
	"github.com/findmybus/findmybus/pkg/dataimporter/manager"
	"github.com/findmybus/findmybus/pkg/shard"
	"github.com/findmybus/findmybus/pkg/storage"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// StaticDataKey is the chunked key the last static snapshot is persisted under
const StaticDataKey = "static_gtfs_data"

var (
	ErrIngestionInProgress = errors.New("static ingestion already in progress")
	ErrScheduleUnavailable = errors.New("trip schedule unavailable")
)

type Session struct {
	config  *config.Config
	fetcher manager.Fetcher
	store   *storage.ChunkedStore

	static   atomic.Pointer[ctdf.StaticDataset]
	realtime atomic.Pointer[ctdf.RealtimeDataset]

	ingestion sync.Mutex

	now func() time.Time
}

func New(cfg *config.Config, fetcher manager.Fetcher, store *storage.ChunkedStore) *Session {
	session := &Session{
		config:  cfg,
		fetcher: fetcher,
		store:   store,
		now:     time.Now,
	}

	session.static.Store(ctdf.EmptyStaticDataset(session.now()))
	session.realtime.Store(ctdf.EmptyRealtimeDataset(session.now()))

	return session
}

// Static returns the current static snapshot. The returned value is shared and
// must not be modified.
func (s *Session) Static() *ctdf.StaticDataset {
	return s.static.Load()
}

func (s *Session) Realtime() *ctdf.RealtimeDataset {
	return s.realtime.Load()
}

// RefreshStatic downloads, decodes and publishes the static schedule, then
// persists the snapshot and every trip's stop times. Nothing is published if
// the feed can't be fetched or decoded.
func (s *Session) RefreshStatic(ctx context.Context) error {
	if !s.ingestion.TryLock() {
		return ErrIngestionInProgress
	}
	defer s.ingestion.Unlock()

	dataset, err := manager.GetDataset(s.config, manager.StaticDataSetIdentifier)
	if err != nil {
		return err
	}
	log.Info().Interface("dataset", dataset).Msg("Starting static import")

	body, err := s.fetcher.Fetch(ctx, dataset.Source)
	if err != nil {
		return err
	}

	schedule, err := gtfs.DecodeSchedule(body)
	if err != nil {
		return err
	}

	normalized, err := gtfs.Normalize(schedule, s.now())
	if err != nil {
		return err
	}

	s.static.Store(normalized.Static)
	log.Info().Str("agency", normalized.Static.AgencyName).Msg("Published static dataset")

	if err := s.store.WriteJSON(ctx, StaticDataKey, normalized.Static); err != nil {
		return fmt.Errorf("persist static dataset: %w", err)
	}

	buckets := gtfs.Bucket(normalized.StopTimes)
	if err := s.writeBuckets(ctx, buckets); err != nil {
		return fmt.Errorf("persist stop times: %w", err)
	}

	if err := s.removeStaleShards(ctx, buckets); err != nil {
		return fmt.Errorf("remove stale stop times: %w", err)
	}

	log.Info().
		Int("trips", len(normalized.StopTimes)).
		Int("shards", len(buckets)).
		Msg("Finished static import")

	return nil
}

func (s *Session) writeConcurrency() int {
	if s.config.Storage.WriteConcurrency > 0 {
		return s.config.Storage.WriteConcurrency
	}

	return config.DefaultWriteConcurrency
}

// writeBuckets writes each shard from exactly one goroutine
func (s *Session) writeBuckets(ctx context.Context, buckets map[string]map[string]ctdf.StopTimes) error {
	writePool := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(s.writeConcurrency()).
		WithCancelOnError().
		WithFirstError()

	for key, trips := range buckets {
		writePool.Go(func(ctx context.Context) error {
			return s.store.WriteJSON(ctx, key, trips)
		})
	}

	return writePool.Wait()
}

func (s *Session) removeStaleShards(ctx context.Context, buckets map[string]map[string]ctdf.StopTimes) error {
	deletePool := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(s.writeConcurrency()).
		WithFirstError()

	for _, key := range shard.AllKeys() {
		if _, exists := buckets[key]; exists {
			continue
		}

		deletePool.Go(func(ctx context.Context) error {
			// The new data is already in place, a leftover that can't be read
			// is skipped rather than failing the import
			if err := s.store.Delete(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Failed to remove stale stop times")
			}

			return ctx.Err()
		})
	}

	return deletePool.Wait()
}

// RefreshRealtime replaces the realtime snapshot with a freshly downloaded one.
// It shares nothing with the static import and may run alongside it.
func (s *Session) RefreshRealtime(ctx context.Context) error {
	dataset, err := manager.GetDataset(s.config, manager.RealtimeDataSetIdentifier)
	if err != nil {
		return err
	}

	body, err := s.fetcher.Fetch(ctx, dataset.Source)
	if err != nil {
		return err
	}

	realtime, err := gtfs.DecodeRealtime(body, s.now())
	if err != nil {
		return err
	}

	s.realtime.Store(realtime)

	return nil
}

// LoadStatic restores the snapshot persisted by the last static import. Having
// nothing persisted yet is not an error.
func (s *Session) LoadStatic(ctx context.Context) error {
	var dataset ctdf.StaticDataset

	err := s.store.ReadJSON(ctx, StaticDataKey, &dataset)
	var notFound *storage.NotFoundError
	if errors.As(err, &notFound) {
		log.Info().Msg("No persisted static dataset")
		return nil
	} else if err != nil {
		return err
	}

	if dataset.DataTypeVersion != ctdf.DataTypeVersion {
		log.Warn().Int("version", dataset.DataTypeVersion).Msg("Ignoring persisted static dataset with unknown version")
		return nil
	}

	s.static.Store(&dataset)
	log.Info().
		Str("agency", dataset.AgencyName).
		Str("timestamp", dataset.Timestamp).
		Msg("Loaded persisted static dataset")

	return nil
}

// StopTimesForTrip reads a trip's schedule from its shard
func (s *Session) StopTimesForTrip(ctx context.Context, tripID string) (ctdf.StopTimes, error) {
	var trips map[string]ctdf.StopTimes

	err := s.store.ReadJSON(ctx, shard.Key(tripID), &trips)
	var notFound *storage.NotFoundError
	if errors.As(err, &notFound) {
		return nil, fmt.Errorf("%w: %s", ErrScheduleUnavailable, tripID)
	} else if err != nil {
		return nil, err
	}

	stopTimes, exists := trips[tripID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrScheduleUnavailable, tripID)
	}

	return stopTimes, nil
}
