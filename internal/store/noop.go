package store

import "RangeTrader/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) UpsertBars(_ string, _ []model.OHLCV) error       { return nil }
func (n *NoopStore) LoadBars(_ string, _ int) ([]model.OHLCV, error)  { return nil, nil }
func (n *NoopStore) RecordSignal(_ *SignalRecord) error               { return nil }
func (n *NoopStore) RecordBacktest(_ *BacktestRecord) (string, error) { return "", nil }
func (n *NoopStore) Close() error                                     { return nil }
