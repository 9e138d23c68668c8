package service

import (
	"github.com/MKhiriev/go-key-purger/internal/config"
	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/metrics"
	"github.com/MKhiriev/go-key-purger/internal/store"
)

type Services struct {
	KeyScanner   KeyScanner
	BatchPurger  BatchPurger
	PurgeService PurgeService
}

func NewServices(storages *store.Storages, cfg config.Purge, collector *metrics.Collector, logger *logger.Logger) *Services {
	scanner := NewKeyScanner(storages.KeyStore, cfg, collector, logger)
	purger := NewBatchPurger(storages.KeyStore, storages.CheckpointStore, cfg, collector, logger)

	return &Services{
		KeyScanner:   scanner,
		BatchPurger:  purger,
		PurgeService: NewPurgeService(scanner, purger, storages.CheckpointStore, NewUUIDGenerator(), collector, logger),
	}
}
