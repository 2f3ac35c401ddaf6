package drive

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/sigreer/raidblk/internal/collector"
	"github.com/sigreer/raidblk/internal/columns"
	"github.com/sigreer/raidblk/internal/command"
	"github.com/sigreer/raidblk/internal/config"
	"github.com/sigreer/raidblk/internal/hba"
)

// Scanner lists block devices and joins them with the RAID inventory
type Scanner struct {
	Runner   command.Runner
	Detector *hba.Detector

	lsblk         string
	inventoryArgs []string
}

// NewScanner builds a scanner that runs host commands
func NewScanner(cfg *config.Config) (*Scanner, error) {
	return NewScannerWithRunner(cfg, command.NewExec(cfg.Commands.Timeout))
}

func NewScannerWithRunner(cfg *config.Config, runner command.Runner) (*Scanner, error) {
	detector, err := hba.NewDetector(cfg, runner)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		Runner:        runner,
		Detector:      detector,
		lsblk:         cfg.Commands.Lsblk,
		inventoryArgs: cfg.Controller.InventoryArgs,
	}, nil
}

// Scan runs one pass: controller detection, RAID inventory, lsblk, join.
// Failures of the RAID side or of lsblk are logged and degrade the result
// instead of aborting it.
func (s *Scanner) Scan(ctx context.Context, q columns.Query, paths []string) collector.Listing {
	inv := s.inventory(ctx, q)

	listing := collector.ListDevices(ctx, s.Runner, s.lsblk, q.Base, paths)
	if !listing.OK() {
		log.WithError(listing.Err).WithField("paths", paths).Warn("Block device listing failed, reporting no devices")
		return listing
	}

	collector.Enrich(listing.Records, q, inv)
	return listing
}

func (s *Scanner) inventory(ctx context.Context, q columns.Query) *hba.Inventory {
	if !q.NeedsRaid() {
		return hba.NewInventory()
	}
	if !s.Detector.HasRaidController(ctx) {
		log.Debug("No RAID controller present")
		return hba.NewInventory()
	}

	binary := s.Detector.ResolveBinary()
	inv, err := hba.FetchInventory(ctx, s.Runner, binary, s.inventoryArgs)
	if err != nil {
		log.WithError(err).WithField("binary", binary).Warn("RAID inventory unavailable, RAID columns fall back to placeholders")
	}
	return inv
}
