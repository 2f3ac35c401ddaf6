package hba

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/pci"
	log "github.com/sirupsen/logrus"

	"github.com/sigreer/raidblk/internal/command"
	"github.com/sigreer/raidblk/internal/config"
)

// Vendor tags a RAID card family
type Vendor string

// PCILister returns one descriptor line per PCI device
type PCILister func(ctx context.Context) ([]string, error)

type vendorMatcher struct {
	vendor Vendor
	marker *regexp.Regexp
	binary string
}

// Detector finds a RAID controller and the CLI that manages it
type Detector struct {
	PCI      PCILister
	SCSIInfo string

	vendors        []vendorMatcher
	fallback       Vendor
	fallbackBinary string
}

// NewDetector builds a detector from the catalogue. PCI devices are read
// through ghw, falling back to lspci when ghw cannot enumerate the bus.
func NewDetector(cfg *config.Config, runner command.Runner) (*Detector, error) {
	d := &Detector{
		PCI:            HostPCI(runner, cfg.Commands.Lspci),
		SCSIInfo:       cfg.Controller.SCSIInfo,
		fallback:       Vendor(cfg.Controller.Fallback.Name),
		fallbackBinary: cfg.Controller.Fallback.Binary,
	}
	for _, v := range cfg.Controller.Vendors {
		re, err := regexp.Compile(v.Marker)
		if err != nil {
			return nil, fmt.Errorf("invalid marker for vendor %s: %w", v.Name, err)
		}
		d.vendors = append(d.vendors, vendorMatcher{
			vendor: Vendor(v.Name),
			marker: re,
			binary: v.Binary,
		})
	}
	return d, nil
}

// HasRaidController reports whether any PCI device describes itself as RAID.
// An enumeration failure counts as no controller.
func (d *Detector) HasRaidController(ctx context.Context) bool {
	devices, err := d.PCI(ctx)
	if err != nil {
		log.WithError(err).Warn("PCI enumeration failed, assuming no RAID controller")
		return false
	}
	for _, dev := range devices {
		if strings.Contains(strings.ToLower(dev), "raid") {
			log.WithField("device", dev).Debug("RAID controller found")
			return true
		}
	}
	return false
}

// IdentifyVendor scans the SCSI adapter list for a known card model.
// An unreadable list or no match yields the fallback vendor.
func (d *Detector) IdentifyVendor() Vendor {
	f, err := os.Open(d.SCSIInfo)
	if err != nil {
		log.WithError(err).Debug("SCSI adapter list unavailable")
		return d.fallback
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		for _, v := range d.vendors {
			if v.marker.MatchString(line) {
				return v.vendor
			}
		}
	}
	return d.fallback
}

// ResolveBinary returns the controller CLI path for the detected vendor.
// The path is not checked for existence.
func (d *Detector) ResolveBinary() string {
	vendor := d.IdentifyVendor()
	for _, v := range d.vendors {
		if v.vendor == vendor {
			return v.binary
		}
	}
	return d.fallbackBinary
}

// HostPCI lists PCI devices with ghw, or with 'lspci -D' if ghw fails
func HostPCI(runner command.Runner, lspci string) PCILister {
	return func(ctx context.Context) ([]string, error) {
		devices, err := ghwPCI()
		if err == nil {
			return devices, nil
		}
		log.WithError(err).Debug("ghw PCI enumeration failed, trying lspci")

		out, err := runner.Output(ctx, lspci, "-D")
		if err != nil {
			return nil, err
		}
		var lines []string
		for _, line := range strings.Split(string(out), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		return lines, nil
	}
}

func ghwPCI() ([]string, error) {
	info, err := ghw.PCI(ghw.WithDisableWarnings())
	if err != nil {
		return nil, err
	}
	devices := make([]string, 0, len(info.Devices))
	for _, dev := range info.Devices {
		devices = append(devices, describePCI(dev))
	}
	return devices, nil
}

// describePCI formats a device like an lspci line:
// "0000:3b:00.0 RAID bus controller: Broadcom / LSI MegaRAID SAS-3 3108"
func describePCI(dev *pci.Device) string {
	var class, vendor, product string
	if dev.Subclass != nil {
		class = dev.Subclass.Name
	} else if dev.Class != nil {
		class = dev.Class.Name
	}
	if dev.Vendor != nil {
		vendor = dev.Vendor.Name
	}
	if dev.Product != nil {
		product = dev.Product.Name
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s: %s %s", dev.Address, class, vendor, product))
}
