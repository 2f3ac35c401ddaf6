package hba

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/sigreer/raidblk/internal/command"
)

// json paths in storcli output
const (
	_controllers   = "Controllers"
	_status        = "Command Status.Status"
	_description   = "Command Status.Description"
	_controllerNum = "Command Status.Controller"
	_responseData  = "Response Data"
)

// FetchInventory runs the controller CLI and parses its virtual disk report.
// On failure it returns an empty inventory along with the cause.
func FetchInventory(ctx context.Context, runner command.Runner, binary string, args []string) (*Inventory, error) {
	out, err := runner.Output(ctx, binary, args...)
	if err != nil {
		return NewInventory(), fmt.Errorf("failed to query RAID controller: %w", err)
	}
	return ParseInventory(out)
}

// ParseInventory parses the output of 'storcli /call/vall show all J'.
// Controllers whose command status is not Success are skipped.
func ParseInventory(data []byte) (*Inventory, error) {
	inv := NewInventory()

	if !gjson.ValidBytes(data) {
		return inv, errors.New("invalid json from RAID controller")
	}

	controllers := gjson.GetBytes(data, _controllers)
	if !controllers.IsArray() {
		return inv, errors.New("RAID controller response has no controller list")
	}

	for _, ctrl := range controllers.Array() {
		if status := ctrl.Get(_status).String(); status != StatusSuccess {
			log.WithFields(log.Fields{
				"controller":  ctrl.Get(_controllerNum).String(),
				"status":      status,
				"description": ctrl.Get(_description).String(),
			}).Warn("Skipping RAID controller")
			continue
		}

		// ForEach walks keys in document order, so a serial reported twice
		// resolves to the later volume.
		ctrl.Get(_responseData).ForEach(func(key, value gjson.Result) bool {
			inv.add(ClassifyKey(key.String()), value)
			return true
		})
	}

	return inv, nil
}

func (inv *Inventory) add(key ResponseKey, value gjson.Result) {
	switch key.Kind {
	case KeyVolumeDevice:
		inv.Devices[key.Volume] = parseVolumeDevices(value)
	case KeyVolumeProperties:
		props := parseVolumeProperties(value)
		inv.Properties[key.Volume] = props
		if props.Serial != "" {
			inv.Serials[props.Serial] = key.Volume
		}
	case KeyPhysicalDisks:
		inv.Disks[key.Volume] = parsePhysicalDisks(value)
	}
}

func parseVolumeDevices(value gjson.Result) []VolumeDevice {
	var devices []VolumeDevice
	for _, row := range value.Array() {
		devices = append(devices, VolumeDevice{
			DriveGroup: row.Get("DG/VD").String(),
			Type:       row.Get("TYPE").String(),
			State:      row.Get("State").String(),
			Size:       row.Get("Size").String(),
			Name:       row.Get("Name").String(),
		})
	}
	return devices
}

func parseVolumeProperties(value gjson.Result) VolumeProperties {
	return VolumeProperties{
		Serial:      value.Get("SCSI NAA Id").String(),
		OSDriveName: value.Get("OS Drive Name").String(),
		Strip:       value.Get("Strip Size").String(),
		Drives:      int(value.Get("Number of Drives Per Span").Int()),
	}
}

func parsePhysicalDisks(value gjson.Result) []PhysicalDisk {
	var disks []PhysicalDisk
	for _, row := range value.Array() {
		disks = append(disks, PhysicalDisk{
			EnclosureSlot: row.Get("EID:Slt").String(),
			Slot:          row.Get("DID").String(),
			State:         row.Get("State").String(),
			Size:          row.Get("Size").String(),
			Media:         row.Get("Med").String(),
			Model:         row.Get("Model").String(),
		})
	}
	return disks
}
