package collector

import (
	"strings"

	"github.com/sigreer/raidblk/internal/columns"
	"github.com/sigreer/raidblk/internal/hba"
)

// Placeholder marks a RAID column that could not be resolved
const Placeholder = "-"

// Enrich adds the RAID derived columns of q to each record, joining on the
// serial column. A record is never dropped; only the affected column falls
// back.
func Enrich(records []Record, q columns.Query, inv *hba.Inventory) {
	if !q.NeedsRaid() {
		return
	}

	wantRota := contains(q.Base, columns.Rota)
	wantSlot := contains(q.Extra, columns.Slot)
	wantRaid := contains(q.Extra, columns.Raid)

	for _, rec := range records {
		vd, found := inv.Lookup(rec.Get(columns.Serial))

		if wantRota && found {
			if rota, ok := rotational(inv, vd); ok {
				rec[columns.Rota] = rota
			}
		}
		if wantSlot {
			rec[columns.Slot] = Placeholder
			if found {
				if slots, ok := slotList(inv, vd); ok {
					rec[columns.Slot] = slots
				}
			}
		}
		if wantRaid {
			rec[columns.Raid] = Placeholder
			if found {
				if types, ok := raidTypes(inv, vd); ok {
					rec[columns.Raid] = types
				}
			}
		}
	}
}

// rotational is "1" if any member disk of vd is not an SSD
func rotational(inv *hba.Inventory, vd hba.VolumeID) (string, bool) {
	disks, ok := inv.Disks[vd]
	if !ok {
		return "", false
	}
	for _, d := range disks {
		if d.Rotational() {
			return "1", true
		}
	}
	return "0", true
}

func slotList(inv *hba.Inventory, vd hba.VolumeID) (string, bool) {
	disks, ok := inv.Disks[vd]
	if !ok {
		return "", false
	}
	slots := make([]string, len(disks))
	for i, d := range disks {
		slots[i] = d.Slot
	}
	return strings.Join(slots, "-"), true
}

func raidTypes(inv *hba.Inventory, vd hba.VolumeID) (string, bool) {
	devices, ok := inv.Devices[vd]
	if !ok {
		return "", false
	}
	types := make([]string, len(devices))
	for i, d := range devices {
		types[i] = d.Type
	}
	return strings.Join(types, "-"), true
}
