package hba

// VolumeID identifies a virtual disk (VD) on a RAID controller
type VolumeID int

// PhysicalDisk is one drive backing a virtual disk, as listed under
// "PDs for VD N" in storcli output
type PhysicalDisk struct {
	EnclosureSlot string
	// Slot is the controller device ID (DID)
	Slot  string
	State string
	Size  string
	// Media is HDD or SSD
	Media string
	Model string
}

// Rotational reports whether the disk is anything other than an SSD
func (p PhysicalDisk) Rotational() bool {
	return p.Media != "SSD"
}

// VolumeDevice is one row of the "/cN/vM" virtual disk table
type VolumeDevice struct {
	DriveGroup string
	// Type is the RAID level, e.g. RAID1
	Type  string
	State string
	Size  string
	Name  string
}

// VolumeProperties holds the "VDN Properties" object
type VolumeProperties struct {
	// Serial is the SCSI NAA identifier; lsblk reports the same value as
	// the serial of the exported block device
	Serial      string
	OSDriveName string
	Strip       string
	Drives      int
}

// Inventory is the RAID layout of every responding controller
type Inventory struct {
	Serials    map[string]VolumeID
	Disks      map[VolumeID][]PhysicalDisk
	Devices    map[VolumeID][]VolumeDevice
	Properties map[VolumeID]VolumeProperties
}

func NewInventory() *Inventory {
	return &Inventory{
		Serials:    make(map[string]VolumeID),
		Disks:      make(map[VolumeID][]PhysicalDisk),
		Devices:    make(map[VolumeID][]VolumeDevice),
		Properties: make(map[VolumeID]VolumeProperties),
	}
}

// Lookup resolves a block device serial to its virtual disk
func (inv *Inventory) Lookup(serial string) (VolumeID, bool) {
	if inv == nil || serial == "" {
		return 0, false
	}
	vd, ok := inv.Serials[serial]
	return vd, ok
}

// Empty reports whether no virtual disk was registered by serial
func (inv *Inventory) Empty() bool {
	return inv == nil || len(inv.Serials) == 0
}

// StatusSuccess is the CommandStatus.Status of a controller that answered
const StatusSuccess = "Success"
