package hba

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/raidblk/internal/command"
)

const (
	serialVD0 = "6d0946606d8a5b002a3b4c5d6e7f8091"
	serialVD1 = "6d0946606d8a5b002a3b4c5d6e7f8092"
)

func readFixture(t *testing.T) []byte {
	data, err := os.ReadFile("testdata/call_vall_show_all.json")
	require.NoError(t, err)
	return data
}

func TestParseInventory(t *testing.T) {
	inv, err := ParseInventory(readFixture(t))
	require.NoError(t, err)

	assert.Equal(t, map[string]VolumeID{serialVD0: 0, serialVD1: 1}, inv.Serials)

	require.Len(t, inv.Disks[0], 2)
	assert.Equal(t, PhysicalDisk{
		EnclosureSlot: "32:0",
		Slot:          "4",
		State:         "Onln",
		Size:          "446.625 GB",
		Media:         "SSD",
		Model:         "INTEL SSDSC2KB480G8",
	}, inv.Disks[0][0])
	require.Len(t, inv.Disks[1], 3)
	assert.Equal(t, "8", inv.Disks[1][2].Slot)

	require.Len(t, inv.Devices[0], 1)
	assert.Equal(t, VolumeDevice{
		DriveGroup: "0/0",
		Type:       "RAID1",
		State:      "Optl",
		Size:       "446.625 GB",
		Name:       "system",
	}, inv.Devices[0][0])
	assert.Equal(t, "RAID5", inv.Devices[1][0].Type)

	assert.Equal(t, VolumeProperties{
		Serial:      serialVD0,
		OSDriveName: "/dev/sda",
		Strip:       "256 KB",
		Drives:      2,
	}, inv.Properties[0])
}

func TestParseInventorySkipsFailedControllers(t *testing.T) {
	data := []byte(`{"Controllers":[
		{"Command Status":{"Controller":0,"Status":"Failure","Description":"Controller 0 not found"},
		 "Response Data":{"VD0 Properties":{"SCSI NAA Id":"AAA"}}},
		{"Command Status":{"Controller":1,"Status":"Success"},
		 "Response Data":{"VD2 Properties":{"SCSI NAA Id":"BBB"},"PDs for VD 2":[{"DID":9,"Med":"HDD"}]}}
	]}`)

	inv, err := ParseInventory(data)
	require.NoError(t, err)

	_, ok := inv.Lookup("AAA")
	assert.False(t, ok)
	vd, ok := inv.Lookup("BBB")
	require.True(t, ok)
	assert.Equal(t, VolumeID(2), vd)
	assert.Equal(t, []PhysicalDisk{{Slot: "9", Media: "HDD"}}, inv.Disks[2])
}

func TestParseInventoryLaterSerialWins(t *testing.T) {
	data := []byte(`{"Controllers":[
		{"Command Status":{"Status":"Success"},
		 "Response Data":{"VD0 Properties":{"SCSI NAA Id":"DUP"},"VD1 Properties":{"SCSI NAA Id":"DUP"}}}
	]}`)

	inv, err := ParseInventory(data)
	require.NoError(t, err)

	vd, ok := inv.Lookup("DUP")
	require.True(t, ok)
	assert.Equal(t, VolumeID(1), vd)
	assert.Len(t, inv.Properties, 2)
}

func TestParseInventoryIgnoresPropertiesWithoutSerial(t *testing.T) {
	data := []byte(`{"Controllers":[
		{"Command Status":{"Status":"Success"},
		 "Response Data":{"VD0 Properties":{"Strip Size":"64 KB"},"Virtual Drives":1}}
	]}`)

	inv, err := ParseInventory(data)
	require.NoError(t, err)
	assert.True(t, inv.Empty())
	assert.Equal(t, "64 KB", inv.Properties[0].Strip)
}

func TestParseInventoryMalformed(t *testing.T) {
	testCases := []struct {
		Description string
		Data        string
	}{
		{Description: "not json", Data: "storcli64: command not found"},
		{Description: "truncated json", Data: `{"Controllers":[{"Command Status":`},
		{Description: "no controller list", Data: `{"Status":"Success"}`},
		{Description: "empty output", Data: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			inv, err := ParseInventory([]byte(tc.Data))
			assert.Error(t, err)
			require.NotNil(t, inv)
			assert.True(t, inv.Empty())
			assert.Empty(t, inv.Disks)
			assert.Empty(t, inv.Devices)
		})
	}
}

func TestFetchInventory(t *testing.T) {
	runner := command.NewFake().On("/opt/MegaRAID/storcli/storcli64", string(readFixture(t)), nil)

	inv, err := FetchInventory(context.Background(), runner, "/opt/MegaRAID/storcli/storcli64",
		[]string{"/call/vall", "show", "all", "J"})
	require.NoError(t, err)
	assert.Len(t, inv.Serials, 2)
	assert.Equal(t, "/opt/MegaRAID/storcli/storcli64 /call/vall show all J",
		runner.CommandLine("/opt/MegaRAID/storcli/storcli64"))
}

func TestFetchInventoryCommandFailure(t *testing.T) {
	runner := command.NewFake().On("storcli64", string(readFixture(t)), errors.New("exit status 1"))

	inv, err := FetchInventory(context.Background(), runner, "storcli64", nil)
	assert.Error(t, err)
	require.NotNil(t, inv)
	assert.True(t, inv.Empty())

	inv, err = FetchInventory(context.Background(), runner, "/missing/perccli64", nil)
	assert.Error(t, err)
	assert.True(t, inv.Empty())
}

func TestInventoryLookup(t *testing.T) {
	inv := NewInventory()
	inv.Serials["SN0"] = 0

	vd, ok := inv.Lookup("SN0")
	assert.True(t, ok)
	assert.Equal(t, VolumeID(0), vd)

	_, ok = inv.Lookup("")
	assert.False(t, ok)
	_, ok = inv.Lookup("missing")
	assert.False(t, ok)

	var nilInv *Inventory
	_, ok = nilInv.Lookup("SN0")
	assert.False(t, ok)
	assert.True(t, nilInv.Empty())
}

func TestPhysicalDiskRotational(t *testing.T) {
	assert.False(t, PhysicalDisk{Media: "SSD"}.Rotational())
	assert.True(t, PhysicalDisk{Media: "HDD"}.Rotational())
	assert.True(t, PhysicalDisk{Media: "SAS"}.Rotational())
	assert.True(t, PhysicalDisk{}.Rotational())
}
