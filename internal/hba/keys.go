package hba

import (
	"regexp"
	"strconv"
)

// KeyKind classifies a key of a controller's "Response Data" object
type KeyKind int

const (
	KeyUnrecognized KeyKind = iota
	// KeyVolumeDevice is "/cN/vM", the virtual disk table
	KeyVolumeDevice
	// KeyVolumeProperties is "VDM Properties"
	KeyVolumeProperties
	// KeyPhysicalDisks is "PDs for VD M"
	KeyPhysicalDisks
)

func (k KeyKind) String() string {
	switch k {
	case KeyVolumeDevice:
		return "volume-device"
	case KeyVolumeProperties:
		return "volume-properties"
	case KeyPhysicalDisks:
		return "physical-disks"
	default:
		return "unrecognized"
	}
}

// ResponseKey is a classified response key and the volume it refers to
type ResponseKey struct {
	Kind   KeyKind
	Volume VolumeID
}

var keyPatterns = []struct {
	kind KeyKind
	re   *regexp.Regexp
}{
	{KeyVolumeDevice, regexp.MustCompile(`/c\d+/v(\d+)`)},
	{KeyVolumeProperties, regexp.MustCompile(`VD(\d+) Properties`)},
	{KeyPhysicalDisks, regexp.MustCompile(`PDs for VD (\d+)`)},
}

// ClassifyKey matches key against the known response key shapes. The first
// matching shape wins.
func ClassifyKey(key string) ResponseKey {
	for _, p := range keyPatterns {
		m := p.re.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return ResponseKey{Kind: p.kind, Volume: VolumeID(id)}
	}
	return ResponseKey{Kind: KeyUnrecognized}
}
