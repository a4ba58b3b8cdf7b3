package inventory

import (
	"encoding/json"
	"strings"

	"github.com/kubev2v/sddcinfo/pkg/vmc"
	"github.com/vmware/govmomi/vim25/soap"
)

const (
	hcxManagementVM  = "HCX"
	srmPrefix        = "SRM-"
	vcdrPrefix       = "VCDR"
	defaultDRaaSTier = 1
)

// draasTiers maps vSphere Replication appliance VM prefixes to the appliance
// count. Evaluated in order, first match wins. There is no VRS-4 entry.
var draasTiers = []struct {
	prefix     string
	appliances int
}{
	{prefix: "VRS-1", appliances: 2},
	{prefix: "VRS-2", appliances: 3},
	{prefix: "VRS-3", appliances: 4},
	{prefix: "VRS-5", appliances: 5},
}

// Normalize projects a VMC SDDC payload into an SDDCRecord.
func Normalize(sddc vmc.SDDC) SDDCRecord {
	if strings.EqualFold(sddc.State, string(StateFailed)) || sddc.ResourceConfig == nil {
		id := sddc.ID
		if sddc.ResourceConfig != nil && sddc.ResourceConfig.SDDCID != "" {
			id = sddc.ResourceConfig.SDDCID
		}
		state := SDDCState(strings.ToUpper(sddc.State))
		if state == "" {
			state = StateFailed
		}
		return SDDCRecord{ID: id, State: state, incomplete: true}
	}

	rc := sddc.ResourceConfig
	record := SDDCRecord{
		Name:          sddc.Name,
		ID:            rc.SDDCID,
		Region:        rc.Region,
		Version:       rc.SDDCManifest.VMCInternalVersion,
		VCInstanceID:  rc.VCInstanceID,
		VCURL:         rc.VCURL,
		VCSDKEndpoint: sdkEndpoint(rc.VCURL),
		State:         SDDCState(strings.ToUpper(sddc.State)),
		AddOns:        addOns(rc),
	}
	if record.ID == "" {
		record.ID = sddc.ID
	}
	if len(rc.Agents) > 0 {
		record.CIDR = rc.Agents[0].NetworkCIDR
	}
	if len(rc.AvailabilityZones) > 0 {
		record.AvailabilityZones = append(record.AvailabilityZones, rc.AvailabilityZones[0])
		if len(rc.AvailabilityZones) > 1 {
			record.AvailabilityZones = append(record.AvailabilityZones, rc.AvailabilityZones[1])
		}
	}

	record.Clusters = make([]ClusterRecord, 0, len(rc.Clusters))
	for _, c := range rc.Clusters {
		record.Clusters = append(record.Clusters, ClusterRecord{
			Name:         c.ClusterName,
			InstanceType: c.EsxHostInfo.InstanceType,
			HostCount:    len(c.EsxHostList),
		})
	}

	return record
}

func addOns(rc *vmc.ResourceConfig) AddOns {
	a := AddOns{}

	_, a.HCX = rc.ManagementVMs[hcxManagementVM]
	if rc.NSXTAddons != nil {
		a.NSXAdvanced = rc.NSXTAddons.EnableNSXAdvancedAddon
	}

	if hasVMWithPrefix(rc.ManagementVMs, srmPrefix) {
		a.DRaaS = true
		a.DRaaSAppliances = draasAppliances(rc.ManagementVMs)
	}

	// a VCDR recovery SDDC always has NFS datastores, only the former is reported
	if hasVMWithPrefix(rc.ManagementVMs, vcdrPrefix) {
		a.VCDRRecovery = true
	} else {
		a.NFSDatastore = rc.NFSMode
	}

	return a
}

func draasAppliances(vms map[string]json.RawMessage) int {
	for _, tier := range draasTiers {
		if hasVMWithPrefix(vms, tier.prefix) {
			return tier.appliances
		}
	}
	return defaultDRaaSTier
}

func hasVMWithPrefix(vms map[string]json.RawMessage, prefix string) bool {
	for key := range vms {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// sdkEndpoint returns the vCenter SDK endpoint for a VC URL, without credentials.
func sdkEndpoint(vcURL string) string {
	u, err := soap.ParseURL(vcURL)
	if err != nil || u == nil {
		return ""
	}
	u.User = nil
	return u.String()
}
