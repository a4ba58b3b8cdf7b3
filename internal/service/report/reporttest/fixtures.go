// Package reporttest holds report data shared by the renderer tests.
package reporttest

import (
	"time"

	"github.com/kubev2v/sddcinfo/internal/service/report/types"
	"github.com/kubev2v/sddcinfo/pkg/inventory"
)

// SampleReportData returns a two SDDC org report used by the renderer tests:
// one ready SDDC and one failed SDDC. The failed one is left out when sddcID
// is set, network detail is filled only when networks is true.
func SampleReportData(networks bool, sddcID string) *types.ReportData {
	publicIPs := 3
	ready := inventory.SDDCRecord{
		Name:              "prod-sddc",
		ID:                "4e8a1f92-3c2d-4b9a-9c8e-0e1f2a3b4c5d",
		Region:            "US_WEST_2",
		CIDR:              "10.2.0.0/16",
		Version:           "1.18.0.3",
		VCInstanceID:      "vc-instance-1",
		VCURL:             "https://vcenter.sddc-44-1-2-3.vmwarevmc.com/",
		AvailabilityZones: []string{"us-west-2a", "us-west-2b"},
		State:             inventory.StateReady,
		Clusters: []inventory.ClusterRecord{
			{Name: "Cluster-1", InstanceType: "i3.metal", HostCount: 3},
			{Name: "Cluster-2", InstanceType: "i4i.metal", HostCount: 5},
		},
		AddOns:    inventory.AddOns{HCX: true, DRaaS: true, DRaaSAppliances: 3},
		LinkedVPC: &inventory.LinkedVPC{ID: "vpc-0a1b2c"},
	}
	if networks {
		ready.PublicIPs = &publicIPs
		ready.Networks = &inventory.NetworkView{
			Entries: map[string]inventory.NetworkEntry{
				"10.0.0.0/24":    {Type: inventory.SegmentRouted, AdvertisedPath: "DX"},
				"10.0.2.0/24":    {Type: inventory.SegmentRouted},
				"192.168.1.0/24": {Type: inventory.SegmentHCXMgmt, AdvertisedPath: "DX"},
			},
			SegmentCount:      2,
			HasAdvertisedFeed: true,
		}
		ready.LearnedRoutes = []inventory.LearnedRoute{{Destination: "10.100.0.0/16", Source: "DX"}}
	}
	failed := inventory.SDDCRecord{ID: "9b1d7e2a-0000-4000-8000-000000000001", State: inventory.StateFailed}

	records := []inventory.SDDCRecord{ready}
	if sddcID == "" {
		records = append(records, failed)
	}

	summary := inventory.NewOrgSummary("2f6a2b80-6c4e-4d3b-9a77-7d1c2e3f4a5b")
	summary.OrgType = "CUSTOMER"
	for _, r := range records {
		summary.Fold(r)
	}

	return &types.ReportData{
		SDDCs:     records,
		Summary:   summary,
		Options:   types.ReportOptions{SDDCID: sddcID, Networks: networks},
		Generated: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
	}
}
