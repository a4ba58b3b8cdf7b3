package console

import (
	"fmt"
	"strings"

	"github.com/kubev2v/sddcinfo/internal/service/report/types"
	"github.com/kubev2v/sddcinfo/pkg/inventory"
)

// Renderer writes the report as plain lines for a terminal.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatText
}

func (r *Renderer) Render(data *types.ReportData) (string, error) {
	var b strings.Builder

	for _, record := range data.SDDCs {
		if record.Failed() {
			r.writeFailed(&b, record)
			continue
		}
		r.writeIdentity(&b, record)
		r.writeAddOns(&b, record.AddOns)
		r.writeClusters(&b, record, data.Options.Networks)
		if data.Options.Networks {
			r.writeNetworks(&b, record)
		}
		b.WriteString("\n")
	}

	if !data.SingleSDDC() && data.Summary != nil {
		r.writeRollup(&b, data.Summary)
	}

	return b.String(), nil
}

func (r *Renderer) writeFailed(b *strings.Builder, record inventory.SDDCRecord) {
	fmt.Fprintf(b, "SDDC %s is in %s state, skipped\n\n", record.ID, record.State)
}

func (r *Renderer) writeIdentity(b *strings.Builder, record inventory.SDDCRecord) {
	fmt.Fprintf(b, "SDDC Name: %s\n", record.Name)
	fmt.Fprintf(b, "SDDC ID: %s\n", record.ID)
	fmt.Fprintf(b, "SDDC Region: %s\n", record.Region)
	fmt.Fprintf(b, "SDDC AZ: %s\n", record.AZs())
	fmt.Fprintf(b, "SDDC CIDR: %s\n", record.CIDR)
	fmt.Fprintf(b, "SDDC Version: %s\n", record.Version)
	fmt.Fprintf(b, "SDDC VC_UUID: %s\n", record.VCInstanceID)
	if record.VCURL != "" {
		fmt.Fprintf(b, "SDDC VC_URL: %s\n", record.VCURL)
	}
	if record.LinkedVPC != nil {
		fmt.Fprintf(b, "Linked VPC: %s\n", record.LinkedVPC.ID)
	}
}

func (r *Renderer) writeAddOns(b *strings.Builder, addOns inventory.AddOns) {
	if addOns.HCX {
		b.WriteString("HCX is installed\n")
	}
	if addOns.NSXAdvanced {
		b.WriteString("NSX Advanced add-on is enabled\n")
	}
	if addOns.DRaaS {
		fmt.Fprintf(b, "DRaaS is installed with %s\n", appliances(addOns.DRaaSAppliances))
	}
	switch {
	case addOns.VCDRRecovery:
		b.WriteString("VCDR recovery SDDC\n")
	case addOns.NFSDatastore:
		b.WriteString("NFS datastore is attached\n")
	}
}

func (r *Renderer) writeClusters(b *strings.Builder, record inventory.SDDCRecord, networks bool) {
	for _, c := range record.Clusters {
		fmt.Fprintf(b, "Cluster Name: %s - %s %d Hosts\n", c.Name, c.InstanceType, c.HostCount)
	}
	if networks && record.PublicIPs != nil {
		fmt.Fprintf(b, "User Public IPs in SDDC: %d\n", *record.PublicIPs)
	}
	fmt.Fprintf(b, "Total Hosts in SDDC: %d\n", record.TotalHosts())
}

func (r *Renderer) writeNetworks(b *strings.Builder, record inventory.SDDCRecord) {
	view := record.Networks
	if view == nil || len(view.Entries) == 0 {
		return
	}

	fmt.Fprintf(b, "Compute Segments in SDDC: %d\n", view.SegmentCount)
	for _, key := range view.Keys() {
		entry := view.Entries[key]
		switch {
		case !view.HasAdvertisedFeed:
			fmt.Fprintf(b, "Network: %-18s Type: %-12s\n", key, entry.Type)
		case entry.Advertised():
			fmt.Fprintf(b, "Network: %-18s Type: %-12s Advertised: %s\n", key, entry.Type, entry.AdvertisedPath)
		default:
			fmt.Fprintf(b, "Network: %-18s Type: %-12s NOT Advertised\n", key, entry.Type)
		}
	}
	if !view.HasAdvertisedFeed {
		return
	}
	for _, route := range record.LearnedRoutes {
		fmt.Fprintf(b, "DX Learned Route: %18s Source: %s\n", route.Destination, route.Source)
	}
}

func (r *Renderer) writeRollup(b *strings.Builder, summary *inventory.OrgSummary) {
	b.WriteString("Org Totals:\n")
	for _, region := range summary.Regions() {
		for _, instanceType := range summary.InstanceTypes(region) {
			fmt.Fprintf(b, "%s has %d %s instances\n", region, summary.InstancesByRegionAndType[region][instanceType], instanceType)
		}
	}

	b.WriteString("Total Hosts per Region:\n")
	for _, region := range summary.Regions() {
		fmt.Fprintf(b, "%s has %d total hosts\n", region, summary.HostsByRegion[region])
	}

	fmt.Fprintf(b, "Total User public IPs in Org: %d\n", summary.TotalPublicIPs)
	fmt.Fprintf(b, "Total Hosts in Org: %d\n", summary.TotalHosts())
	fmt.Fprintf(b, "Total Clusters in Org: %d\n", summary.TotalClusters)
	fmt.Fprintf(b, "Total SDDCs in Org: %d\n", summary.TotalSDDCs)
	if summary.FailedSDDCs > 0 {
		fmt.Fprintf(b, "Failed SDDCs in Org: %d\n", summary.FailedSDDCs)
	}
	fmt.Fprintf(b, "Org Type: %s\n", summary.OrgType)
}

func appliances(n int) string {
	if n == 1 {
		return "1 replication appliance"
	}
	return fmt.Sprintf("%d replication appliances", n)
}
