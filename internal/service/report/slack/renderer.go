package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kubev2v/sddcinfo/internal/service/report/types"
	"github.com/kubev2v/sddcinfo/pkg/inventory"
)

const (
	blockDivider = "divider"
	blockContext = "context"
	blockSection = "section"
	textMrkdwn   = "mrkdwn"
)

// Payload is the message posted to the chat webhook.
type Payload struct {
	Blocks []Block `json:"blocks"`
}

type Block struct {
	Type     string `json:"type"`
	Elements []Text `json:"elements,omitempty"`
	Text     *Text  `json:"text,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Renderer builds the webhook payload: one context block and a divider per
// SDDC, then a section block with the org rollup. Network detail is never
// included.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatSlack
}

func (r *Renderer) Render(data *types.ReportData) (string, error) {
	payload := r.Payload(data)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		return "", fmt.Errorf("failed to encode webhook payload: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (r *Renderer) Payload(data *types.ReportData) Payload {
	payload := Payload{Blocks: []Block{{Type: blockDivider}}}

	for _, record := range data.SDDCs {
		payload.Blocks = append(payload.Blocks,
			Block{Type: blockContext, Elements: []Text{{Type: textMrkdwn, Text: sddcText(record, data.Options.Networks)}}},
			Block{Type: blockDivider},
		)
	}

	if !data.SingleSDDC() && data.Summary != nil {
		payload.Blocks = append(payload.Blocks, Block{
			Type: blockSection,
			Text: &Text{Type: textMrkdwn, Text: rollupText(data.Summary)},
		})
	}

	return payload
}

func sddcText(record inventory.SDDCRecord, networks bool) string {
	var b strings.Builder

	if record.Failed() {
		fmt.Fprintf(&b, "*SDDC ID:* %s is in *%s* state\n", record.ID, record.State)
		return b.String()
	}

	fmt.Fprintf(&b, "*SDDC Name:* %s\n*SDDC ID:* %s\n*SDDC Region:* %s *AZ:* %s\n*SDDC CIDR:* %s\n*SDDC Version:* %s\n*SDDC VC_UUID:* %s\n",
		record.Name, record.ID, record.Region, record.AZs(), record.CIDR, record.Version, record.VCInstanceID)
	if record.LinkedVPC != nil {
		fmt.Fprintf(&b, "*Linked VPC:* %s\n", record.LinkedVPC.ID)
	}

	addOns := record.AddOns
	if addOns.HCX {
		b.WriteString("*HCX* is installed\n")
	}
	if addOns.NSXAdvanced {
		b.WriteString("*NSX Advanced* is enabled\n")
	}
	if addOns.DRaaS {
		fmt.Fprintf(&b, "*DRaaS* is installed with *%d* replication appliance(s)\n", addOns.DRaaSAppliances)
	}
	switch {
	case addOns.VCDRRecovery:
		b.WriteString("*VCDR* recovery SDDC\n")
	case addOns.NFSDatastore:
		b.WriteString("*NFS* datastore is attached\n")
	}

	for _, c := range record.Clusters {
		fmt.Fprintf(&b, "*%s* - %s %d Hosts\n", c.Name, c.InstanceType, c.HostCount)
	}
	if networks && record.PublicIPs != nil {
		fmt.Fprintf(&b, "*User Public IPs in SDDC:* %d\n", *record.PublicIPs)
	}
	fmt.Fprintf(&b, "*Total Hosts in SDDC:* %d\n", record.TotalHosts())

	return b.String()
}

func rollupText(summary *inventory.OrgSummary) string {
	var b strings.Builder

	b.WriteString("*Org Totals:*\n")
	for _, region := range summary.Regions() {
		for _, instanceType := range summary.InstanceTypes(region) {
			fmt.Fprintf(&b, "*%s* has *%d* *%s* instances\n", region, summary.InstancesByRegionAndType[region][instanceType], instanceType)
		}
	}
	for _, region := range summary.Regions() {
		fmt.Fprintf(&b, "*%s* has *%d* total hosts\n", region, summary.HostsByRegion[region])
	}
	fmt.Fprintf(&b, "*Total User public IPs in Org:* %d\n", summary.TotalPublicIPs)
	fmt.Fprintf(&b, "*Total Hosts in Org:* %d\n", summary.TotalHosts())
	fmt.Fprintf(&b, "*Total Clusters in Org:* %d\n", summary.TotalClusters)
	fmt.Fprintf(&b, "*Total SDDCs in Org:* %d", summary.TotalSDDCs)
	if summary.FailedSDDCs > 0 {
		fmt.Fprintf(&b, "\n*Failed SDDCs in Org:* %d", summary.FailedSDDCs)
	}

	return b.String()
}
