package slack_test

import (
	"encoding/json"

	"github.com/kubev2v/sddcinfo/internal/service/report/reporttest"
	"github.com/kubev2v/sddcinfo/internal/service/report/slack"
	"github.com/kubev2v/sddcinfo/internal/service/report/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("slack renderer", func() {
	var renderer *slack.Renderer

	BeforeEach(func() {
		renderer = slack.NewRenderer()
	})

	It("supports the slack format", func() {
		Expect(renderer.SupportedFormat()).To(Equal(types.ReportFormatSlack))
	})

	It("alternates sddc context blocks and dividers and ends with the rollup", func() {
		payload := renderer.Payload(reporttest.SampleReportData(false, ""))

		kinds := make([]string, 0, len(payload.Blocks))
		for _, b := range payload.Blocks {
			kinds = append(kinds, b.Type)
		}
		Expect(kinds).To(Equal([]string{"divider", "context", "divider", "context", "divider", "section"}))

		text := payload.Blocks[1].Elements[0]
		Expect(text.Type).To(Equal("mrkdwn"))
		Expect(text.Text).To(HavePrefix("*SDDC Name:* prod-sddc\n*SDDC ID:* 4e8a1f92-3c2d-4b9a-9c8e-0e1f2a3b4c5d\n*SDDC Region:* US_WEST_2 *AZ:* us-west-2a,us-west-2b\n*SDDC CIDR:* 10.2.0.0/16\n*SDDC Version:* 1.18.0.3\n*SDDC VC_UUID:* vc-instance-1\n"))
		Expect(text.Text).To(ContainSubstring("*HCX* is installed\n"))
		Expect(text.Text).To(ContainSubstring("*DRaaS* is installed with *3* replication appliance(s)\n"))
		Expect(text.Text).To(ContainSubstring("*Cluster-1* - i3.metal 3 Hosts\n*Cluster-2* - i4i.metal 5 Hosts\n"))
		Expect(text.Text).To(HaveSuffix("*Total Hosts in SDDC:* 8\n"))

		Expect(payload.Blocks[3].Elements[0].Text).To(Equal("*SDDC ID:* 9b1d7e2a-0000-4000-8000-000000000001 is in *FAILED* state\n"))

		rollup := payload.Blocks[5].Text
		Expect(rollup.Type).To(Equal("mrkdwn"))
		Expect(rollup.Text).To(Equal("*Org Totals:*\n" +
			"*US_WEST_2* has *3* *i3.metal* instances\n" +
			"*US_WEST_2* has *5* *i4i.metal* instances\n" +
			"*US_WEST_2* has *8* total hosts\n" +
			"*Total User public IPs in Org:* 0\n" +
			"*Total Hosts in Org:* 8\n" +
			"*Total Clusters in Org:* 2\n" +
			"*Total SDDCs in Org:* 1\n" +
			"*Failed SDDCs in Org:* 1"))
	})

	It("omits the rollup section for a single SDDC", func() {
		payload := renderer.Payload(reporttest.SampleReportData(false, "4e8a1f92-3c2d-4b9a-9c8e-0e1f2a3b4c5d"))

		Expect(payload.Blocks).To(HaveLen(3))
		Expect(payload.Blocks[2].Type).To(Equal("divider"))
		for _, b := range payload.Blocks {
			Expect(b.Type).NotTo(Equal("section"))
		}
	})

	It("never includes network detail", func() {
		out, err := renderer.Render(reporttest.SampleReportData(true, ""))

		Expect(err).To(BeNil())
		Expect(out).NotTo(ContainSubstring("Network"))
		Expect(out).NotTo(ContainSubstring("Advertised"))
		Expect(out).NotTo(ContainSubstring("Learned"))
		Expect(out).To(ContainSubstring(`*User Public IPs in SDDC:* 3\n`))
	})

	It("renders the payload as json", func() {
		out, err := renderer.Render(reporttest.SampleReportData(false, "4e8a1f92-3c2d-4b9a-9c8e-0e1f2a3b4c5d"))
		Expect(err).To(BeNil())

		var decoded map[string][]map[string]any
		Expect(json.Unmarshal([]byte(out), &decoded)).To(Succeed())
		Expect(decoded["blocks"]).To(HaveLen(3))
		Expect(decoded["blocks"][0]).To(Equal(map[string]any{"type": "divider"}))
		Expect(decoded["blocks"][1]["elements"]).To(HaveLen(1))
		Expect(out).To(HavePrefix(`{"blocks":[{"type":"divider"},{"type":"context","elements":[{"type":"mrkdwn","text":"*SDDC Name:* prod-sddc\n`))
	})
})
