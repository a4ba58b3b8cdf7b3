package xlsx_test

import (
	"bytes"
	"path/filepath"

	"github.com/kubev2v/sddcinfo/internal/service/report/reporttest"
	"github.com/kubev2v/sddcinfo/internal/service/report/xlsx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("xlsx exporter", func() {
	open := func(data []byte) *excelize.File {
		f, err := excelize.OpenReader(bytes.NewReader(data))
		Expect(err).To(BeNil())
		DeferCleanup(f.Close)
		return f
	}

	It("writes one sheet per table", func() {
		var buf bytes.Buffer
		Expect(xlsx.NewExporter().Write(reporttest.SampleReportData(true, ""), &buf)).To(Succeed())

		f := open(buf.Bytes())
		Expect(f.GetSheetList()).To(Equal([]string{xlsx.SheetSDDCs, xlsx.SheetClusters, xlsx.SheetNetworks, xlsx.SheetOrgTotals}))

		rows, err := f.GetRows(xlsx.SheetSDDCs)
		Expect(err).To(BeNil())
		Expect(rows).To(HaveLen(3))
		Expect(rows[0][0]).To(Equal("Name"))
		Expect(rows[1][0]).To(Equal("prod-sddc"))
		Expect(rows[1][15]).To(Equal("8"))
		Expect(rows[2][1]).To(Equal("9b1d7e2a-0000-4000-8000-000000000001"))
		Expect(rows[2][2]).To(Equal("FAILED"))

		clusters, err := f.GetRows(xlsx.SheetClusters)
		Expect(err).To(BeNil())
		Expect(clusters).To(HaveLen(3))
		Expect(clusters[1]).To(Equal([]string{"prod-sddc", "US_WEST_2", "Cluster-1", "i3.metal", "3"}))

		networks, err := f.GetRows(xlsx.SheetNetworks)
		Expect(err).To(BeNil())
		Expect(networks[1]).To(Equal([]string{"prod-sddc", "10.0.0.0/24", "ROUTED", "DX"}))
		Expect(networks[2]).To(Equal([]string{"prod-sddc", "10.0.2.0/24", "ROUTED", "NOT Advertised"}))

		totals, err := f.GetRows(xlsx.SheetOrgTotals)
		Expect(err).To(BeNil())
		Expect(totals).To(ContainElement([]string{"US_WEST_2", "Total", "8"}))
		Expect(totals).To(ContainElement([]string{"Org", "SDDCs", "1"}))
	})

	It("leaves out the networks and org totals sheets when not requested", func() {
		filename := filepath.Join(GinkgoT().TempDir(), "report.xlsx")
		Expect(xlsx.NewExporter().WriteFile(reporttest.SampleReportData(false, "4e8a1f92-3c2d-4b9a-9c8e-0e1f2a3b4c5d"), filename)).To(Succeed())

		f, err := excelize.OpenFile(filename)
		Expect(err).To(BeNil())
		defer f.Close()
		Expect(f.GetSheetList()).To(Equal([]string{xlsx.SheetSDDCs, xlsx.SheetClusters}))
	})
})
