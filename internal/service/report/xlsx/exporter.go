package xlsx

import (
	"fmt"
	"io"
	"os"

	"github.com/kubev2v/sddcinfo/internal/service/report/types"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSDDCs     = "SDDCs"
	SheetClusters  = "Clusters"
	SheetNetworks  = "Networks"
	SheetOrgTotals = "Org Totals"
)

type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

// Exporter writes the report as a workbook, one sheet per table.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// WriteFile writes the workbook to filename.
func (e *Exporter) WriteFile(data *types.ReportData, filename string) error {
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		_ = out.Close()
	}()

	return e.Write(data, out)
}

func (e *Exporter) Write(data *types.ReportData, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheet{sddcSheet(data), clusterSheet(data)}
	if data.Options.Networks {
		sheets = append(sheets, networkSheet(data))
	}
	if !data.SingleSDDC() && data.Summary != nil {
		sheets = append(sheets, orgSheet(data))
	}

	for i, s := range sheets {
		index, err := f.NewSheet(s.name)
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := writeRows(f, s); err != nil {
			return err
		}
	}
	_ = f.DeleteSheet("Sheet1")

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, s sheet) error {
	for col, header := range s.headers {
		if err := f.SetCellValue(s.name, cell(col, 1), header); err != nil {
			return err
		}
	}
	for row, values := range s.rows {
		for col, value := range values {
			if err := f.SetCellValue(s.name, cell(col, row+2), value); err != nil {
				return err
			}
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)
	return fmt.Sprintf("%s%d", name, row)
}

func sddcSheet(data *types.ReportData) sheet {
	s := sheet{
		name: SheetSDDCs,
		headers: []string{"Name", "ID", "State", "Region", "AZ", "CIDR", "Version", "VC UUID", "VC URL",
			"Linked VPC", "HCX", "NSX Advanced", "DRaaS Appliances", "VCDR", "NFS", "Hosts", "Public IPs"},
	}
	for _, r := range data.SDDCs {
		if r.Failed() {
			s.rows = append(s.rows, []any{"", r.ID, string(r.State)})
			continue
		}
		linkedVPC := ""
		if r.LinkedVPC != nil {
			linkedVPC = r.LinkedVPC.ID
		}
		var publicIPs any = ""
		if data.Options.Networks && r.PublicIPs != nil {
			publicIPs = *r.PublicIPs
		}
		s.rows = append(s.rows, []any{
			r.Name, r.ID, string(r.State), r.Region, r.AZs(), r.CIDR, r.Version, r.VCInstanceID, r.VCURL,
			linkedVPC, r.AddOns.HCX, r.AddOns.NSXAdvanced, r.AddOns.DRaaSAppliances, r.AddOns.VCDRRecovery,
			r.AddOns.NFSDatastore && !r.AddOns.VCDRRecovery, r.TotalHosts(), publicIPs,
		})
	}
	return s
}

func clusterSheet(data *types.ReportData) sheet {
	s := sheet{name: SheetClusters, headers: []string{"SDDC", "Region", "Cluster", "Instance Type", "Hosts"}}
	for _, r := range data.SDDCs {
		for _, c := range r.Clusters {
			s.rows = append(s.rows, []any{r.Name, r.Region, c.Name, c.InstanceType, c.HostCount})
		}
	}
	return s
}

func networkSheet(data *types.ReportData) sheet {
	s := sheet{name: SheetNetworks, headers: []string{"SDDC", "Network", "Type", "Advertised"}}
	for _, r := range data.SDDCs {
		if r.Networks == nil {
			continue
		}
		for _, key := range r.Networks.Keys() {
			entry := r.Networks.Entries[key]
			advertised := ""
			if r.Networks.HasAdvertisedFeed {
				advertised = "NOT Advertised"
				if entry.Advertised() {
					advertised = entry.AdvertisedPath
				}
			}
			s.rows = append(s.rows, []any{r.Name, key, string(entry.Type), advertised})
		}
	}
	return s
}

func orgSheet(data *types.ReportData) sheet {
	summary := data.Summary
	s := sheet{name: SheetOrgTotals, headers: []string{"Region", "Instance Type", "Hosts"}}
	for _, region := range summary.Regions() {
		for _, instanceType := range summary.InstanceTypes(region) {
			s.rows = append(s.rows, []any{region, instanceType, summary.InstancesByRegionAndType[region][instanceType]})
		}
		s.rows = append(s.rows, []any{region, "Total", summary.HostsByRegion[region]})
	}
	s.rows = append(s.rows,
		[]any{"Org", "Public IPs", summary.TotalPublicIPs},
		[]any{"Org", "Hosts", summary.TotalHosts()},
		[]any{"Org", "Clusters", summary.TotalClusters},
		[]any{"Org", "SDDCs", summary.TotalSDDCs},
		[]any{"Org", "Failed SDDCs", summary.FailedSDDCs},
		[]any{"Org", "Org Type", summary.OrgType},
	)
	return s
}
