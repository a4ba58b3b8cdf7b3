package types

import (
	"time"

	"github.com/kubev2v/sddcinfo/pkg/inventory"
)

type ReportRenderer interface {
	Render(data *ReportData) (string, error)
	SupportedFormat() ReportFormat
}

type ReportFormat string

const (
	ReportFormatText  ReportFormat = "text"
	ReportFormatJSON  ReportFormat = "json"
	ReportFormatYAML  ReportFormat = "yaml"
	ReportFormatSlack ReportFormat = "slack"
)

type ReportOptions struct {
	// SDDCID restricts the report to one SDDC. The org rollup is not rendered then.
	SDDCID string
	// Networks adds the network, route and public IP detail.
	Networks bool
}

// ReportData is built once per run and read by every renderer.
type ReportData struct {
	SDDCs     []inventory.SDDCRecord
	Summary   *inventory.OrgSummary
	Options   ReportOptions
	Generated time.Time
}

// SingleSDDC reports whether the run targeted one SDDC.
func (d *ReportData) SingleSDDC() bool {
	return d.Options.SDDCID != ""
}
