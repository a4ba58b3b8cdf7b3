package structured

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kubev2v/sddcinfo/internal/service/report/types"
	"github.com/kubev2v/sddcinfo/pkg/inventory"
	"sigs.k8s.io/yaml"
)

// Document is the machine readable form of the report.
type Document struct {
	Generated string                `json:"generated"`
	SDDCs     []sddcDocument        `json:"sddcs"`
	Org       *inventory.OrgSummary `json:"org,omitempty"`
}

type sddcDocument struct {
	inventory.SDDCRecord
	TotalHosts int  `json:"totalHosts"`
	Failed     bool `json:"failed,omitempty"`
}

// Renderer renders the report as JSON or YAML.
type Renderer struct {
	format types.ReportFormat
}

func NewJSONRenderer() *Renderer {
	return &Renderer{format: types.ReportFormatJSON}
}

func NewYAMLRenderer() *Renderer {
	return &Renderer{format: types.ReportFormatYAML}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return r.format
}

func (r *Renderer) Render(data *types.ReportData) (string, error) {
	doc := NewDocument(data)

	var (
		out []byte
		err error
	)
	switch r.format {
	case types.ReportFormatYAML:
		out, err = yaml.Marshal(doc)
	default:
		out, err = json.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(out), nil
}

func NewDocument(data *types.ReportData) Document {
	doc := Document{
		Generated: data.Generated.UTC().Format(time.RFC3339),
		SDDCs:     make([]sddcDocument, 0, len(data.SDDCs)),
	}
	for _, record := range data.SDDCs {
		if !data.Options.Networks {
			record.PublicIPs = nil
			record.Networks = nil
			record.LearnedRoutes = nil
		}
		doc.SDDCs = append(doc.SDDCs, sddcDocument{
			SDDCRecord: record,
			TotalHosts: record.TotalHosts(),
			Failed:     record.Failed(),
		})
	}
	if !data.SingleSDDC() {
		doc.Org = data.Summary
	}
	return doc
}
