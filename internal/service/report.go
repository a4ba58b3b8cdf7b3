package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kubev2v/sddcinfo/internal/service/report/console"
	"github.com/kubev2v/sddcinfo/internal/service/report/slack"
	"github.com/kubev2v/sddcinfo/internal/service/report/structured"
	"github.com/kubev2v/sddcinfo/internal/service/report/types"
	"github.com/kubev2v/sddcinfo/pkg/inventory"
	"github.com/kubev2v/sddcinfo/pkg/vmc"
	"go.uber.org/zap"
)

type ReportRenderer = types.ReportRenderer
type ReportFormat = types.ReportFormat
type ReportOptions = types.ReportOptions
type ReportData = types.ReportData

const (
	ReportFormatText  = types.ReportFormatText
	ReportFormatJSON  = types.ReportFormatJSON
	ReportFormatYAML  = types.ReportFormatYAML
	ReportFormatSlack = types.ReportFormatSlack
)

// Fetcher reads the org and its SDDCs. Sub-resource reads return nil, nil when
// the resource is not available.
type Fetcher interface {
	Org(ctx context.Context) (*vmc.Org, error)
	SDDCs(ctx context.Context, sddcID string) ([]vmc.SDDC, error)
	PublicIPs(ctx context.Context, sddc vmc.SDDC) (*vmc.PublicIPList, error)
	Segments(ctx context.Context, sddc vmc.SDDC) (*vmc.SegmentList, error)
	AdvertisedRoutes(ctx context.Context, sddc vmc.SDDC) (*vmc.RouteList, error)
	LearnedRoutes(ctx context.Context, sddc vmc.SDDC) (*vmc.RouteList, error)
	LinkedVPCs(ctx context.Context, sddc vmc.SDDC) (*vmc.LinkedVPCList, error)
}

type ReportService struct {
	fetcher   Fetcher
	orgID     string
	renderers map[types.ReportFormat]types.ReportRenderer
	logger    *zap.SugaredLogger
}

func NewReportService(fetcher Fetcher, orgID string) *ReportService {
	service := &ReportService{
		fetcher:   fetcher,
		orgID:     orgID,
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
		logger:    zap.S().Named("report_service"),
	}

	for _, renderer := range []types.ReportRenderer{
		console.NewRenderer(),
		structured.NewJSONRenderer(),
		structured.NewYAMLRenderer(),
		slack.NewRenderer(),
	} {
		service.renderers[renderer.SupportedFormat()] = renderer
	}

	return service
}

// Collect reads, normalizes and folds every SDDC one after the other.
func (r *ReportService) Collect(ctx context.Context, options types.ReportOptions) (*types.ReportData, error) {
	summary := inventory.NewOrgSummary(r.orgID)

	if options.SDDCID == "" {
		org, err := r.fetcher.Org(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read org %s: %w", r.orgID, err)
		}
		summary.OrgType = org.OrgType
	}

	sddcs, err := r.fetcher.SDDCs(ctx, options.SDDCID)
	if err != nil {
		return nil, fmt.Errorf("failed to read sddcs: %w", err)
	}
	r.logger.Debugw("sddcs read", "org", r.orgID, "count", len(sddcs))

	data := &types.ReportData{
		SDDCs:     make([]inventory.SDDCRecord, 0, len(sddcs)),
		Summary:   summary,
		Options:   options,
		Generated: time.Now(),
	}

	for _, sddc := range sddcs {
		record, err := r.collectSDDC(ctx, sddc, options)
		if err != nil {
			return nil, err
		}
		summary.Fold(record)
		data.SDDCs = append(data.SDDCs, record)
	}

	return data, nil
}

func (r *ReportService) collectSDDC(ctx context.Context, sddc vmc.SDDC, options types.ReportOptions) (inventory.SDDCRecord, error) {
	record := inventory.Normalize(sddc)
	if record.Failed() {
		r.logger.Infow("sddc is not reportable", "sddc", record.ID, "state", record.State)
		return record, nil
	}

	vpcs, err := r.fetcher.LinkedVPCs(ctx, sddc)
	if err != nil {
		return record, err
	}
	record.LinkedVPC = inventory.FirstLinkedVPC(vpcs)

	if !options.Networks {
		return record, nil
	}

	ips, err := r.fetcher.PublicIPs(ctx, sddc)
	if err != nil {
		return record, err
	}
	if ips != nil {
		record.PublicIPs = ips.ResultCount
	}

	segments, err := r.fetcher.Segments(ctx, sddc)
	if err != nil {
		return record, err
	}
	if segments == nil {
		return record, nil
	}
	record.Networks = inventory.ClassifySegments(segments.Results)

	advertised, err := r.fetcher.AdvertisedRoutes(ctx, sddc)
	if err != nil {
		return record, err
	}
	if advertised == nil {
		return record, nil
	}
	inventory.MergeAdvertisedRoutes(record.Networks, advertised.Routes)

	learned, err := r.fetcher.LearnedRoutes(ctx, sddc)
	if err != nil {
		return record, err
	}
	if learned != nil {
		record.LearnedRoutes = inventory.LearnedRoutes(learned.Routes)
	}

	return record, nil
}

// Render renders the collected data with the renderer registered for format.
func (r *ReportService) Render(data *types.ReportData, format types.ReportFormat) (string, error) {
	renderer, exists := r.renderers[format]
	if !exists {
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
	return renderer.Render(data)
}
