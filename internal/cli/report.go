package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kubev2v/sddcinfo/internal/client"
	"github.com/kubev2v/sddcinfo/internal/service"
	"github.com/kubev2v/sddcinfo/internal/service/report/xlsx"
	"github.com/kubev2v/sddcinfo/internal/validator"
	"github.com/kubev2v/sddcinfo/pkg/metrics"
	"github.com/kubev2v/sddcinfo/pkg/requestid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

const (
	textFormat = "text"
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{textFormat, jsonFormat, yamlFormat}
)

type ReportOptions struct {
	GlobalOptions

	SDDCID      string
	Webhook     string
	Networks    bool
	Output      string
	XLSXFile    string
	MetricsFile string

	out io.Writer
}

// reportArgs is what Validate checks once flags and arguments are known.
type reportArgs struct {
	OrgID        string `validate:"required,uuid"`
	RefreshToken string `validate:"required,refresh_token"`
	SDDCID       string `validate:"omitempty,uuid"`
	Webhook      string `validate:"omitempty,webhook_url"`
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        textFormat,
	}
}

func NewCmdReport() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:   "sddcinfo ORG_ID REFRESH_TOKEN",
		Short: "Report the SDDCs of a VMware Cloud on AWS org.",
		Long: `Report the identity, add-ons, clusters and hosts of every SDDC of an org,
followed by the org totals. With --networks the compute segments and their
advertisement over the interconnect are listed as well.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.SDDCID, "sddcid", "s", o.SDDCID, "Report on this SDDC only. The org totals are not printed.")
	fs.StringVarP(&o.Webhook, "writeslack", "W", o.Webhook, "Post the summary to this Slack webhook URL.")
	fs.BoolVarP(&o.Networks, "networks", "n", o.Networks, "Include public IPs, compute segments and route advertisement. Network detail is not posted to the webhook.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVar(&o.XLSXFile, "xlsx", o.XLSXFile, "Also write the report to this xlsx workbook.")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Also write the org totals to this file in the prometheus text format.")
}

func (o *ReportOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.out = cmd.OutOrStdout()
	if o.Webhook == "" {
		o.Webhook = o.clientConfig.Webhook
	}
	return nil
}

func (o *ReportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}

	if o.MetricsFile != "" && o.SDDCID != "" {
		return validator.NewErrInvalidArgument("--metrics-file reports org totals and cannot be used with --sddcid")
	}

	v := validator.NewValidator()
	v.Register(validator.NewReportValidationRules()...)
	return v.Struct(reportArgs{
		OrgID:        args[0],
		RefreshToken: args[1],
		SDDCID:       o.SDDCID,
		Webhook:      o.Webhook,
	})
}

func (o *ReportOptions) Run(ctx context.Context, args []string) error {
	orgID, refreshToken := args[0], args[1]
	logger := zap.S().Named("report")

	ctx = requestid.ToContext(ctx, requestid.Generate())
	logger.Debugw("starting report", "org", orgID, "sddc", o.SDDCID, "request_id", requestid.FromContext(ctx))

	timeout := o.config.Service.HTTPTimeout
	vmcClient := client.NewVMCClient(orgID, o.Service(), timeout)
	if _, err := vmcClient.Authenticate(ctx, refreshToken); err != nil {
		return err
	}

	reportService := service.NewReportService(vmcClient, orgID)
	data, err := reportService.Collect(ctx, service.ReportOptions{SDDCID: o.SDDCID, Networks: o.Networks})
	if err != nil {
		return err
	}

	out, err := reportService.Render(data, service.ReportFormat(o.Output))
	if err != nil {
		return err
	}
	if _, err := io.WriteString(o.out, out); err != nil {
		return err
	}

	if o.XLSXFile != "" {
		if err := xlsx.NewExporter().WriteFile(data, o.XLSXFile); err != nil {
			return err
		}
		logger.Infow("workbook written", "file", o.XLSXFile)
	}

	if o.MetricsFile != "" {
		if err := metrics.WriteTextfile(o.MetricsFile, data.Summary); err != nil {
			return err
		}
		logger.Infow("metrics written", "file", o.MetricsFile)
	}

	if o.Webhook == "" {
		return nil
	}

	payload, err := reportService.Render(data, service.ReportFormatSlack)
	if err != nil {
		return err
	}
	if err := client.NewWebhookClient(timeout).Post(ctx, o.Webhook, []byte(payload)); err != nil {
		return err
	}
	logger.Infow("summary posted to webhook")

	return nil
}
