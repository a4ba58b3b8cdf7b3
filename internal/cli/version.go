package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kubev2v/sddcinfo/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

type VersionOptions struct {
	Output string

	out io.Writer
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		Output: "",
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print sddcinfo version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			if len(o.Output) > 0 && !funk.Contains(legalVersionOutputTypes, o.Output) {
				return fmt.Errorf("output format must be one of %s", strings.Join(legalVersionOutputTypes, ", "))
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

var legalVersionOutputTypes = []string{jsonFormat, yamlFormat}

func (o *VersionOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalVersionOutputTypes, ", ")))
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	versionInfo := version.Get()

	switch o.Output {
	case jsonFormat, yamlFormat:
		marshalled, err := yaml.Marshal(versionInfo)
		if err != nil {
			return err
		}
		if o.Output == jsonFormat {
			if marshalled, err = yaml.YAMLToJSON(marshalled); err != nil {
				return err
			}
			marshalled = append(marshalled, '\n')
		}
		_, err = o.out.Write(marshalled)
		return err
	default:
		_, err := fmt.Fprintf(o.out, "sddcinfo Version: %s\n", versionInfo.String())
		return err
	}
}
