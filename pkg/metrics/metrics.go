package metrics

import (
	"fmt"

	"github.com/kubev2v/sddcinfo/pkg/inventory"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	sddcinfo = "sddcinfo"

	// Org metrics
	hostsMetric       = "hosts"
	instancesMetric   = "instances"
	publicIPsMetric   = "public_ips"
	clustersMetric    = "clusters"
	sddcsMetric       = "sddcs"
	failedSDDCsMetric = "failed_sddcs"

	// Labels
	orgLabel          = "org"
	regionLabel       = "region"
	instanceTypeLabel = "instance_type"
)

// OrgCollector holds the gauges of one org rollup in its own registry so the
// report can be written as a textfile without process metrics.
type OrgCollector struct {
	registry    *prometheus.Registry
	hosts       *prometheus.GaugeVec
	instances   *prometheus.GaugeVec
	publicIPs   *prometheus.GaugeVec
	clusters    *prometheus.GaugeVec
	sddcs       *prometheus.GaugeVec
	failedSDDCs *prometheus.GaugeVec
}

func NewOrgCollector() *OrgCollector {
	c := &OrgCollector{
		registry: prometheus.NewRegistry(),
		hosts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: sddcinfo,
				Name:      hostsMetric,
				Help:      "number of ESXi hosts in each region",
			},
			[]string{orgLabel, regionLabel},
		),
		instances: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: sddcinfo,
				Name:      instancesMetric,
				Help:      "number of ESXi hosts of each instance type in each region",
			},
			[]string{orgLabel, regionLabel, instanceTypeLabel},
		),
		publicIPs: orgGauge(publicIPsMetric, "number of user public IPs in the org"),
		clusters:  orgGauge(clustersMetric, "number of clusters in the org"),
		sddcs:     orgGauge(sddcsMetric, "number of reported SDDCs in the org"),
		failedSDDCs: orgGauge(failedSDDCsMetric,
			"number of SDDCs left out of the totals because of their state"),
	}

	c.registry.MustRegister(c.hosts, c.instances, c.publicIPs, c.clusters, c.sddcs, c.failedSDDCs)
	return c
}

func orgGauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: sddcinfo,
			Name:      name,
			Help:      help,
		},
		[]string{orgLabel},
	)
}

// Update sets every gauge from the summary.
func (c *OrgCollector) Update(summary *inventory.OrgSummary) {
	org := prometheus.Labels{orgLabel: summary.OrgID}

	for _, region := range summary.Regions() {
		c.hosts.With(prometheus.Labels{orgLabel: summary.OrgID, regionLabel: region}).Set(float64(summary.HostsByRegion[region]))
		for _, instanceType := range summary.InstanceTypes(region) {
			labels := prometheus.Labels{orgLabel: summary.OrgID, regionLabel: region, instanceTypeLabel: instanceType}
			c.instances.With(labels).Set(float64(summary.InstancesByRegionAndType[region][instanceType]))
		}
	}

	c.publicIPs.With(org).Set(float64(summary.TotalPublicIPs))
	c.clusters.With(org).Set(float64(summary.TotalClusters))
	c.sddcs.With(org).Set(float64(summary.TotalSDDCs))
	c.failedSDDCs.With(org).Set(float64(summary.FailedSDDCs))
}

func (c *OrgCollector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the summary in the text exposition format read by the
// node exporter textfile collector.
func WriteTextfile(filename string, summary *inventory.OrgSummary) error {
	c := NewOrgCollector()
	c.Update(summary)
	if err := prometheus.WriteToTextfile(filename, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", filename, err)
	}
	return nil
}
