package inventory

import "strings"

// SDDCState is the provisioning state reported by VMC for an SDDC.
type SDDCState string

const (
	StateReady  SDDCState = "READY"
	StateFailed SDDCState = "FAILED"
)

// SegmentType classifies an entry of a NetworkView.
type SegmentType string

const (
	SegmentRouted       SegmentType = "ROUTED"
	SegmentExtended     SegmentType = "EXTENDED"
	SegmentDisconnected SegmentType = "DISCONNECTED"
	// SegmentHCXMgmt marks networks only known through the advertised routes feed.
	SegmentHCXMgmt SegmentType = "HCX_MGMT"
)

// SDDCRecord is the normalized view of one SDDC.
// A failed record carries only ID and State.
type SDDCRecord struct {
	Name              string          `json:"name,omitempty"`
	ID                string          `json:"id"`
	Region            string          `json:"region,omitempty"`
	CIDR              string          `json:"cidr,omitempty"`
	Version           string          `json:"version,omitempty"`
	VCInstanceID      string          `json:"vcInstanceId,omitempty"`
	VCURL             string          `json:"vcUrl,omitempty"`
	VCSDKEndpoint     string          `json:"vcSdkEndpoint,omitempty"`
	AvailabilityZones []string        `json:"availabilityZones,omitempty"`
	State             SDDCState       `json:"state"`
	Clusters          []ClusterRecord `json:"clusters,omitempty"`
	AddOns            AddOns          `json:"addOns"`

	// Filled from sub-resources. Nil means the resource was not requested or
	// not available.
	PublicIPs     *int           `json:"publicIps,omitempty"`
	LinkedVPC     *LinkedVPC     `json:"linkedVpc,omitempty"`
	Networks      *NetworkView   `json:"networks,omitempty"`
	LearnedRoutes []LearnedRoute `json:"learnedRoutes,omitempty"`

	incomplete bool
}

// Failed reports whether the record only carries ID and State, either because
// VMC reports it FAILED or because it has no resource config to read.
func (r SDDCRecord) Failed() bool {
	return r.State == StateFailed || r.incomplete
}

// AZs returns the availability zones joined for display.
func (r SDDCRecord) AZs() string {
	return strings.Join(r.AvailabilityZones, ",")
}

// TotalHosts is the sum of the host count of every cluster.
func (r SDDCRecord) TotalHosts() int {
	total := 0
	for _, c := range r.Clusters {
		total += c.HostCount
	}
	return total
}

type ClusterRecord struct {
	Name         string `json:"name"`
	InstanceType string `json:"instanceType"`
	HostCount    int    `json:"hostCount"`
}

type AddOns struct {
	HCX             bool `json:"hcx"`
	NSXAdvanced     bool `json:"nsxAdvanced"`
	DRaaS           bool `json:"draas"`
	DRaaSAppliances int  `json:"draasAppliances,omitempty"`
	VCDRRecovery    bool `json:"vcdrRecovery"`
	NFSDatastore    bool `json:"nfsDatastore"`
}

type LinkedVPC struct {
	ID      string   `json:"id"`
	Subnets []string `json:"subnets,omitempty"`
}

// NetworkView maps a network key (a CIDR or a segment display name) to its entry.
type NetworkView struct {
	Entries map[string]NetworkEntry `json:"entries"`
	// SegmentCount is the number of customer segments, before routes are merged in.
	SegmentCount int `json:"segmentCount"`
	// HasAdvertisedFeed is set once the advertised routes feed was merged.
	HasAdvertisedFeed bool `json:"hasAdvertisedFeed"`
}

type NetworkEntry struct {
	Type           SegmentType `json:"type"`
	AdvertisedPath string      `json:"advertisedPath,omitempty"`
}

func (e NetworkEntry) Advertised() bool {
	return e.AdvertisedPath != ""
}

type LearnedRoute struct {
	Destination string `json:"destination"`
	Source      string `json:"source"`
}

// OrgSummary accumulates org wide totals. It is owned by the caller running
// the report and folded with one record at a time.
type OrgSummary struct {
	OrgID                    string                    `json:"orgId"`
	OrgType                  string                    `json:"orgType,omitempty"`
	HostsByRegion            map[string]int            `json:"hostsByRegion"`
	InstancesByRegionAndType map[string]map[string]int `json:"instancesByRegionAndType"`
	TotalPublicIPs           int                       `json:"totalPublicIps"`
	TotalClusters            int                       `json:"totalClusters"`
	TotalSDDCs               int                       `json:"totalSddcs"`
	FailedSDDCs              int                       `json:"failedSddcs"`
}

// TotalHosts sums HostsByRegion.
func (s *OrgSummary) TotalHosts() int {
	total := 0
	for _, n := range s.HostsByRegion {
		total += n
	}
	return total
}
