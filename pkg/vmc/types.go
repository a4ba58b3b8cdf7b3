// Package vmc holds the wire representation of the VMware Cloud on AWS and NSX
// policy API payloads read by sddcinfo. Only the fields the report uses are mapped.
package vmc

import "encoding/json"

const (
	SDDCStateReady    = "READY"
	SDDCStateFailed   = "FAILED"
	SDDCStateDeleted  = "DELETED"
	SDDCStateCreating = "DEPLOYING"
)

// Org is the response of GET /vmc/api/orgs/{org}.
type Org struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	OrgType     string `json:"org_type"`
}

// SDDC is one element of GET /vmc/api/orgs/{org}/sddcs or the body of
// GET /vmc/api/orgs/{org}/sddcs/{sddc}.
type SDDC struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	State          string          `json:"sddc_state"`
	ResourceConfig *ResourceConfig `json:"resource_config"`
}

// NSXEndpoint returns the public NSX reverse proxy URL, empty when the SDDC has
// no resource config yet.
func (s SDDC) NSXEndpoint() string {
	if s.ResourceConfig == nil {
		return ""
	}
	return s.ResourceConfig.NSXAPIPublicEndpointURL
}

type ResourceConfig struct {
	SDDCID                  string                     `json:"sddc_id"`
	Region                  string                     `json:"region"`
	Agents                  []Agent                    `json:"agents"`
	SDDCManifest            SDDCManifest               `json:"sddc_manifest"`
	VCInstanceID            string                     `json:"vc_instance_id"`
	VCURL                   string                     `json:"vc_url"`
	AvailabilityZones       []string                   `json:"availability_zones"`
	Clusters                []Cluster                  `json:"clusters"`
	ManagementVMs           map[string]json.RawMessage `json:"management_vms"`
	NSXAPIPublicEndpointURL string                     `json:"nsx_api_public_endpoint_url"`
	NSXTAddons              *NSXTAddons                `json:"nsxt_addons,omitempty"`
	NFSMode                 bool                       `json:"nfs_mode"`
}

type Agent struct {
	NetworkCIDR string `json:"network_cidr"`
}

type SDDCManifest struct {
	VMCInternalVersion string `json:"vmc_internal_version"`
}

type NSXTAddons struct {
	EnableNSXAdvancedAddon bool `json:"enable_nsx_advanced_addon"`
}

type Cluster struct {
	ClusterName string            `json:"cluster_name"`
	EsxHostInfo EsxHostInfo       `json:"esx_host_info"`
	EsxHostList []json.RawMessage `json:"esx_host_list"`
}

type EsxHostInfo struct {
	InstanceType string `json:"instance_type"`
}

// PublicIPList is the response of /cloud-service/api/v1/public-ips/.
type PublicIPList struct {
	ResultCount *int `json:"result_count,omitempty"`
}

// SegmentList is the response of /policy/api/v1/infra/tier-1s/cgw/segments.
type SegmentList struct {
	Results []Segment `json:"results"`
}

type Segment struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Type        string   `json:"type,omitempty"`
	Subnets     []Subnet `json:"subnets,omitempty"`
}

type Subnet struct {
	Network string `json:"network"`
}

// RouteList is the response of /cloud-service/api/v1/infra/external/routes/{advertised,learned}.
type RouteList struct {
	Routes []Route `json:"routes"`
}

type Route struct {
	Destination    string         `json:"destination"`
	Connectivities []Connectivity `json:"connectivities"`
}

type Connectivity struct {
	Status           string `json:"status"`
	ConnectivityType string `json:"connectivity_type"`
}

// LinkedVPCList is the response of /cloud-service/api/v1/linked-vpcs.
type LinkedVPCList struct {
	Results []LinkedVPC `json:"results"`
}

type LinkedVPC struct {
	LinkedVPCID        string   `json:"linked_vpc_id"`
	LinkedVPCAddresses []string `json:"linked_vpc_addresses,omitempty"`
	LinkedVPCSubnets   []struct {
		CIDR string `json:"cidr"`
	} `json:"linked_vpc_subnets,omitempty"`
}
