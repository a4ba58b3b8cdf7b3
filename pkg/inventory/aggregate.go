package inventory

import "sort"

func NewOrgSummary(orgID string) *OrgSummary {
	return &OrgSummary{
		OrgID:                    orgID,
		HostsByRegion:            make(map[string]int),
		InstancesByRegionAndType: make(map[string]map[string]int),
	}
}

// Fold adds the contribution of one SDDC to the org totals.
// A failed record only increments FailedSDDCs.
func (s *OrgSummary) Fold(record SDDCRecord) *OrgSummary {
	if record.Failed() {
		s.FailedSDDCs++
		return s
	}

	s.TotalSDDCs++

	if _, found := s.HostsByRegion[record.Region]; !found {
		s.HostsByRegion[record.Region] = 0
		s.InstancesByRegionAndType[record.Region] = make(map[string]int)
	}

	for _, cluster := range record.Clusters {
		s.TotalClusters++
		s.HostsByRegion[record.Region] += cluster.HostCount
		s.InstancesByRegionAndType[record.Region][cluster.InstanceType] += cluster.HostCount
	}

	if record.PublicIPs != nil {
		s.TotalPublicIPs += *record.PublicIPs
	}

	return s
}

// Regions returns the regions seen so far in lexical order.
func (s *OrgSummary) Regions() []string {
	regions := make([]string, 0, len(s.HostsByRegion))
	for region := range s.HostsByRegion {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// InstanceTypes returns the instance types seen in a region in lexical order.
func (s *OrgSummary) InstanceTypes(region string) []string {
	types := make([]string, 0, len(s.InstancesByRegionAndType[region]))
	for t := range s.InstancesByRegionAndType[region] {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
