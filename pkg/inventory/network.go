package inventory

import (
	"sort"

	"github.com/kubev2v/sddcinfo/pkg/vmc"
)

const routeStatusSucceeded = "SUCCEEDED"

// reservedSegments are infrastructure segments that are never shown to customers.
var reservedSegments = map[string]struct{}{
	"sddc_vpc_reserved_segment_0":  {},
	"cross_vpc_reserved_segment_0": {},
}

// ClassifySegments builds a NetworkView from the compute gateway segments.
// Segments with a subnet are keyed by their first subnet CIDR; extended and
// disconnected segments without a subnet are keyed by display name.
func ClassifySegments(segments []vmc.Segment) *NetworkView {
	view := &NetworkView{Entries: make(map[string]NetworkEntry)}

	for _, segment := range segments {
		if _, reserved := reservedSegments[segment.ID]; reserved {
			continue
		}

		if segment.Subnets != nil {
			if len(segment.Subnets) == 0 || segment.Subnets[0].Network == "" {
				continue
			}
			view.Entries[segment.Subnets[0].Network] = NetworkEntry{Type: SegmentType(segment.Type)}
			continue
		}

		switch SegmentType(segment.Type) {
		case SegmentExtended, SegmentDisconnected:
			view.Entries[segment.DisplayName] = NetworkEntry{Type: SegmentType(segment.Type)}
		}
	}

	view.SegmentCount = len(view.Entries)
	return view
}

// MergeAdvertisedRoutes attaches the connectivity type of every successfully
// advertised route to the matching network. Destinations that are not a known
// segment are added as HCX_MGMT networks.
func MergeAdvertisedRoutes(view *NetworkView, routes []vmc.Route) {
	if view == nil {
		return
	}
	if view.Entries == nil {
		view.Entries = make(map[string]NetworkEntry)
	}
	view.HasAdvertisedFeed = true

	for _, route := range routes {
		if len(route.Connectivities) == 0 || route.Connectivities[0].Status != routeStatusSucceeded {
			continue
		}
		path := route.Connectivities[0].ConnectivityType

		entry, found := view.Entries[route.Destination]
		if !found {
			entry = NetworkEntry{Type: SegmentHCXMgmt}
		}
		entry.AdvertisedPath = path
		view.Entries[route.Destination] = entry
	}
}

// Keys returns the network keys in lexical order.
func (v *NetworkView) Keys() []string {
	if v == nil {
		return nil
	}
	keys := make([]string, 0, len(v.Entries))
	for k := range v.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LearnedRoutes lists routes learned over the interconnect. They are never
// merged into a NetworkView.
func LearnedRoutes(routes []vmc.Route) []LearnedRoute {
	learned := make([]LearnedRoute, 0, len(routes))
	for _, route := range routes {
		lr := LearnedRoute{Destination: route.Destination}
		if len(route.Connectivities) > 0 {
			lr.Source = route.Connectivities[0].ConnectivityType
		}
		learned = append(learned, lr)
	}
	return learned
}

// FirstLinkedVPC returns the first linked VPC of the list, nil if there is none.
func FirstLinkedVPC(list *vmc.LinkedVPCList) *LinkedVPC {
	if list == nil || len(list.Results) == 0 || list.Results[0].LinkedVPCID == "" {
		return nil
	}
	vpc := list.Results[0]
	linked := &LinkedVPC{ID: vpc.LinkedVPCID}
	for _, s := range vpc.LinkedVPCSubnets {
		linked.Subnets = append(linked.Subnets, s.CIDR)
	}
	return linked
}
