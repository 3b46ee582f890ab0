package services

import (
	"sort"

	"ostrov/internal/core/domain/model/kernel"
)

// DefaultHubCode is the fallback hub for postal codes outside every known
// region range.
const DefaultHubCode = "msk"

// HubInfo describes one consolidation hub on the trunk route: its code, its
// display name and the transport running the trunk leg.
type HubInfo struct {
	Code      string
	Name      string
	Transport string
}

type hubEntry struct {
	info    HubInfo
	regions [][2]int
}

// hubRegistry maps each hub to the postal region prefixes it consolidates.
// A region is the first three digits of the recipient index; ranges are
// inclusive.
var hubRegistry = []hubEntry{
	{HubInfo{"msk", "Москва", "truck"}, [][2]int{{100, 134}, {140, 145}}},
	{HubInfo{"spb", "Санкт-Петербург", "air"}, [][2]int{{188, 199}}},
	{HubInfo{"ekb", "Екатеринбург", "truck"}, [][2]int{{620, 627}}},
	{HubInfo{"nsk", "Новосибирск", "air"}, [][2]int{{630, 635}}},
	{HubInfo{"krd", "Краснодар", "truck"}, [][2]int{{350, 355}}},
	{HubInfo{"niz", "Нижний Новгород", "truck"}, [][2]int{{603, 607}}},
	{HubInfo{"kzn", "Казань", "truck"}, [][2]int{{420, 423}}},
	{HubInfo{"rnd", "Ростов-на-Дону", "truck"}, [][2]int{{344, 346}}},
	{HubInfo{"smr", "Самара", "truck"}, [][2]int{{443, 446}}},
	{HubInfo{"ufa", "Уфа", "truck"}, [][2]int{{450, 453}}},
}

// HubRouter routes parcels to consolidation hubs by the region prefix of
// the recipient's postal index. The registry is static reference data; the
// router is safe for concurrent use.
type HubRouter struct {
	prefixToHub map[int]HubInfo
	byCode      map[string]HubInfo
}

// NewHubRouter builds a router over the built-in hub registry.
func NewHubRouter() *HubRouter {
	r := &HubRouter{
		prefixToHub: make(map[int]HubInfo),
		byCode:      make(map[string]HubInfo, len(hubRegistry)),
	}
	for _, entry := range hubRegistry {
		r.byCode[entry.info.Code] = entry.info
		for _, span := range entry.regions {
			for prefix := span[0]; prefix <= span[1]; prefix++ {
				r.prefixToHub[prefix] = entry.info
			}
		}
	}
	return r
}

// HubForPostalCode returns the hub consolidating parcels for the index.
// Unknown regions fall back to the default hub.
func (r *HubRouter) HubForPostalCode(postalCode kernel.PostalCode) HubInfo {
	if hub, ok := r.prefixToHub[postalCode.RegionPrefix()]; ok {
		return hub
	}
	return r.byCode[DefaultHubCode]
}

// HubByCode looks a hub up by its code.
func (r *HubRouter) HubByCode(code string) (HubInfo, bool) {
	hub, ok := r.byCode[code]
	return hub, ok
}

// AllHubs returns every known hub, ordered by code. The scheduler iterates
// this list to run one pass per scope.
func (r *HubRouter) AllHubs() []HubInfo {
	hubs := make([]HubInfo, 0, len(r.byCode))
	for _, hub := range r.byCode {
		hubs = append(hubs, hub)
	}
	sort.Slice(hubs, func(i, j int) bool { return hubs[i].Code < hubs[j].Code })
	return hubs
}
