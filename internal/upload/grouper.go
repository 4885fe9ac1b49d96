package upload

import (
	"strconv"
	"strings"
)

// GroupRows collapses parsed rows into request groups according to the
// chosen strategy. Rows without a usable part number or with a blank,
// non-numeric, or non-positive quantity are dropped silently before
// grouping; they are a pre-filter, not a validation failure. Groups come
// back in first-encounter order.
func GroupRows(rows []RawRow, strategy Strategy) []*RequestGroup {
	byKey := make(map[string]*RequestGroup)
	ordered := make([]*RequestGroup, 0, len(rows))

	for _, row := range rows {
		partNumber := strings.TrimSpace(row[ColPartNumber])
		if partNumber == "" {
			continue
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(row[ColQuantity]))
		if err != nil || quantity <= 0 {
			continue
		}

		shipment := strings.TrimSpace(row[ColShipment])
		plant := strings.TrimSpace(row[ColPlant])
		route := strings.TrimSpace(row[ColRoute])
		trailer := strings.TrimSpace(row[ColTrailer])

		key, label := groupIdentity(strategy, shipment, trailer, route, partNumber)

		group, ok := byKey[key]
		if !ok {
			// Plant and route stick from the first row that opens the
			// group; later rows never overwrite them.
			group = &RequestGroup{
				GroupKey:       key,
				ShipmentNumber: label,
				Plant:          plant,
				RouteInfo:      route,
			}
			byKey[key] = group
			ordered = append(ordered, group)
		}

		group.Parts = append(group.Parts, PartLine{
			PartNumber:     partNumber,
			Quantity:       quantity,
			ShipmentNumber: shipment,
			Plant:          plant,
			TrailerNumber:  trailer,
			RouteInfo:      route,
		})
	}

	return ordered
}

// groupIdentity computes the accumulation key for a row plus the shipment
// number label the resulting group carries. Non-shipment strategies
// synthesize a stable label since the group no longer corresponds to a
// single input shipment number.
func groupIdentity(strategy Strategy, shipment, trailer, route, partNumber string) (key, label string) {
	switch strategy {
	case GroupByTrailer:
		if trailer == "" {
			trailer = "no-trailer"
		}
		key = trailer + "-" + shipment
		return key, "group-" + key
	case GroupByRoute:
		if route == "" {
			route = "no-route"
		}
		key = route + "-" + shipment
		return key, "group-" + key
	case GroupByPart:
		return partNumber, partNumber + "-group"
	default:
		// Group by shipment: rows sharing a shipment number collapse, and
		// a blank shipment number forms its own group.
		return shipment, shipment
	}
}
