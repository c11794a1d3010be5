package render

import (
	"fmt"
	"strconv"
)

// busTrip is the schema.org BusTrip embedded as JSON-LD in route pages
type busTrip struct {
	Context          string         `json:"@context"`
	Type             string         `json:"@type"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Provider         []organization `json:"provider,omitempty"`
	DepartureBusStop busStation     `json:"departureBusStop"`
	ArrivalBusStop   busStation     `json:"arrivalBusStop"`
	DepartureTime    string         `json:"departureTime,omitempty"`
	ArrivalTime      string         `json:"arrivalTime,omitempty"`
	BusNumber        string         `json:"busNumber"`
	URL              string         `json:"url"`
}

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type busStation struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

func (r *Renderer) busTrip(p RoutePage, url string) busTrip {
	trip := busTrip{
		Context:          "https://schema.org",
		Type:             "BusTrip",
		Name:             fmt.Sprintf("%s에서 %s 가는 시외버스 시간표", p.Origin, p.Destination),
		Description:      fmt.Sprintf("%s에서 %s 가는 시외버스 시간표, 요금, 소요시간 정보", p.Origin, p.Destination),
		DepartureBusStop: busStation{Type: "BusStation", Name: p.Origin + " 터미널"},
		ArrivalBusStop:   busStation{Type: "BusStation", Name: p.Destination + " 터미널"},
		DepartureTime:    p.Aggregate.FirstDeparture,
		ArrivalTime:      EstimateArrival(p.Aggregate.FirstDeparture, p.Aggregate.AverageDurationMinutes),
		BusNumber:        strconv.Itoa(p.Aggregate.BusCount),
		URL:              url,
	}

	for _, op := range p.Aggregate.Operators {
		trip.Provider = append(trip.Provider, organization{Type: "Organization", Name: op})
	}

	return trip
}
