package routes

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/Hyunwoo0815/bus2/pkg/schedule"

	"github.com/marcozac/go-jsonc"
)

// DefaultMaxRelated is how many related routes a page links by default
const DefaultMaxRelated = 7

// Graph maps an origin terminal to the destinations it serves, in file order
type Graph map[string][]string

// Load reads route/total_route.json. Comments are allowed in the file.
// On any failure it returns an empty graph together with the error, so
// callers can report the problem and keep going without related links.
func Load(path string) (Graph, error) {
	g := Graph{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return g, fmt.Errorf("route file not found: %s", path)
		}
		return g, fmt.Errorf("failed to read route file: %w", err)
	}

	sanitized, err := jsonc.Sanitize(data)
	if err != nil {
		return g, fmt.Errorf("failed to sanitize route file: %w", err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(sanitized, &raw); err != nil {
		return g, fmt.Errorf("route file is corrupt: %w", err)
	}

	for origin, dests := range raw {
		key := schedule.CanonicalName(origin)
		for _, d := range dests {
			g[key] = append(g[key], schedule.CanonicalName(d))
		}
	}

	return g, nil
}

// Destinations returns the known destinations of origin
func (g Graph) Destinations(origin string) []string {
	return g[schedule.CanonicalName(origin)]
}

// PickRelated returns up to maxCount other destinations reachable from origin,
// sampled without replacement. A nil rng uses the shared math/rand source.
func PickRelated(g Graph, origin, destination string, maxCount int, rng *rand.Rand) []string {
	if maxCount <= 0 || len(g) == 0 {
		return nil
	}

	destination = schedule.CanonicalName(destination)

	seen := map[string]bool{destination: true}
	var candidates []string
	for _, d := range g.Destinations(origin) {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		candidates = append(candidates, d)
	}
	if len(candidates) == 0 {
		return nil
	}

	swap := func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] }
	if rng != nil {
		rng.Shuffle(len(candidates), swap)
	} else {
		rand.Shuffle(len(candidates), swap)
	}

	if len(candidates) > maxCount {
		candidates = candidates[:maxCount]
	}
	return candidates
}
