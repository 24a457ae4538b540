package heatmap

import (
	"math"
	"sort"
	"strings"

	"github.com/eleven-am/insight-backend/internal/recording"
)

type Signal string

const (
	SignalClick  Signal = "click"
	SignalScroll Signal = "scroll"
	SignalHover  Signal = "hover"
)

func ParseSignal(v string) (Signal, bool) {
	switch Signal(strings.ToLower(strings.TrimSpace(v))) {
	case "", SignalClick:
		return SignalClick, true
	case SignalScroll:
		return SignalScroll, true
	case SignalHover:
		return SignalHover, true
	}
	return "", false
}

const (
	CanvasWidth  = 1200
	CanvasHeight = 800

	fallbackScreenWidth  = 1280
	fallbackScreenHeight = 720

	clickBucketSize  = 60
	hoverBucketSize  = 70
	hoverLeaveWeight = 0.6

	bandHeight = 50
	minBands   = 10

	topTargetLimit = 5
)

type Query struct {
	Signal    Signal
	URL       string
	SessionID string
}

type Cell struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Count     float64 `json:"count"`
	Intensity float64 `json:"intensity"`
}

type Band struct {
	Index     int     `json:"index"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Count     float64 `json:"count"`
	Intensity float64 `json:"intensity"`
}

type TargetCount struct {
	Selector string `json:"selector"`
	Count    int    `json:"count"`
}

type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Result struct {
	Type               Signal        `json:"type"`
	Canvas             Canvas        `json:"canvas"`
	Sessions           int           `json:"sessions"`
	Cells              []Cell        `json:"cells,omitempty"`
	Bands              []Band        `json:"bands,omitempty"`
	TotalClicks        int           `json:"totalClicks"`
	TotalHovers        int           `json:"totalHovers"`
	AverageScrollDepth float64       `json:"averageScrollDepth"`
	TopTargets         []TargetCount `json:"topTargets"`
}

type point struct {
	x, y   float64
	weight float64
}

// Filter keeps sessions that match the query and have at least one event.
func Filter(sessions []*recording.Session, q Query) []*recording.Session {
	out := make([]*recording.Session, 0, len(sessions))
	for _, s := range sessions {
		if len(s.Events) == 0 {
			continue
		}
		if q.URL != "" && s.Metadata.URL != q.URL {
			continue
		}
		if q.SessionID != "" && s.ID != q.SessionID {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Compute aggregates the filtered sessions into heatmap buckets for q.Signal.
func Compute(sessions []*recording.Session, q Query) Result {
	if q.Signal == "" {
		q.Signal = SignalClick
	}
	filtered := Filter(sessions, q)

	res := Result{
		Type:       q.Signal,
		Canvas:     Canvas{Width: CanvasWidth, Height: CanvasHeight},
		Sessions:   len(filtered),
		TopTargets: []TargetCount{},
	}

	var (
		clicks, hovers []point
		scrolls        []float64
		maxScroll      float64
		depthTotal     float64
		targetCounts   = make(map[string]int)
		targetOrder    []string
	)

	for _, s := range filtered {
		width, height := viewport(s)
		summary := recording.Summarize(s)
		if summary.Stats.ScrollDepth > maxScroll {
			maxScroll = summary.Stats.ScrollDepth
		}
		depthTotal += summary.Stats.ScrollDepth

		for _, e := range s.Events {
			switch e.Type {
			case recording.EventClick:
				if p, ok := normalizePoint(e, width, height, 1); ok {
					clicks = append(clicks, p)
					res.TotalClicks++
				}
				if target := strings.TrimSpace(e.Target); target != "" {
					if _, seen := targetCounts[target]; !seen {
						targetOrder = append(targetOrder, target)
					}
					targetCounts[target]++
				}
			case recording.EventHover:
				weight := 1.0
				if e.Phase == recording.PhaseLeave {
					weight = hoverLeaveWeight
				}
				if p, ok := normalizePoint(e, width, height, weight); ok {
					hovers = append(hovers, p)
					res.TotalHovers++
				}
			case recording.EventScroll:
				if e.ScrollY == nil {
					continue
				}
				depth := math.Max(0, *e.ScrollY)
				scrolls = append(scrolls, depth)
				if depth > maxScroll {
					maxScroll = depth
				}
			}
		}
	}

	if len(filtered) > 0 {
		res.AverageScrollDepth = depthTotal / float64(len(filtered))
	}
	res.TopTargets = topTargets(targetCounts, targetOrder)

	switch q.Signal {
	case SignalClick:
		res.Cells = bucketPoints(clicks, clickBucketSize)
	case SignalHover:
		res.Cells = bucketPoints(hovers, hoverBucketSize)
	case SignalScroll:
		if maxScroll == 0 {
			maxScroll = fallbackScreenHeight * 3
		}
		res.Bands = bucketScroll(scrolls, maxScroll)
	}

	return res
}

func viewport(s *recording.Session) (float64, float64) {
	w, h := float64(fallbackScreenWidth), float64(fallbackScreenHeight)
	if s.Metadata.Screen != nil {
		if s.Metadata.Screen.Width > 0 {
			w = float64(s.Metadata.Screen.Width)
		}
		if s.Metadata.Screen.Height > 0 {
			h = float64(s.Metadata.Screen.Height)
		}
	}
	return w, h
}

func normalizePoint(e recording.Event, width, height, weight float64) (point, bool) {
	if e.X == nil || e.Y == nil {
		return point{}, false
	}
	return point{x: clamp01(*e.X / width), y: clamp01(*e.Y / height), weight: weight}, true
}

// clamp01 keeps points recorded outside the viewport on the canvas edge.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type cellKey struct{ x, y int }

func bucketPoints(points []point, size float64) []Cell {
	counts := make(map[cellKey]float64)
	var maxCount float64
	for _, p := range points {
		key := cellKey{
			x: int(math.Round(p.x * CanvasWidth / size)),
			y: int(math.Round(p.y * CanvasHeight / size)),
		}
		counts[key] += p.weight
		if counts[key] > maxCount {
			maxCount = counts[key]
		}
	}

	cells := make([]Cell, 0, len(counts))
	for key, count := range counts {
		cells = append(cells, Cell{
			X:         float64(key.x) * size,
			Y:         float64(key.y) * size,
			Count:     count,
			Intensity: intensity(count, maxCount),
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Intensity != cells[j].Intensity {
			return cells[i].Intensity > cells[j].Intensity
		}
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

func bandCount() int {
	n := int(math.Round(CanvasHeight / float64(bandHeight)))
	if n < minBands {
		return minBands
	}
	return n
}

func bucketScroll(depths []float64, maxScroll float64) []Band {
	n := bandCount()
	counts := make([]float64, n)
	for _, d := range depths {
		depth := math.Min(d/maxScroll, 1)
		idx := int(math.Floor(depth * float64(n)))
		if idx > n-1 {
			idx = n - 1
		}
		counts[idx]++
	}

	var maxCount float64
	for _, c := range counts {
		maxCount = math.Max(maxCount, c)
	}

	bands := make([]Band, 0, n)
	for i, c := range counts {
		if c == 0 {
			continue
		}
		bands = append(bands, Band{
			Index:     i,
			Start:     float64(i) / float64(n) * CanvasHeight,
			End:       float64(i+1) / float64(n) * CanvasHeight,
			Count:     c,
			Intensity: intensity(c, maxCount),
		})
	}
	return bands
}

func intensity(count, maxCount float64) float64 {
	if maxCount <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, count/maxCount))
}

func topTargets(counts map[string]int, order []string) []TargetCount {
	out := make([]TargetCount, 0, len(order))
	for _, target := range order {
		out = append(out, TargetCount{Selector: target, Count: counts[target]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > topTargetLimit {
		out = out[:topTargetLimit]
	}
	return out
}
