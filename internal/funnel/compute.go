package funnel

import (
	"github.com/eleven-am/insight-backend/internal/dto"
	"github.com/eleven-am/insight-backend/internal/flow"
	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/shared"
)

// Reached returns how many leading funnel pages appear in order within seq.
// Matches need not be adjacent.
func Reached(seq, pages []string) int {
	depth := 0
	for _, page := range seq {
		if depth == len(pages) {
			break
		}
		if page == pages[depth] {
			depth++
		}
	}
	return depth
}

func Compute(f *Funnel, sessions []*recording.Session) []dto.FunnelStepResponse {
	users := make([]int, len(f.Pages))
	for _, s := range sessions {
		depth := Reached(flow.ExtractSequence(s), f.Pages)
		for i := 0; i < depth; i++ {
			users[i]++
		}
	}

	steps := make([]dto.FunnelStepResponse, len(f.Pages))
	for i, page := range f.Pages {
		step := dto.FunnelStepResponse{
			Name:  f.StepName(i),
			Page:  page,
			Users: users[i],
		}
		step.ConversionRate = shared.Percent(float64(users[i]), float64(users[0]))
		if i > 0 {
			prev := users[i-1]
			step.DropoffRate = shared.Percent(float64(prev-users[i]), float64(prev))
		}
		steps[i] = step
	}
	return steps
}
