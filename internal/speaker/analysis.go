package speaker

import "github.com/nguyentantai21042004/dialogue-flow/internal/timeline"

// cueInfo holds per-cue facts derived purely from the input sequence.
type cueInfo struct {
	tokens   int
	distinct float64
	blank    bool
	short    bool
	long     bool
	vocative bool
	// cluster is the [start, end) index range of the burst cluster the cue
	// belongs to; a cue outside any cluster forms a cluster of one.
	clusterStart int
	clusterEnd   int
	// voices counts the cluster's cues plus their collapsed repeats.
	voices int
}

// Analysis is the read-only view the rules evaluate against.
type Analysis struct {
	Cues []timeline.Cue
	Opts Options
	info []cueInfo
}

// Analyze precomputes token counts, markers and burst clusters.
func Analyze(cues []timeline.Cue, opts Options) *Analysis {
	a := &Analysis{Cues: cues, Opts: opts, info: make([]cueInfo, len(cues))}

	for i, c := range cues {
		toks := Tokens(c.Text)
		inf := cueInfo{tokens: len(toks), blank: len(toks) == 0}
		if len(toks) > 0 {
			seen := make(map[string]struct{}, len(toks))
			for _, t := range toks {
				seen[t] = struct{}{}
			}
			inf.distinct = float64(len(seen)) / float64(len(toks))
		}
		inf.short = !inf.blank && inf.tokens < opts.ShortUtteranceTokens
		inf.long = inf.tokens >= opts.LongUtteranceTokens
		inf.vocative = !inf.blank && containsAny(c.Text, opts.AddressMarkers)
		a.info[i] = inf
	}

	for i := 0; i < len(cues); {
		j := i + 1
		if a.info[i].short {
			for j < len(cues) && a.info[j].short && a.Gap(j) <= opts.BurstWindowMS {
				j++
			}
		}
		voices := 0
		for k := i; k < j; k++ {
			voices += 1 + cues[k].Repeats
		}
		for k := i; k < j; k++ {
			a.info[k].clusterStart = i
			a.info[k].clusterEnd = j
			a.info[k].voices = voices
		}
		i = j
	}

	return a
}

// Gap is the silence between cue i-1's end and cue i's start; negative when
// they overlap. The first cue has no gap.
func (a *Analysis) Gap(i int) int64 {
	if i == 0 {
		return 0
	}
	return a.Cues[i].StartMS - a.Cues[i-1].EndMS
}

// ClusterSize is the number of voices in the burst cluster containing cue i:
// its cues plus the duplicates the loader collapsed into them.
func (a *Analysis) ClusterSize(i int) int {
	return a.info[i].voices
}

func (a *Analysis) inBurst(i int) bool {
	return a.ClusterSize(i) >= a.Opts.MinBurstCues
}
