package disc

import "sort"

// channelMixRank orders audio channel layouts from most to least desirable.
var channelMixRank = map[string]int{
	"5point1":   0,
	"5.1(side)": 1,
	"downmix":   2,
	"stereo":    3,
	"mono":      4,
}

// encodingRank orders audio encodings; unknown encodings rank last.
var encodingRank = map[string]int{
	"dts": 0,
	"ac3": 1,
}

// markBestTracks flags the preferred audio track per language (richest mix,
// then preferred encoding) and the first subtitle track per language.
func markBestTracks(titles []Title) {
	for t := range titles {
		title := &titles[t]

		byName := map[string][]int{}
		for i, track := range title.AudioTracks {
			byName[track.Name] = append(byName[track.Name], i)
		}
		for _, group := range byName {
			sort.SliceStable(group, func(a, b int) bool {
				ta, tb := title.AudioTracks[group[a]], title.AudioTracks[group[b]]
				ra, rb := mixRank(ta.ChannelMix), mixRank(tb.ChannelMix)
				if ra != rb {
					return ra < rb
				}
				return codecRank(ta.Encoding) < codecRank(tb.Encoding)
			})
			title.AudioTracks[group[0]].Best = true
		}

		seen := map[string]bool{}
		for i, track := range title.SubtitleTracks {
			if !seen[track.Name] {
				seen[track.Name] = true
				title.SubtitleTracks[i].Best = true
			}
		}
	}
}

func mixRank(mix string) int {
	if rank, ok := channelMixRank[mix]; ok {
		return rank
	}
	return len(channelMixRank)
}

func codecRank(encoding string) int {
	if rank, ok := encodingRank[encoding]; ok {
		return rank
	}
	return len(encodingRank)
}
