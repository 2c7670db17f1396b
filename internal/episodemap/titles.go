package episodemap

// Options controls an automap invocation. The zero value maps every
// unripped episode, keeps all duplicate titles, permits multi-part episodes,
// and has no oracle.
type Options struct {
	// Policy selects which duplicate titles take part in matching.
	Policy Policy

	// Strict requires every requested episode to be covered by the mapping.
	// When false, a mapping covering only a leading subset of the episodes
	// is acceptable (the rest presumably live on a later disc).
	Strict bool

	// DisableMultipart turns off the multi-part episode heuristic, so a
	// title longer than the window can never absorb several episodes.
	DisableMultipart bool

	// Ask is the oracle used to narrow multiple chapter solutions. A nil
	// oracle makes any ambiguous chapter mapping fail with
	// ErrOracleUnavailable rather than guess.
	Ask AskFunc
}

// MatchTitles attempts a direct positional mapping of whole titles to
// episodes. The policy is all-or-nothing: every title offered must fit the
// window (directly, or as a multi-part run when the heuristic is enabled) or
// the whole attempt is abandoned with ErrNoMatch. A single anomalous title
// usually means the disc does not line up with the season boundary, and a
// partial accept would silently corrupt the rest of the mapping.
func MatchTitles(titles []Title, episodes []Episode, w Window, opts Options) (Mapping, error) {
	episodes = unripped(episodes)
	if len(episodes) == 0 {
		return nil, ErrNoEpisodes
	}

	var mapping Mapping
	remaining := episodes
	for _, title := range titles {
		switch {
		case w.Contains(title.Duration):
			if len(remaining) == 0 {
				continue
			}
			mapping = append(mapping, Assignment{
				Episode: remaining[0],
				Target:  Target{Title: title.Number},
			})
			remaining = remaining[1:]
		case !opts.DisableMultipart && title.Duration > w.Max:
			parts := MultipartPrefix(remaining)
			if parts < 2 || !w.Scale(parts).Contains(title.Duration) {
				return nil, ErrNoMatch
			}
			for ; parts > 0; parts-- {
				mapping = append(mapping, Assignment{
					Episode: remaining[0],
					Target:  Target{Title: title.Number},
				})
				remaining = remaining[1:]
			}
		default:
			return nil, ErrNoMatch
		}
	}

	if len(mapping) == 0 {
		return nil, ErrNoMatch
	}
	if opts.Strict && len(remaining) > 0 {
		return nil, ErrNoMatch
	}
	return mapping, nil
}
