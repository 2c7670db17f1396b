package episodemap

import "errors"

var (
	// ErrNoEpisodes reports that no unripped episodes were available to map.
	ErrNoEpisodes = errors.New("no episodes available for mapping")

	// ErrNoMatch reports that whole-title matching could not produce a full
	// positional assignment. It is a normal fallback signal, not a failure.
	ErrNoMatch = errors.New("no title mapping found")

	// ErrNoSolution reports that chapter matching found no valid set of
	// chapter ranges for the requested episodes.
	ErrNoSolution = errors.New("no chapter mapping solutions found")

	// ErrUnresolvable reports that multiple chapter solutions remained after
	// the oracle's answers were exhausted.
	ErrUnresolvable = errors.New("multiple chapter mappings remain after disambiguation")

	// ErrOracleUnavailable reports that disambiguation was required but no
	// interactive channel was present. The mapping fails rather than guess.
	ErrOracleUnavailable = errors.New("disambiguation required but no interactive session available")
)
