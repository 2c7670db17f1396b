// Package tvdb provides a client for the TheTVDB API v4, used to fill a
// season with canonical episode names before ripping.
package tvdb

// SearchResult is one series hit for a name query.
type SearchResult struct {
	ID       int
	Name     string
	Year     int
	Status   string
	Overview string
	Network  string
}

// Series is the metadata of one TV series.
type Series struct {
	ID       int
	Name     string
	Year     int
	Status   string
	Overview string
}

// Episode is one episode of a series.
type Episode struct {
	ID      int
	Season  int
	Episode int
	Name    string
}

// loginResponse is the TVDB login API response.
type loginResponse struct {
	Status string `json:"status"`
	Data   struct {
		Token string `json:"token"`
	} `json:"data"`
}

// searchResponse is the TVDB search API response.
type searchResponse struct {
	Status string `json:"status"`
	Data   []struct {
		ObjectID string `json:"objectID"`
		Name     string `json:"name"`
		Year     string `json:"year"`
		Status   string `json:"status"`
		Overview string `json:"overview"`
		Network  string `json:"network"`
		TVDBID   string `json:"tvdb_id"`
	} `json:"data"`
}

// seriesResponse is the TVDB get series API response.
type seriesResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Status struct {
			Name string `json:"name"`
		} `json:"status"`
		Overview   string `json:"overview"`
		FirstAired string `json:"firstAired"` // YYYY-MM-DD
	} `json:"data"`
}

// episodesResponse is the TVDB get episodes API response.
type episodesResponse struct {
	Status string `json:"status"`
	Data   struct {
		Episodes []struct {
			ID           int    `json:"id"`
			SeasonNumber int    `json:"seasonNumber"`
			Number       int    `json:"number"`
			Name         string `json:"name"`
		} `json:"episodes"`
	} `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}
