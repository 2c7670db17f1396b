package ripping

import (
	"fmt"
	"strconv"
	"strings"
)

// Expand substitutes {field} placeholders in a filename template. A
// placeholder may carry a zero-pad width for integer values, e.g.
// {episode:02}. Unknown fields are an error so typos in config templates
// surface immediately.
func Expand(template string, fields map[string]string) (string, error) {
	var out strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:open])
		rest = rest[open+1:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return "", fmt.Errorf("template %q: unterminated placeholder", template)
		}
		placeholder := rest[:end]
		rest = rest[end+1:]

		name, pad := placeholder, 0
		if colon := strings.IndexByte(placeholder, ':'); colon >= 0 {
			name = placeholder[:colon]
			spec := placeholder[colon+1:]
			width, err := strconv.Atoi(strings.TrimPrefix(spec, "0"))
			if err != nil || !strings.HasPrefix(spec, "0") {
				return "", fmt.Errorf("template %q: bad pad spec %q", template, spec)
			}
			pad = width
		}
		value, ok := fields[name]
		if !ok {
			return "", fmt.Errorf("template %q: unknown field %q", template, name)
		}
		if pad > 0 {
			number, err := strconv.Atoi(value)
			if err != nil {
				return "", fmt.Errorf("template %q: field %q is not numeric", template, name)
			}
			value = fmt.Sprintf("%0*d", pad, number)
		}
		out.WriteString(value)
	}
}

// EpisodeID renders the episode id template for one episode.
func EpisodeID(idTemplate string, season, episode int) (string, error) {
	return Expand(idTemplate, map[string]string{
		"season":  strconv.Itoa(season),
		"episode": strconv.Itoa(episode),
	})
}

// FileName renders the output filename template and scrubs characters
// that trip up common filesystems and media servers.
func FileName(template, program, id, name, ext string) (string, error) {
	expanded, err := Expand(template, map[string]string{
		"program": program,
		"id":      id,
		"name":    name,
		"ext":     ext,
	})
	if err != nil {
		return "", err
	}
	return sanitizeFileName(expanded), nil
}

var fileNameScrubber = strings.NewReplacer(
	":", "-",
	"/", "-",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

func sanitizeFileName(name string) string {
	return strings.TrimSpace(fileNameScrubber.Replace(name))
}
