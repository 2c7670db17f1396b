package disc

import (
	"crypto/sha1"
	"fmt"
	"io"
	"strconv"
)

// identify hashes the disc serial and per-title chapter layout into a stable
// identity, so previously ripped episodes can be recognized when the same
// disc is inserted again. The "$H1$" prefix versions the hash scheme.
func identify(d *Disc) string {
	h := sha1.New()
	io.WriteString(h, d.Serial)
	io.WriteString(h, strconv.Itoa(len(d.Titles)))
	for _, title := range d.Titles {
		io.WriteString(h, title.Duration.String())
		io.WriteString(h, strconv.Itoa(len(title.Chapters)))
		for _, chapter := range title.Chapters {
			io.WriteString(h, title.Start(chapter.Number).String())
			io.WriteString(h, chapter.Duration.String())
		}
	}
	return fmt.Sprintf("$H1$%x", h.Sum(nil))
}
