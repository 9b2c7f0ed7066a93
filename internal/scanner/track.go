package scanner

import (
	"sort"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// DetermineSingleTrack reduces occurrences to the one MAJOR.MINOR track they
// share. With no occurrences it returns an empty alignment. When several
// tracks are present, Conflicts lists them in ascending numeric order and
// Track is nil.
func DetermineSingleTrack(occurrences []entities.VersionOccurrence) entities.TrackAlignment {
	seen := make(map[entities.Track]struct{})
	tracks := make([]entities.Track, 0, 1)
	for _, occurrence := range occurrences {
		track := occurrence.Track()
		if _, ok := seen[track]; ok {
			continue
		}
		seen[track] = struct{}{}
		tracks = append(tracks, track)
	}

	switch len(tracks) {
	case 0:
		return entities.TrackAlignment{Conflicts: []string{}}
	case 1:
		track := tracks[0]
		return entities.TrackAlignment{Track: &track, Conflicts: []string{}}
	}

	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Less(tracks[j]) })
	conflicts := make([]string, 0, len(tracks))
	for _, track := range tracks {
		conflicts = append(conflicts, track.String())
	}
	return entities.TrackAlignment{Conflicts: conflicts}
}
