package fetcher

var supportedContainers = map[string]bool{
	"mp4":  true,
	"webm": true,
	"m4a":  true,
	"mp3":  true,
	"ogg":  true,
}

// SelectStream applies the ordered fallback policy:
//
//  1. the smallest audio-only stream, since only the audio track is used
//  2. the smallest-resolution progressive (audio+video) stream
//  3. any stream in a supported container
//
// It returns ErrNoStreamFound if no branch yields a candidate.
func SelectStream(streams []StreamDescriptor) (StreamDescriptor, error) {
	var best StreamDescriptor
	found := false
	for _, s := range streams {
		if !s.AudioOnly {
			continue
		}
		if !found || smallerBySize(s, best) {
			best, found = s, true
		}
	}
	if found {
		return best, nil
	}

	for _, s := range streams {
		if s.AudioOnly || s.Height <= 0 || s.Codec == "none" {
			continue
		}
		if !found || s.Height < best.Height {
			best, found = s, true
		}
	}
	if found {
		return best, nil
	}

	for _, s := range streams {
		if supportedContainers[s.Container] {
			return s, nil
		}
	}

	return StreamDescriptor{}, ErrNoStreamFound
}

func smallerBySize(a, b StreamDescriptor) bool {
	if a.SizeBytes <= 0 {
		return false
	}
	if b.SizeBytes <= 0 {
		return true
	}
	return a.SizeBytes < b.SizeBytes
}
