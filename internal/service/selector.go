package service

import (
	"sort"

	"github.com/bnema/clipd/internal/domain"
)

// SelectStreams picks the best streams from a catalog. Video-only and
// audio-only variants are preferred as a pair (the separate-stream shape
// typical of large video hosts); combined variants come second; the
// resolver's best-known location is the last resort.
//
// Ranking uses a stable sort on (height, bitrate) for video and bitrate for
// audio, so ties keep the extractor's input order.
func SelectStreams(cat *domain.Catalog) (*domain.Selection, error) {
	var videoOnly, audioOnly, combined []domain.StreamVariant
	for _, v := range cat.Variants {
		switch {
		case v.HasVideo && !v.HasAudio:
			videoOnly = append(videoOnly, v)
		case v.HasAudio && !v.HasVideo:
			audioOnly = append(audioOnly, v)
		case v.HasVideo && v.HasAudio:
			combined = append(combined, v)
		}
	}

	if len(videoOnly) > 0 && len(audioOnly) > 0 {
		sort.SliceStable(videoOnly, func(i, j int) bool {
			if videoOnly[i].Height != videoOnly[j].Height {
				return videoOnly[i].Height > videoOnly[j].Height
			}
			return videoOnly[i].Bitrate > videoOnly[j].Bitrate
		})
		sort.SliceStable(audioOnly, func(i, j int) bool {
			return audioOnly[i].Bitrate > audioOnly[j].Bitrate
		})
		return &domain.Selection{
			Mode:     domain.SeparateStreams,
			VideoURL: videoOnly[0].URL,
			AudioURL: audioOnly[0].URL,
		}, nil
	}

	if len(combined) > 0 {
		sort.SliceStable(combined, func(i, j int) bool {
			if combined[i].Height != combined[j].Height {
				return combined[i].Height > combined[j].Height
			}
			return combined[i].Bitrate > combined[j].Bitrate
		})
		return &domain.Selection{
			Mode:     domain.CombinedStream,
			VideoURL: combined[0].URL,
		}, nil
	}

	if cat.BestURL != "" {
		return &domain.Selection{
			Mode:     domain.CombinedStream,
			VideoURL: cat.BestURL,
		}, nil
	}

	return nil, domain.ErrNoPlayableFormat
}
