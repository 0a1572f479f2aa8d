package services

import (
	"strings"

	"github.com/sorenlabs/soren/core"
)

// KeywordRouter routes a document by case-insensitive substring match on its
// filename. It is a placeholder for real document classification; consumers
// depend on the core.DocumentRouter port, never on this type.
type KeywordRouter struct {
	Keyword  string
	Match    core.DocumentRoute
	Fallback core.DocumentRoute
}

var _ core.DocumentRouter = KeywordRouter{}

func (r KeywordRouter) Route(fileName string) core.DocumentRoute {
	if strings.Contains(strings.ToLower(fileName), strings.ToLower(r.Keyword)) {
		return r.Match
	}
	return r.Fallback
}

// DefaultRouter maps LoRA papers to the LoRA demo video and everything else
// to the GAG demo video, mirroring the two pre-rendered sample outputs.
func DefaultRouter() KeywordRouter {
	return KeywordRouter{
		Keyword: "lora",
		Match: core.DocumentRoute{
			VideoPath:    "/output/lorapaper/media/videos/video1/1080p60/Video1.mp4",
			VideoID:      "video1_lorapaper",
			ContextPDF:   "lorapaper.pdf",
			ContextCode:  "output/lorapaper/video1.py",
			OutputFolder: "lorapaper",
		},
		Fallback: core.DocumentRoute{
			VideoPath:    "/output/gag/media/videos/video1/1080p60/Video2.mp4",
			VideoID:      "video2_gag",
			ContextPDF:   "gag.pdf",
			ContextCode:  "output/gag/video1.py",
			OutputFolder: "gag",
		},
	}
}
