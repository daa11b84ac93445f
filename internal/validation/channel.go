package validation

import (
	"regexp"

	"github.com/influmatch/backend/internal/models"
)

// URL pattern per channel type. A channel URL must live on the platform it
// claims to belong to.
var channelURLPatterns = map[string]*regexp.Regexp{
	models.ChannelTypeNaver:     regexp.MustCompile(`^https?://(blog\.naver\.com|m\.blog\.naver\.com)/.+`),
	models.ChannelTypeYouTube:   regexp.MustCompile(`^https?://(www\.)?(youtube\.com|youtu\.be)/.+`),
	models.ChannelTypeInstagram: regexp.MustCompile(`^https?://(www\.)?instagram\.com/.+`),
	models.ChannelTypeThreads:   regexp.MustCompile(`^https?://(www\.)?threads\.net/@.+`),
}

// ValidChannelURL reports whether url matches the pattern for channelType.
// Unknown channel types never match.
func ValidChannelURL(channelType, url string) bool {
	pattern, ok := channelURLPatterns[channelType]
	if !ok {
		return false
	}
	return pattern.MatchString(url)
}

// ChannelURLPattern returns the URL pattern source for channelType, or ""
// for unknown types.
func ChannelURLPattern(channelType string) string {
	pattern, ok := channelURLPatterns[channelType]
	if !ok {
		return ""
	}
	return pattern.String()
}

// HasDuplicateChannelTypes reports whether two channels in the slice share a
// channel type. A profile may hold at most one channel per type.
func HasDuplicateChannelTypes(types []string) bool {
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			return true
		}
		seen[t] = struct{}{}
	}
	return false
}
