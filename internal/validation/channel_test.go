package validation

import (
	"testing"

	"github.com/influmatch/backend/internal/models"
)

func TestValidChannelURL(t *testing.T) {
	tests := []struct {
		channelType string
		url         string
		expected    bool
	}{
		{models.ChannelTypeNaver, "https://blog.naver.com/myblog", true},
		{models.ChannelTypeNaver, "http://m.blog.naver.com/myblog", true},
		{models.ChannelTypeNaver, "https://naver.com/myblog", false},
		{models.ChannelTypeYouTube, "https://www.youtube.com/@creator", true},
		{models.ChannelTypeYouTube, "https://youtu.be/abc123", true},
		{models.ChannelTypeYouTube, "https://vimeo.com/abc123", false},
		{models.ChannelTypeInstagram, "https://instagram.com/someone", true},
		{models.ChannelTypeInstagram, "https://www.instagram.com/someone", true},
		{models.ChannelTypeInstagram, "https://www.instagram.com/", false},
		{models.ChannelTypeThreads, "https://threads.net/@someone", true},
		{models.ChannelTypeThreads, "https://threads.net/someone", false},
		{"tiktok", "https://tiktok.com/@someone", false},
	}

	for _, tt := range tests {
		t.Run(tt.channelType+" "+tt.url, func(t *testing.T) {
			if got := ValidChannelURL(tt.channelType, tt.url); got != tt.expected {
				t.Errorf("ValidChannelURL(%q, %q) = %v, want %v", tt.channelType, tt.url, got, tt.expected)
			}
		})
	}
}

func TestHasDuplicateChannelTypes(t *testing.T) {
	if HasDuplicateChannelTypes([]string{"naver", "youtube"}) {
		t.Error("distinct types should not report a duplicate")
	}
	if !HasDuplicateChannelTypes([]string{"naver", "youtube", "naver"}) {
		t.Error("repeated type should report a duplicate")
	}
	if HasDuplicateChannelTypes(nil) {
		t.Error("empty slice should not report a duplicate")
	}
}
