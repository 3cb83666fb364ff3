package content

import (
	"regexp"
	"strings"
)

// SplitTags splits s on commas, trims each tag and drops empty ones.
func SplitTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SplitLines splits s on newlines and drops lines that are blank.
// Non-blank lines are returned as written.
func SplitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var (
	driveFileRe  = regexp.MustCompile(`/file/d/([^/]+)`)
	driveImageRe = []*regexp.Regexp{
		regexp.MustCompile(`drive\.google\.com/file/d/([^/]+)`),
		regexp.MustCompile(`drive\.google\.com/open\?id=([^&]+)`),
		regexp.MustCompile(`drive\.google\.com/uc\?id=([^&]+)`),
		regexp.MustCompile(`lh3\.googleusercontent\.com/d/([^/?]+)`),
	}
)

// DriveDownloadURL rewrites a Google Drive share link to its direct download
// form. Other links are returned unchanged.
func DriveDownloadURL(link string) string {
	if link == "" || !strings.Contains(link, "drive.google.com") {
		return link
	}
	m := driveFileRe.FindStringSubmatch(link)
	if m == nil {
		return link
	}
	return "https://drive.google.com/uc?export=download&id=" + m[1]
}

// DriveImageURL rewrites the Drive link shapes people paste into an
// embeddable googleusercontent URL. Other links are returned unchanged.
func DriveImageURL(link string) string {
	for _, re := range driveImageRe {
		if m := re.FindStringSubmatch(link); m != nil {
			return "https://lh3.googleusercontent.com/d/" + m[1]
		}
	}
	return link
}
