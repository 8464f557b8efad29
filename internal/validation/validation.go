package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// repoNameRegex matches GitHub's owner/repo form with the character
	// set accepted by the issue backend
	repoNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+/[a-zA-Z0-9._-]+$`)
)

const (
	maxRepoLength  = 100
	maxTitleLength = 256
	maxBodyLength  = 65536 // 64KB limit
)

// ValidateRepoName validates a GitHub repository reference in owner/repo form
func ValidateRepoName(repo string) error {
	if repo == "" {
		return errors.New("Repository name is required")
	}

	if !repoNameRegex.MatchString(repo) {
		return errors.New("Invalid repository format. Use owner/repo format")
	}

	if len(repo) > maxRepoLength {
		return errors.New("Repository name too long")
	}

	return nil
}

// ValidateIssueTitle validates an issue title. The title is compared after
// trimming; callers should forward the trimmed value downstream.
func ValidateIssueTitle(title string) error {
	if title == "" {
		return errors.New("Issue title is required")
	}

	trimmed := strings.TrimSpace(title)
	if len(trimmed) < 1 {
		return errors.New("Issue title cannot be empty")
	}

	// Length is a character limit, not a byte limit
	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return errors.New("Issue title too long (max 256 characters)")
	}

	// Basic XSS prevention
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:") {
		return errors.New("Invalid characters in title")
	}

	return nil
}

// ValidateIssueBody validates an optional issue body
func ValidateIssueBody(body string) error {
	if len(body) > maxBodyLength {
		return errors.New("Issue body too long (max 65536 characters)")
	}

	return nil
}
