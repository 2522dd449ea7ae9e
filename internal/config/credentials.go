package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptFunc asks the user for a value. Secret prompts must not echo input.
type PromptFunc func(label string, secret bool) (string, error)

// ResolveAPIKey returns the YouTube API key according to CredentialSource.
// Interactive mode always prompts, so a key in the environment is ignored.
func (c *Config) ResolveAPIKey(prompt PromptFunc) (string, error) {
	key := c.YouTubeAPIKey

	if c.CredentialSource == CredentialsInteractive {
		if prompt == nil {
			return "", fmt.Errorf("interactive credentials requested but no prompt is available")
		}
		value, err := prompt("Enter your YouTube Data API key: ", true)
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		key = strings.TrimSpace(value)
	}

	if key == "" {
		return "", fmt.Errorf("YouTube API key is required (set YOUTUBE_API_KEY or CREDENTIAL_SOURCE=interactive)")
	}

	c.YouTubeAPIKey = key
	return key, nil
}

// TerminalPrompt builds a PromptFunc bound to in/out. Secret input is read
// without echo when in is a terminal.
func TerminalPrompt(in *os.File, out io.Writer) PromptFunc {
	reader := bufio.NewReader(in)

	return func(label string, secret bool) (string, error) {
		fmt.Fprint(out, label)

		fd := int(in.Fd())
		if secret && term.IsTerminal(fd) {
			raw, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		}

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
