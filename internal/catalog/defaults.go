package catalog

// Defaults is the built-in projects page used when no catalog file is given.
func Defaults() []Category {
	return []Category{
		{
			Slug:  "tui-mail",
			Title: "Terminal mail client",
			Description: `A terminal-based email client built in Go with fuzzy finding,
using the Charmbracelet TUI framework and go-imap.`,
			Images: []Image{
				{Ref: "/images/tui-mail-inbox.png", Alt: "Inbox view"},
				{Ref: "/images/tui-mail-search.png", Alt: "Fuzzy search"},
				{Ref: "/images/tui-mail-compose.png", Alt: "Compose window"},
			},
		},
		{
			Slug:  "music-streamer",
			Title: "Terminal music streamer",
			Description: `A terminal music player with a TUI front end that drives yt-dlp and
mpv for YouTube Music playback from the command line.`,
			Images: []Image{
				{Ref: "/images/music-library.png", Alt: "Library"},
				{Ref: "/images/music-player.png", Alt: "Now playing"},
			},
		},
		{
			Slug:  "game-recommender",
			Title: "Game recommender",
			Description: `A web application that recommends games from content analysis using
TF-IDF vectors and cosine similarity, with interactive charts and filtering
by reviews and ratings.`,
			Images: []Image{
				{Ref: "/images/recommender-search.png", Alt: "Search"},
				{Ref: "/images/recommender-results.png", Alt: "Recommendations"},
				{Ref: "/images/recommender-charts.png", Alt: "Charts"},
				{Ref: "/images/recommender-filters.png", Alt: "Filters"},
			},
		},
		{
			Slug:  "portfolio",
			Title: "This site",
			Description: `A responsive portfolio built with Go, Gin and HTMX, styled with
Tailwind CSS.`,
			Images: []Image{
				{Ref: "/images/portfolio-home.png", Alt: "Home page"},
			},
		},
	}
}
