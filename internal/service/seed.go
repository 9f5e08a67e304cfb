package service

import "github.com/vidvault/backend/internal/model"

// Curated startup catalog: well-known public talks.
var seedVideos = []model.SeedVideo{
	{
		Title:        "How to Start a Startup (Sam Altman)",
		Description:  "Y Combinator's Sam Altman shares practical startup lessons.",
		YouTubeID:    "CBYhVcO4WgI",
		ThumbnailURL: "https://img.youtube.com/vi/CBYhVcO4WgI/hqdefault.jpg",
	},
	{
		Title:        "Inside the Mind of a Master Procrastinator",
		Description:  "A humorous TED talk that explains procrastination behavior.",
		YouTubeID:    "arj7oStGLkU",
		ThumbnailURL: "https://img.youtube.com/vi/arj7oStGLkU/hqdefault.jpg",
	},
	{
		Title:        "The Future of Programming",
		Description:  "Discussion on how software development is evolving.",
		YouTubeID:    "8pTEmbeENF4",
		ThumbnailURL: "https://img.youtube.com/vi/8pTEmbeENF4/hqdefault.jpg",
	},
	{
		Title:        "How Great Leaders Inspire Action",
		Description:  "Simon Sinek on starting with why and building belief.",
		YouTubeID:    "qp0HIF3SfI4",
		ThumbnailURL: "https://img.youtube.com/vi/qp0HIF3SfI4/hqdefault.jpg",
	},
	{
		Title:        "The Surprising Habits of Original Thinkers",
		Description:  "Adam Grant explores patterns among original thinkers.",
		YouTubeID:    "fxbCHn6gE3U",
		ThumbnailURL: "https://img.youtube.com/vi/fxbCHn6gE3U/hqdefault.jpg",
	},
	{
		Title:        "Your Body Language May Shape Who You Are",
		Description:  "Amy Cuddy on how power posing affects confidence.",
		YouTubeID:    "Ks-_Mh1QhMc",
		ThumbnailURL: "https://img.youtube.com/vi/Ks-_Mh1QhMc/hqdefault.jpg",
	},
	{
		Title:        "The Power of Vulnerability",
		Description:  "Brené Brown studies human connection and empathy.",
		YouTubeID:    "iCvmsMzlF7o",
		ThumbnailURL: "https://img.youtube.com/vi/iCvmsMzlF7o/hqdefault.jpg",
	},
}
