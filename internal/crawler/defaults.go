package crawler

// DefaultCatalogs are server-rendered course catalogs crawled with colly.
func DefaultCatalogs() []CatalogTarget {
	return []CatalogTarget{
		{
			Name:                "freeCodeCamp News",
			SearchURL:           "https://www.freecodecamp.org/news/tag/%s/",
			ByTag:               true,
			ItemSelector:        "article.post-card",
			LinkSelector:        "h2.post-card-title a",
			DescriptionSelector: ".post-card-excerpt",
			Type:                "Article",
		},
		{
			Name:          "GitHub Topics",
			SearchURL:     "https://github.com/topics/%s",
			ByTag:         true,
			ItemSelector:  "article.border",
			LinkSelector:  "h3 a.Link",
			TitleSelector: "h3",
			Type:          "Project",
		},
	}
}

// DefaultHeadlessTargets are client-rendered catalogs that need a browser.
func DefaultHeadlessTargets() []HeadlessTarget {
	return []HeadlessTarget{
		{
			Name:         "MDN",
			SearchURL:    "https://developer.mozilla.org/en-US/search?q=%s",
			LinkContains: "/en-US/docs/",
			Type:         "Documentation",
		},
	}
}
