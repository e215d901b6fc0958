package orphan

// reservedWords are normalized prefixes owned by the platform itself. Rows
// starting with these are core-managed regardless of what is installed, so
// they are never candidates for orphan flagging.
var reservedWords = []string{
	"active", "admin", "auto", "blog", "category", "comment", "comments",
	"core", "cron", "current", "dashboard", "date", "default", "gmt",
	"home", "image", "link", "links", "mailserver", "media", "moderation",
	"nav", "new", "page", "permalink", "ping", "post", "recently",
	"rewrite", "rss", "session", "sidebar", "sidebars", "site", "siteurl",
	"sticky", "stylesheet", "tag", "template", "theme", "thumbnail",
	"time", "uninstall", "upload", "uploads", "user", "users", "widget",
	"widgets", "wordpress",
}

var reserved = func() map[string]struct{} {
	m := make(map[string]struct{}, len(reservedWords))
	for _, w := range reservedWords {
		m[w] = struct{}{}
	}
	return m
}()

// isReserved reports whether a normalized prefix belongs to the platform.
func isReserved(prefix string) bool {
	_, ok := reserved[prefix]
	return ok
}
