package genre

// DefaultGenres is the genre set used when no genres file is configured.
var DefaultGenres = []string{
	"art",
	"biography",
	"business",
	"children-s",
	"christian",
	"classics",
	"comics",
	"contemporary",
	"cookbooks",
	"crime",
	"diary",
	"dictionary",
	"fantasy",
	"fiction",
	"graphic-novels",
	"historical-fiction",
	"history",
	"history-and-politics",
	"horror",
	"humor-and-comedy",
	"manga",
	"memoir",
	"music",
	"mystery",
	"non-fiction",
	"paranormal",
	"philosophy",
	"poetry",
	"psychology",
	"religion",
	"romance",
	"science",
	"science-fiction",
	"self-help",
	"spirituality",
	"sports",
	"suspense",
	"thriller",
	"travel",
	"young-adult",
}
