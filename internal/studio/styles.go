package studio

// DesignStyles are the preset base styles offered for a first concept. Any
// free-form style string is accepted by Generate; these are suggestions.
var DesignStyles = []string{
	"Modern Minimalist",
	"Scandinavian",
	"Bohemian",
	"Industrial",
	"Coastal",
	"Farmhouse",
	"Mid-Century Modern",
	"Art Deco",
	"Luxury",
}
