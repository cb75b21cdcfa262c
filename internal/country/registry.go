package country

// countryEntry is one row of the embedded ISO 3166-1 registry subset.
// Covers every country with curated species data plus the countries most
// commonly supplied by callers.
type countryEntry struct {
	alpha2   string
	alpha3   string
	name     string
	official string
}

var registry = []countryEntry{
	{"AR", "ARG", "Argentina", "Argentine Republic"},
	{"AU", "AUS", "Australia", "Commonwealth of Australia"},
	{"AT", "AUT", "Austria", "Republic of Austria"},
	{"BD", "BGD", "Bangladesh", "People's Republic of Bangladesh"},
	{"BE", "BEL", "Belgium", "Kingdom of Belgium"},
	{"BO", "BOL", "Bolivia", "Plurinational State of Bolivia"},
	{"BR", "BRA", "Brazil", "Federative Republic of Brazil"},
	{"KH", "KHM", "Cambodia", "Kingdom of Cambodia"},
	{"CM", "CMR", "Cameroon", "Republic of Cameroon"},
	{"CA", "CAN", "Canada", "Canada"},
	{"CL", "CHL", "Chile", "Republic of Chile"},
	{"CN", "CHN", "China", "People's Republic of China"},
	{"CO", "COL", "Colombia", "Republic of Colombia"},
	{"CR", "CRI", "Costa Rica", "Republic of Costa Rica"},
	{"CD", "COD", "Democratic Republic of the Congo", "Democratic Republic of the Congo"},
	{"DK", "DNK", "Denmark", "Kingdom of Denmark"},
	{"EC", "ECU", "Ecuador", "Republic of Ecuador"},
	{"EG", "EGY", "Egypt", "Arab Republic of Egypt"},
	{"ET", "ETH", "Ethiopia", "Federal Democratic Republic of Ethiopia"},
	{"FI", "FIN", "Finland", "Republic of Finland"},
	{"FR", "FRA", "France", "French Republic"},
	{"DE", "DEU", "Germany", "Federal Republic of Germany"},
	{"GR", "GRC", "Greece", "Hellenic Republic"},
	{"GL", "GRL", "Greenland", "Greenland"},
	{"IS", "ISL", "Iceland", "Iceland"},
	{"IN", "IND", "India", "Republic of India"},
	{"ID", "IDN", "Indonesia", "Republic of Indonesia"},
	{"IR", "IRN", "Iran", "Islamic Republic of Iran"},
	{"IE", "IRL", "Ireland", "Ireland"},
	{"IL", "ISR", "Israel", "State of Israel"},
	{"IT", "ITA", "Italy", "Italian Republic"},
	{"JP", "JPN", "Japan", "Japan"},
	{"KZ", "KAZ", "Kazakhstan", "Republic of Kazakhstan"},
	{"KE", "KEN", "Kenya", "Republic of Kenya"},
	{"KP", "PRK", "North Korea", "Democratic People's Republic of Korea"},
	{"KR", "KOR", "South Korea", "Republic of Korea"},
	{"MG", "MDG", "Madagascar", "Republic of Madagascar"},
	{"MY", "MYS", "Malaysia", "Malaysia"},
	{"MX", "MEX", "Mexico", "United Mexican States"},
	{"MN", "MNG", "Mongolia", "Mongolia"},
	{"MA", "MAR", "Morocco", "Kingdom of Morocco"},
	{"MM", "MMR", "Myanmar", "Republic of the Union of Myanmar"},
	{"NP", "NPL", "Nepal", "Federal Democratic Republic of Nepal"},
	{"NL", "NLD", "Netherlands", "Kingdom of the Netherlands"},
	{"NZ", "NZL", "New Zealand", "New Zealand"},
	{"NG", "NGA", "Nigeria", "Federal Republic of Nigeria"},
	{"NO", "NOR", "Norway", "Kingdom of Norway"},
	{"PK", "PAK", "Pakistan", "Islamic Republic of Pakistan"},
	{"PA", "PAN", "Panama", "Republic of Panama"},
	{"PG", "PNG", "Papua New Guinea", "Independent State of Papua New Guinea"},
	{"PE", "PER", "Peru", "Republic of Peru"},
	{"PH", "PHL", "Philippines", "Republic of the Philippines"},
	{"PL", "POL", "Poland", "Republic of Poland"},
	{"PT", "PRT", "Portugal", "Portuguese Republic"},
	{"RU", "RUS", "Russia", "Russian Federation"},
	{"SA", "SAU", "Saudi Arabia", "Kingdom of Saudi Arabia"},
	{"SG", "SGP", "Singapore", "Republic of Singapore"},
	{"ZA", "ZAF", "South Africa", "Republic of South Africa"},
	{"ES", "ESP", "Spain", "Kingdom of Spain"},
	{"LK", "LKA", "Sri Lanka", "Democratic Socialist Republic of Sri Lanka"},
	{"SE", "SWE", "Sweden", "Kingdom of Sweden"},
	{"CH", "CHE", "Switzerland", "Swiss Confederation"},
	{"TW", "TWN", "Taiwan", "Taiwan, Province of China"},
	{"TZ", "TZA", "Tanzania", "United Republic of Tanzania"},
	{"TH", "THA", "Thailand", "Kingdom of Thailand"},
	{"TR", "TUR", "Turkey", "Republic of Türkiye"},
	{"UG", "UGA", "Uganda", "Republic of Uganda"},
	{"UA", "UKR", "Ukraine", "Ukraine"},
	{"AE", "ARE", "United Arab Emirates", "United Arab Emirates"},
	{"GB", "GBR", "United Kingdom", "United Kingdom of Great Britain and Northern Ireland"},
	{"US", "USA", "United States", "United States of America"},
	{"UY", "URY", "Uruguay", "Oriental Republic of Uruguay"},
	{"VE", "VEN", "Venezuela", "Bolivarian Republic of Venezuela"},
	{"VN", "VNM", "Vietnam", "Socialist Republic of Viet Nam"},
	{"ZM", "ZMB", "Zambia", "Republic of Zambia"},
	{"ZW", "ZWE", "Zimbabwe", "Republic of Zimbabwe"},
	{"AQ", "ATA", "Antarctica", "Antarctica"},
}

// aliases covers common names that do not appear verbatim in the registry,
// including the ambiguous splits ("Korea" alone means the South in product
// terms) and colloquial forms.
var aliases = map[string]string{
	"korea":          "KR",
	"republic of korea": "KR",
	"dprk":           "KP",
	"england":        "GB",
	"great britain":  "GB",
	"uk":             "GB",
	"usa":            "US",
	"america":        "US",
	"united states of america": "US",
	"uae":            "AE",
	"holland":        "NL",
	"burma":          "MM",
	"drc":            "CD",
	"congo":          "CD",
	"türkiye":        "TR",
	"turkiye":        "TR",
	"viet nam":       "VN",
}

// continents maps alpha-2 codes to one of the 7 continent codes
// (AS, EU, AF, NA, SA, OC, AN).
var continents = map[string]string{
	"BD": "AS", "KH": "AS", "CN": "AS", "IN": "AS", "ID": "AS", "IR": "AS",
	"IL": "AS", "JP": "AS", "KZ": "AS", "KP": "AS", "KR": "AS", "MY": "AS",
	"MN": "AS", "MM": "AS", "NP": "AS", "PK": "AS", "PH": "AS", "SA": "AS",
	"SG": "AS", "LK": "AS", "TW": "AS", "TH": "AS", "TR": "AS", "AE": "AS",
	"VN": "AS",

	"AT": "EU", "BE": "EU", "DK": "EU", "FI": "EU", "FR": "EU", "DE": "EU",
	"GR": "EU", "IS": "EU", "IE": "EU", "IT": "EU", "NL": "EU", "NO": "EU",
	"PL": "EU", "PT": "EU", "RU": "EU", "ES": "EU", "SE": "EU", "CH": "EU",
	"UA": "EU", "GB": "EU",

	"CM": "AF", "CD": "AF", "EG": "AF", "ET": "AF", "KE": "AF", "MG": "AF",
	"MA": "AF", "NG": "AF", "ZA": "AF", "TZ": "AF", "UG": "AF", "ZM": "AF",
	"ZW": "AF",

	"CA": "NA", "CR": "NA", "GL": "NA", "MX": "NA", "PA": "NA", "US": "NA",

	"AR": "SA", "BO": "SA", "BR": "SA", "CL": "SA", "CO": "SA", "EC": "SA",
	"PE": "SA", "UY": "SA", "VE": "SA",

	"AU": "OC", "NZ": "OC", "PG": "OC",

	"AQ": "AN",
}
